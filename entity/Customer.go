package entity

type Customer struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"not null" json:"fullName"`
	Age      int    `gorm:"not null" json:"age"`
	Phone    string `gorm:"not null" json:"phone"`

	// preload เฉพาะตอนต้องการ
	Placements []OrderPlacement `gorm:"foreignKey:CustomerID" json:"-"`
	Ratings    []Rating         `gorm:"foreignKey:CustomerID" json:"-"`
}
