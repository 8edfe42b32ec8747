package entity

type Dish struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`
	// ราคาเก็บเป็นสตางค์ (int64) กันปัญหา floating point
	Price    int64 `gorm:"not null" json:"price"`
	IsActive bool  `gorm:"not null" json:"isActive"`

	OrderLines []OrderLine `gorm:"foreignKey:DishID" json:"-"`
	Ratings    []Rating    `gorm:"foreignKey:DishID" json:"-"`
}
