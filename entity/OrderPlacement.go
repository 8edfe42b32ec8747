package entity

// หนึ่ง order มีลูกค้าผู้สั่งได้คนเดียว
type OrderPlacement struct {
	OrderID    uint `gorm:"primaryKey;autoIncrement:false" json:"orderId"`
	CustomerID uint `gorm:"index;not null" json:"customerId"`
}
