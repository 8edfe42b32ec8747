package entity

import (
	"time"
)

type Order struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderDate time.Time `gorm:"not null" json:"orderDate"`
	// ค่าส่งเก็บเป็นสตางค์ เหมือน Dish.Price
	DeliveryFee     int64  `gorm:"not null" json:"deliveryFee"`
	DeliveryAddress string `gorm:"not null" json:"deliveryAddress"`

	// preload แค่ตอน detail
	OrderLines []OrderLine     `gorm:"foreignKey:OrderID" json:"-"`
	Placement  *OrderPlacement `gorm:"foreignKey:OrderID" json:"-"`
}
