package entity

type OrderLine struct {
	OrderID uint `gorm:"primaryKey;autoIncrement:false" json:"orderId"`
	DishID  uint `gorm:"primaryKey;autoIncrement:false" json:"dishId"`
	Amount  int  `gorm:"not null" json:"amount"`
	// ราคาถูก copy มาจาก Dish ตอนสร้าง line ไม่เปลี่ยนตามราคาปัจจุบัน
	UnitPrice int64 `gorm:"not null" json:"unitPrice"`
}
