package entity

// ลูกค้าให้คะแนนจานได้ครั้งเดียว (ลบแล้วค่อยให้ใหม่ ไม่มี upsert)
type Rating struct {
	CustomerID uint `gorm:"primaryKey;autoIncrement:false" json:"customerId"`
	DishID     uint `gorm:"primaryKey;autoIncrement:false" json:"dishId"`
	Value      int  `gorm:"not null" json:"value"`
}
