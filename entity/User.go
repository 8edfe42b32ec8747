package entity

import (
	"gorm.io/gorm"
)

// User = บัญชี staff สำหรับ route ที่ต้องล็อกอิน (ไม่ใช่ลูกค้าในระบบ order)
type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"` // ปลอดภัย
	Name     string `json:"name"`
	Role     string `gorm:"not null;default:staff" json:"role"`
}
