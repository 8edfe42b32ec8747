package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) Create(c *entity.Customer) error {
	return r.DB.Create(c).Error
}

func (r *CustomerRepository) GetByID(id uint) (*entity.Customer, error) {
	var c entity.Customer
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Customer{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ลบลูกค้าพร้อม cascade ไปยัง placements และ ratings
func (r *CustomerRepository) Delete(tx *gorm.DB, id uint) (int64, error) {
	if err := tx.Where("customer_id = ?", id).Delete(&entity.Rating{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("customer_id = ?", id).Delete(&entity.OrderPlacement{}).Error; err != nil {
		return 0, err
	}
	res := tx.Delete(&entity.Customer{}, id)
	return res.RowsAffected, res.Error
}
