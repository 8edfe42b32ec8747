package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type RatingRepository struct {
	DB *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{DB: db}
}

func (r *RatingRepository) Create(rt *entity.Rating) error {
	return r.DB.Create(rt).Error
}

func (r *RatingRepository) Exists(customerID, dishID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.Rating{}).
		Where("customer_id = ? AND dish_id = ?", customerID, dishID).
		Count(&cnt).Error
	return cnt > 0, err
}

// ไม่มี upsert แก้คะแนนต้องลบแล้วให้ใหม่
func (r *RatingRepository) Delete(customerID, dishID uint) (int64, error) {
	res := r.DB.Where("customer_id = ? AND dish_id = ?", customerID, dishID).
		Delete(&entity.Rating{})
	return res.RowsAffected, res.Error
}

func (r *RatingRepository) ListByCustomer(customerID uint) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := r.DB.Where("customer_id = ?", customerID).
		Order("dish_id ASC").
		Find(&ratings).Error
	return ratings, err
}
