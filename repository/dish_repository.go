package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type DishRepository struct {
	DB *gorm.DB
}

func NewDishRepository(db *gorm.DB) *DishRepository {
	return &DishRepository{DB: db}
}

func (r *DishRepository) Create(d *entity.Dish) error {
	return r.DB.Create(d).Error
}

func (r *DishRepository) GetByID(id uint) (*entity.Dish, error) {
	var d entity.Dish
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DishRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Dish{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// อัปเดตราคาได้เฉพาะจานที่ยัง active อยู่
func (r *DishRepository) UpdatePrice(id uint, price int64) (int64, error) {
	res := r.DB.Model(&entity.Dish{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("price", price)
	return res.RowsAffected, res.Error
}

func (r *DishRepository) UpdateActive(id uint, active bool) (int64, error) {
	res := r.DB.Model(&entity.Dish{}).
		Where("id = ?", id).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}

// ลบจานพร้อม cascade ไปยัง order lines และ ratings
func (r *DishRepository) Delete(tx *gorm.DB, id uint) (int64, error) {
	if err := tx.Where("dish_id = ?", id).Delete(&entity.Rating{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("dish_id = ?", id).Delete(&entity.OrderLine{}).Error; err != nil {
		return 0, err
	}
	res := tx.Delete(&entity.Dish{}, id)
	return res.RowsAffected, res.Error
}
