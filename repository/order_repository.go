package repository

import (
	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(o *entity.Order) error {
	return r.DB.Create(o).Error
}

func (r *OrderRepository) GetByID(id uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.Order{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ลบ order พร้อม lines และ placement
func (r *OrderRepository) Delete(tx *gorm.DB, id uint) (int64, error) {
	if err := tx.Where("order_id = ?", id).Delete(&entity.OrderLine{}).Error; err != nil {
		return 0, err
	}
	if err := tx.Where("order_id = ?", id).Delete(&entity.OrderPlacement{}).Error; err != nil {
		return 0, err
	}
	res := tx.Delete(&entity.Order{}, id)
	return res.RowsAffected, res.Error
}

// ---------------- Order lines ----------------

func (r *OrderRepository) CreateLine(l *entity.OrderLine) error {
	return r.DB.Create(l).Error
}

func (r *OrderRepository) LineExists(orderID, dishID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.OrderLine{}).
		Where("order_id = ? AND dish_id = ?", orderID, dishID).
		Count(&cnt).Error
	return cnt > 0, err
}

func (r *OrderRepository) DeleteLine(orderID, dishID uint) (int64, error) {
	res := r.DB.Where("order_id = ? AND dish_id = ?", orderID, dishID).
		Delete(&entity.OrderLine{})
	return res.RowsAffected, res.Error
}

func (r *OrderRepository) GetLines(orderID uint) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := r.DB.Where("order_id = ?", orderID).
		Order("dish_id ASC").
		Find(&lines).Error
	return lines, err
}

// ---------------- Placement ----------------

func (r *OrderRepository) CreatePlacement(p *entity.OrderPlacement) error {
	return r.DB.Create(p).Error
}

func (r *OrderRepository) GetPlacement(orderID uint) (*entity.OrderPlacement, error) {
	var p entity.OrderPlacement
	if err := r.DB.First(&p, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *OrderRepository) PlacementExists(orderID uint) (bool, error) {
	var cnt int64
	err := r.DB.Model(&entity.OrderPlacement{}).
		Where("order_id = ?", orderID).
		Count(&cnt).Error
	return cnt > 0, err
}
