package repository

import (
	"errors"
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

// AnalyticsRepository คือ read path ของ analytics engine
// อ่านอย่างเดียว ไม่แตะ write เลย
type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

// lookup ที่ key ไม่เจอคืน nil เฉย ๆ ไม่ใช่ error (ตามสัญญาของ Record Store)

func (r *AnalyticsRepository) OrderByID(id uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *AnalyticsRepository) DishByID(id uint) (*entity.Dish, error) {
	var d entity.Dish
	err := r.DB.First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *AnalyticsRepository) OrderLines(orderID uint) ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := r.DB.Where("order_id = ?", orderID).
		Order("dish_id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *AnalyticsRepository) AllOrderLines() ([]entity.OrderLine, error) {
	var lines []entity.OrderLine
	err := r.DB.Order("order_id ASC, dish_id ASC").Find(&lines).Error
	return lines, err
}

func (r *AnalyticsRepository) AllOrders() ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Order("id ASC").Find(&orders).Error
	return orders, err
}

func (r *AnalyticsRepository) OrdersByYear(year int) ([]entity.Order, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	var orders []entity.Order
	err := r.DB.Where("order_date >= ? AND order_date < ?", from, to).
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}

// ช่วงเวลาเป็น inclusive ทั้งสองด้าน
func (r *AnalyticsRepository) OrdersInRange(from, to time.Time) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("order_date >= ? AND order_date <= ?", from, to).
		Order("id ASC").
		Find(&orders).Error
	return orders, err
}

func (r *AnalyticsRepository) AllDishes() ([]entity.Dish, error) {
	var dishes []entity.Dish
	err := r.DB.Order("id ASC").Find(&dishes).Error
	return dishes, err
}

func (r *AnalyticsRepository) AllRatings() ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := r.DB.Order("customer_id ASC, dish_id ASC").Find(&ratings).Error
	return ratings, err
}

func (r *AnalyticsRepository) RatingsByCustomer(customerID uint) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := r.DB.Where("customer_id = ?", customerID).
		Order("dish_id ASC").
		Find(&ratings).Error
	return ratings, err
}

func (r *AnalyticsRepository) RatingsByDish(dishID uint) ([]entity.Rating, error) {
	var ratings []entity.Rating
	err := r.DB.Where("dish_id = ?", dishID).
		Order("customer_id ASC").
		Find(&ratings).Error
	return ratings, err
}

func (r *AnalyticsRepository) AllPlacements() ([]entity.OrderPlacement, error) {
	var placements []entity.OrderPlacement
	err := r.DB.Order("order_id ASC").Find(&placements).Error
	return placements, err
}

func (r *AnalyticsRepository) CustomerPlacedOrders(customerID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&entity.OrderPlacement{}).
		Where("customer_id = ?", customerID).
		Order("order_id ASC").
		Pluck("order_id", &ids).Error
	return ids, err
}

// จานทั้งหมดที่ลูกค้าเคยสั่ง (ผ่าน placement + order lines)
func (r *AnalyticsRepository) OrderedDishIDs(customerID uint) (map[uint]struct{}, error) {
	var ids []uint
	err := r.DB.Table("order_lines AS ol").
		Select("DISTINCT ol.dish_id").
		Joins("JOIN order_placements op ON op.order_id = ol.order_id").
		Where("op.customer_id = ?", customerID).
		Pluck("ol.dish_id", &ids).Error
	if err != nil {
		return nil, err
	}

	out := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}
