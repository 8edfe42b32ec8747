package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

// OrderFeed คือช่องทาง broadcast เหตุการณ์ order (เช่น WebSocket hub)
type OrderFeed interface {
	OrderCreated(o *entity.Order)
	OrderDeleted(id uint)
}

type OrderService struct {
	DB       *gorm.DB
	Repo     *repository.OrderRepository
	DishRepo *repository.DishRepository
	CustRepo *repository.CustomerRepository
	Feed     OrderFeed // nil ได้ ถ้าไม่เปิด feed
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		DB:       db,
		Repo:     repository.NewOrderRepository(db),
		DishRepo: repository.NewDishRepository(db),
		CustRepo: repository.NewCustomerRepository(db),
	}
}

func validOrder(o *entity.Order) bool {
	if o.ID == 0 || o.OrderDate.IsZero() {
		return false
	}
	if o.DeliveryFee < 0 {
		return false
	}
	return len(o.DeliveryAddress) >= 5
}

func (s *OrderService) Create(o *entity.Order) error {
	if !validOrder(o) {
		return ErrInvalidParams
	}

	exists, err := s.Repo.Exists(o.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	if err := s.Repo.Create(o); err != nil {
		return err
	}

	if s.Feed != nil {
		s.Feed.OrderCreated(o)
	}
	return nil
}

func (s *OrderService) Get(id uint) (*entity.Order, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	o, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return o, err
}

func (s *OrderService) Delete(id uint) error {
	if id == 0 {
		return ErrInvalidParams
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.Delete(tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.Feed != nil {
		s.Feed.OrderDeleted(id)
	}
	return nil
}

// ---------------- Order lines ----------------

// AddLine ใส่จานลง order โดย snapshot ราคาปัจจุบันเข้า line
// จานต้อง active อยู่ตอนสั่งเท่านั้น
func (s *OrderService) AddLine(orderID, dishID uint, amount int) (*entity.OrderLine, error) {
	if orderID == 0 || dishID == 0 || amount < 0 {
		return nil, ErrInvalidParams
	}

	orderExists, err := s.Repo.Exists(orderID)
	if err != nil {
		return nil, err
	}
	if !orderExists {
		return nil, ErrNotFound
	}

	dish, err := s.DishRepo.GetByID(dishID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !dish.IsActive {
		return nil, ErrNotFound
	}

	lineExists, err := s.Repo.LineExists(orderID, dishID)
	if err != nil {
		return nil, err
	}
	if lineExists {
		return nil, ErrAlreadyExists
	}

	line := &entity.OrderLine{
		OrderID:   orderID,
		DishID:    dishID,
		Amount:    amount,
		UnitPrice: dish.Price, // historical fact ตั้งแต่ตรงนี้
	}
	if err := s.Repo.CreateLine(line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *OrderService) RemoveLine(orderID, dishID uint) error {
	if orderID == 0 || dishID == 0 {
		return ErrInvalidParams
	}
	n, err := s.Repo.DeleteLine(orderID, dishID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *OrderService) ListLines(orderID uint) ([]entity.OrderLine, error) {
	if orderID == 0 {
		return nil, ErrInvalidParams
	}
	return s.Repo.GetLines(orderID)
}

// ---------------- Placement ----------------

// PlaceOrder ผูก order เข้ากับลูกค้าผู้สั่ง (ได้ครั้งเดียวต่อ order)
func (s *OrderService) PlaceOrder(customerID, orderID uint) error {
	if customerID == 0 || orderID == 0 {
		return ErrInvalidParams
	}

	custExists, err := s.CustRepo.Exists(customerID)
	if err != nil {
		return err
	}
	orderExists, err := s.Repo.Exists(orderID)
	if err != nil {
		return err
	}
	if !custExists || !orderExists {
		return ErrNotFound
	}

	placed, err := s.Repo.PlacementExists(orderID)
	if err != nil {
		return err
	}
	if placed {
		return ErrAlreadyExists
	}

	return s.Repo.CreatePlacement(&entity.OrderPlacement{
		OrderID:    orderID,
		CustomerID: customerID,
	})
}

// GetPlacer คืนลูกค้าที่สั่ง order นี้
func (s *OrderService) GetPlacer(orderID uint) (*entity.Customer, error) {
	if orderID == 0 {
		return nil, ErrInvalidParams
	}

	p, err := s.Repo.GetPlacement(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	c, err := s.CustRepo.GetByID(p.CustomerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}
