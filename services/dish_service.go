package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type DishService struct {
	DB   *gorm.DB
	Repo *repository.DishRepository
}

func NewDishService(db *gorm.DB) *DishService {
	return &DishService{DB: db, Repo: repository.NewDishRepository(db)}
}

func validDish(d *entity.Dish) bool {
	return d.ID != 0 && len(d.Name) >= 4 && d.Price > 0
}

func (s *DishService) Create(d *entity.Dish) error {
	if !validDish(d) {
		return ErrInvalidParams
	}

	exists, err := s.Repo.Exists(d.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	return s.Repo.Create(d)
}

func (s *DishService) Get(id uint) (*entity.Dish, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	d, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return d, err
}

// UpdatePrice เปลี่ยนราคาปัจจุบันของจานที่ยัง active
// ไม่กระทบ unit price ที่ถูก snapshot ไว้ใน order lines เดิม
func (s *DishService) UpdatePrice(id uint, price int64) error {
	if id == 0 || price <= 0 {
		return ErrInvalidParams
	}
	n, err := s.Repo.UpdatePrice(id, price)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DishService) UpdateActive(id uint, active bool) error {
	if id == 0 {
		return ErrInvalidParams
	}
	n, err := s.Repo.UpdateActive(id, active)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DishService) Delete(id uint) error {
	if id == 0 {
		return ErrInvalidParams
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		n, err := s.Repo.Delete(tx, id)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return nil
	})
}
