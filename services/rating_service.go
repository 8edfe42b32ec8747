package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type RatingService struct {
	DB       *gorm.DB
	Repo     *repository.RatingRepository
	CustRepo *repository.CustomerRepository
	DishRepo *repository.DishRepository
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{
		DB:       db,
		Repo:     repository.NewRatingRepository(db),
		CustRepo: repository.NewCustomerRepository(db),
		DishRepo: repository.NewDishRepository(db),
	}
}

func (s *RatingService) Create(customerID, dishID uint, value int) error {
	if customerID == 0 || dishID == 0 || value < 1 || value > 5 {
		return ErrInvalidParams
	}

	custExists, err := s.CustRepo.Exists(customerID)
	if err != nil {
		return err
	}
	dishExists, err := s.DishRepo.Exists(dishID)
	if err != nil {
		return err
	}
	if !custExists || !dishExists {
		return ErrNotFound
	}

	rated, err := s.Repo.Exists(customerID, dishID)
	if err != nil {
		return err
	}
	if rated {
		// ให้คะแนนซ้ำไม่ได้ ต้องลบก่อน
		return ErrAlreadyExists
	}

	return s.Repo.Create(&entity.Rating{
		CustomerID: customerID,
		DishID:     dishID,
		Value:      value,
	})
}

func (s *RatingService) Delete(customerID, dishID uint) error {
	if customerID == 0 || dishID == 0 {
		return ErrInvalidParams
	}
	n, err := s.Repo.Delete(customerID, dishID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RatingService) ListByCustomer(customerID uint) ([]entity.Rating, error) {
	if customerID == 0 {
		return nil, ErrInvalidParams
	}
	ratings, err := s.Repo.ListByCustomer(customerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []entity.Rating{}, nil
	}
	return ratings, err
}
