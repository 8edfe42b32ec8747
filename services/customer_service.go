package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB   *gorm.DB
	Repo *repository.CustomerRepository
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db, Repo: repository.NewCustomerRepository(db)}
}

func validCustomer(c *entity.Customer) bool {
	if c.ID == 0 || c.FullName == "" {
		return false
	}
	if c.Age < 18 || c.Age > 120 {
		return false
	}
	if len(c.Phone) != 10 {
		return false
	}
	for _, r := range c.Phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *CustomerService) Create(c *entity.Customer) error {
	if !validCustomer(c) {
		return ErrInvalidParams
	}

	exists, err := s.Repo.Exists(c.ID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyExists
	}

	return s.Repo.Create(c)
}

func (s *CustomerService) Get(id uint) (*entity.Customer, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	c, err := s.Repo.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return c, err
}

func (s *CustomerService) Delete(id uint) error {
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
