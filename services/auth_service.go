package services

import (
	"errors"

	"backend/entity"
	"backend/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	Repo *repository.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{Repo: repository.NewUserRepository(db)}
}

func (s *AuthService) Register(email, password, name string) (*entity.User, error) {
	if email == "" || len(password) < 8 {
		return nil, ErrInvalidParams
	}

	exists, err := s.Repo.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &entity.User{
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     "staff",
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// โปรไฟล์ของ staff ที่ login อยู่
func (s *AuthService) Me(id uint) (*entity.User, error) {
	if id == 0 {
		return nil, ErrInvalidParams
	}
	u, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return u, err
}

func (s *AuthService) Login(email, password string) (*entity.User, error) {
	u, err := s.Repo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return u, nil
}
