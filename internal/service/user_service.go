package service

import (
	"errors"
	"feelio_backend/internal/model"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 处理用户相关的业务逻辑
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type ChildView struct {
	ID      uint          `json:"id"`
	Name    string        `json:"name"`
	Email   string        `json:"email"`
	Segment model.Segment `json:"segment"`
}

// VerifyPassword 陪伴者切换到家长视图前的 PIN/密码确认
func (s *UserService) VerifyPassword(userID uint, password string) (bool, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrUserNotFound
		}
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil, nil
}

func (s *UserService) GetChildren(parentID uint) ([]ChildView, error) {
	users, err := s.UserRepo.FindChildren(parentID)
	if err != nil {
		return nil, err
	}

	children := make([]ChildView, 0, len(users))
	for _, u := range users {
		children = append(children, ChildView{
			ID:      u.ID,
			Name:    u.Name,
			Email:   u.Email,
			Segment: u.Segment,
		})
	}
	return children, nil
}
