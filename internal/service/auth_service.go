package service

import (
	"errors"
	"feelio_backend/internal/model"
	"feelio_backend/internal/repository"
	"feelio_backend/internal/util"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
}

func NewAuthService(userRepo *repository.UserRepository) *AuthService {
	return &AuthService{UserRepo: userRepo}
}

type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Segment  int    `json:"segment" binding:"required,oneof=1 2"`
	Role     string `json:"role" binding:"omitempty,oneof=kid pendamping"`
	ParentID *uint  `json:"parent_id"`
}

// LoginResult 登录成功返回的用户信息（不签发令牌）
type LoginResult struct {
	Message string         `json:"message"`
	UserID  uint           `json:"user_id"`
	Name    string         `json:"name"`
	Segment model.Segment  `json:"segment"`
	Role    model.UserRole `json:"role"`
}

func (s *AuthService) Signup(req SignupRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if req.ParentID != nil {
		parent, err := s.UserRepo.FindByID(*req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrUserNotFound
			}
			return nil, err
		}
		if parent.Role != model.Guardian {
			return nil, fmt.Errorf("%w: parent must be a guardian account", util.ErrValidation)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := model.UserRole(req.Role)
	if role == "" {
		role = model.Kid
	}

	user := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Segment:      model.Segment(req.Segment),
		Role:         role,
		ParentID:     req.ParentID,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	user, err := s.UserRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, util.ErrInvalidCredentials
	}

	return &LoginResult{
		Message: "Login successful",
		UserID:  user.ID,
		Name:    user.Name,
		Segment: user.Segment,
		Role:    user.Role,
	}, nil
}
