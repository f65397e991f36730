package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dinein/model"
	"dinein/repository"
	"dinein/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" form:"name" binding:"required,max=255"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	Phone    string `json:"phone" form:"phone"`
	// Role may only be customer or owner; admins are seeded.
	Role string `json:"role" form:"role" binding:"omitempty,oneof=customer owner"`
}

type AuthService struct {
	users  *repository.UserRepository
	tokens *utils.TokenManager
}

func NewAuthService(db *gorm.DB, tokens *utils.TokenManager) *AuthService {
	return &AuthService{users: repository.NewUserRepository(db), tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		Name:     in.Name,
		Email:    email,
		Password: string(hash),
		Phone:    in.Phone,
		Role:     model.RoleCustomer,
	}
	if in.Role != "" {
		u.Role = model.UserRole(in.Role)
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues an access and a refresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*utils.TokenPair, error) {
	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.tokens.GenerateTokens(string(u.Role), u.ID)
}

func (s *AuthService) Refresh(refreshToken string) (*utils.TokenPair, error) {
	return s.tokens.RefreshTokens(refreshToken)
}
