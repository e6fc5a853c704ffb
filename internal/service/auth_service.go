package service

import (
	"errors"
	"fmt"

	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/pkg/jwt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	ValidateToken(tokenString string) (*TokenValidationResponse, error)
	ResetPassword(email, oldPassword, newPassword string) error
}

type LoginResponse struct {
	Token string             `json:"token"`
	User  model.UserResponse `json:"user"`
	Role  *model.Role        `json:"role"`
}

type TokenValidationResponse struct {
	User model.UserResponse `json:"user"`
	Role *model.Role        `json:"role"`
}

type authService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{userRepo: userRepo}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnauthorized, ErrInvalidCredentials)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnauthorized, ErrUserInactive)
	}

	if !user.CheckPassword(password) {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnauthorized, ErrInvalidCredentials)
	}

	token, err := jwt.GenerateToken(user.ID, user.Email, user.FullName, user.RoleCode())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate token", apperr.ErrInternal)
	}

	return &LoginResponse{
		Token: token,
		User:  user.ToResponse(),
		Role:  user.Role,
	}, nil
}

func (s *authService) ValidateToken(tokenString string) (*TokenValidationResponse, error) {
	claims, err := jwt.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnauthorized, err)
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user no longer exists", apperr.ErrUnauthorized)
	}

	if !user.IsActive {
		return nil, fmt.Errorf("%w: %s", apperr.ErrUnauthorized, ErrUserInactive)
	}

	return &TokenValidationResponse{
		User: user.ToResponse(),
		Role: user.Role,
	}, nil
}

func (s *authService) ResetPassword(email, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, email)
	}

	if !user.CheckPassword(oldPassword) {
		return fmt.Errorf("%w: current password is incorrect", apperr.ErrUnauthorized)
	}

	if err := user.SetPassword(newPassword); err != nil {
		return fmt.Errorf("%w: failed to hash new password", apperr.ErrInternal)
	}

	return s.userRepo.Update(user)
}
