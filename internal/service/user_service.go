package service

import (
	"fmt"

	"go-pos-ledger/internal/apperr"
	"go-pos-ledger/internal/model"
	"go-pos-ledger/internal/repository"
	"go-pos-ledger/pkg/validator"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	RoleCode string `json:"role_code" validate:"required"`
}

type UserService interface {
	CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error)
	GetUsers() ([]model.User, error)
	DeactivateUser(id uuid.UUID, actor Actor) error
}

type userService struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	notifier AuditNotifier
}

func NewUserService(userRepo repository.UserRepository, roleRepo repository.RoleRepository, notifier AuditNotifier) UserService {
	return &userService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		notifier: notifier,
	}
}

func (s *userService) CreateUser(req *CreateUserRequest, actor Actor) (*model.User, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return nil, fmt.Errorf("%w: field '%s' failed on tag '%s'", apperr.ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, fmt.Errorf("%w: email %s already registered", apperr.ErrConflict, req.Email)
	}

	role, err := s.roleRepo.FindByCode(req.RoleCode)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown role %s", apperr.ErrValidation, req.RoleCode)
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		RoleID:   &role.ID,
		Role:     role,
		IsActive: true,
	}
	user.CreatedBy = actor.ID
	user.UpdatedBy = actor.ID

	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("%w: failed to hash password", apperr.ErrInternal)
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.notifier.Record(actor, fmt.Sprintf("User created: %s (%s)", user.Email, role.Code), "user:"+user.ID.String())
	return user, nil
}

func (s *userService) GetUsers() ([]model.User, error) {
	return s.userRepo.FindAll()
}

func (s *userService) DeactivateUser(id uuid.UUID, actor Actor) error {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return fmt.Errorf("%w: user %s", apperr.ErrNotFound, id)
	}

	if err := s.userRepo.SetActive(id, false); err != nil {
		return err
	}

	s.notifier.Record(actor, fmt.Sprintf("User deactivated: %s", user.Email), "user:"+id.String())
	return nil
}
