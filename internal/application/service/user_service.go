package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/yatrasutra/invoice-backend/internal/domain/entity"
	"github.com/yatrasutra/invoice-backend/internal/domain/repository"
	"github.com/yatrasutra/invoice-backend/pkg/apperror"
	"github.com/yatrasutra/invoice-backend/pkg/pagination"
)

// UserService handles account management operations
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers lists accounts with pagination and search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.User, int64, error) {
	return s.userRepo.List(ctx, params, search)
}

// GetUser retrieves an account by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateRole changes an account's role
func (s *UserService) UpdateRole(ctx context.Context, id uuid.UUID, role string) (*entity.User, error) {
	if role != entity.RoleAdmin && role != entity.RoleAgent {
		return nil, apperror.NewBadRequestError("Unknown role")
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser soft-deletes an account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, user.ID)
}
