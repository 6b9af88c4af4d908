package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// UserService handles user lookups and admin user management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ResolvePrincipal turns an authenticated user id into a principal. Users
// that were deleted or deactivated after the token was issued are rejected.
func (s *UserService) ResolvePrincipal(ctx context.Context, userID uint64) (policy.Principal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.Principal{}, ErrUnknownPrincipal
		}
		return policy.Principal{}, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.IsActive {
		return policy.Principal{}, ErrUnknownPrincipal
	}
	return policy.Principal{UserID: user.ID, IsAdmin: user.IsAdmin}, nil
}

// CheckAdmin reports whether the user currently holds admin rights.
func (s *UserService) CheckAdmin(ctx context.Context, userID uint64) (bool, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	return user.IsAdmin, nil
}

// ListUsers returns one page of users. Admin only.
func (s *UserService) ListUsers(ctx context.Context, p policy.Principal, params utils.PaginationParams) ([]models.User, int64, error) {
	if err := enforce(policy.DecideAdmin(p, policy.ActionListUsers)); err != nil {
		return nil, 0, err
	}

	users, total, err := s.userRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// SearchUsers finds users by username, or by username and email.
func (s *UserService) SearchUsers(ctx context.Context, term string, onlyUsername bool) ([]models.User, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptySearch
	}

	users, err := s.userRepo.Search(ctx, term, onlyUsername, constants.MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

// UpdateUserFlags lets an admin activate, deactivate, promote or demote
// another user.
func (s *UserService) UpdateUserFlags(ctx context.Context, p policy.Principal, targetID uint64, isActive, isAdmin *bool) error {
	if err := enforce(policy.DecideUserUpdate(p, targetID)); err != nil {
		return err
	}
	if isActive == nil && isAdmin == nil {
		return ErrNoFlagsGiven
	}

	if err := s.userRepo.UpdateFlags(ctx, targetID, isActive, isAdmin); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
