package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

// MemberService handles project membership
type MemberService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	access      projectAccess
}

// NewMemberService creates a new MemberService
func NewMemberService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *MemberService {
	return &MemberService{
		projectRepo: projectRepo,
		userRepo:    userRepo,
		access:      projectAccess{projects: projectRepo},
	}
}

// Participant is a member or the owner of a project.
type Participant struct {
	ID       uint64
	Username string
	IsOwner  bool
}

// List returns the members of a project followed by its owner.
func (s *MemberService) List(ctx context.Context, p policy.Principal, name string) ([]Participant, error) {
	project, state, err := s.access.load(ctx, p, name, true)
	if err != nil {
		return nil, err
	}
	if err := enforce(policy.Decide(p, state, policy.ActionListMembers)); err != nil {
		return nil, err
	}

	members, err := s.projectRepo.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}

	participants := make([]Participant, 0, len(members)+1)
	for _, m := range members {
		participants = append(participants, Participant{
			ID:       m.User.ID,
			Username: m.User.Username,
		})
	}
	participants = append(participants, Participant{
		ID:       project.Owner.ID,
		Username: project.Owner.Username,
		IsOwner:  true,
	})
	return participants, nil
}

// Add makes userID a member of the project.
func (s *MemberService) Add(ctx context.Context, p policy.Principal, name string, userID uint64) error {
	project, state, err := s.access.load(ctx, p, name, false)
	if err != nil {
		return err
	}
	// Reject callers without rights before revealing whether the user exists
	if err := enforce(policy.Decide(p, state, policy.ActionAddMember)); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	target, err := s.access.target(ctx, project, userID)
	if err != nil {
		return err
	}
	if err := enforce(policy.DecideAddMember(p, state, target)); err != nil {
		return err
	}

	if err := s.projectRepo.AddMember(ctx, project.ID, userID); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return Denied(policy.ReasonAlreadyMember)
		}
		return fmt.Errorf("failed to add member: %w", err)
	}
	return nil
}

// Remove takes userID off the project. The owner can never be removed.
func (s *MemberService) Remove(ctx context.Context, p policy.Principal, name string, userID uint64) error {
	project, state, err := s.access.load(ctx, p, name, false)
	if err != nil {
		return err
	}

	target, err := s.access.target(ctx, project, userID)
	if err != nil {
		return err
	}
	if err := enforce(policy.DecideRemoveMember(p, state, target)); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveMember(ctx, project.ID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Denied(policy.ReasonNotMember)
		}
		return fmt.Errorf("failed to remove member: %w", err)
	}
	return nil
}
