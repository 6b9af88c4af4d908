package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/repository"
	"gorm.io/gorm"
)

// projectAccess loads the current state of a project for policy decisions.
// Nothing is cached between calls.
type projectAccess struct {
	projects repository.ProjectRepository
}

// load finds the project by name and reports the principal's standing in it.
func (a projectAccess) load(ctx context.Context, p policy.Principal, name string, preloadOwner bool) (*models.Project, policy.ProjectState, error) {
	project, err := a.projects.FindByName(ctx, name, preloadOwner)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, policy.ProjectState{}, ErrProjectNotFound
		}
		return nil, policy.ProjectState{}, fmt.Errorf("failed to find project: %w", err)
	}

	state := policy.ProjectState{
		OwnerID:  project.OwnerID,
		IsActive: project.IsActive,
	}

	// Admins and owners never need the membership lookup
	if !p.IsAdmin && p.UserID != project.OwnerID {
		state.IsMember, err = a.projects.IsMember(ctx, project.ID, p.UserID)
		if err != nil {
			return nil, policy.ProjectState{}, fmt.Errorf("failed to check membership: %w", err)
		}
	}

	return project, state, nil
}

// authorize loads the project and applies the rule for action.
func (a projectAccess) authorize(ctx context.Context, p policy.Principal, name string, action policy.Action) (*models.Project, policy.ProjectState, error) {
	project, state, err := a.load(ctx, p, name, false)
	if err != nil {
		return nil, state, err
	}
	if err := enforce(policy.Decide(p, state, action)); err != nil {
		return nil, state, err
	}
	return project, state, nil
}

// target describes userID relative to project.
func (a projectAccess) target(ctx context.Context, project *models.Project, userID uint64) (policy.Target, error) {
	t := policy.Target{UserID: userID}
	if userID == project.OwnerID {
		return t, nil
	}

	isMember, err := a.projects.IsMember(ctx, project.ID, userID)
	if err != nil {
		return t, fmt.Errorf("failed to check membership: %w", err)
	}
	t.IsMember = isMember
	return t, nil
}
