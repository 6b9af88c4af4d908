package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	userRepo    repository.UserRepository
	access      projectAccess
	now         func() time.Time
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		access:      projectAccess{projects: projectRepo},
		now:         time.Now,
	}
}

// ProjectSummary is a project as listed on the dashboard.
type ProjectSummary struct {
	Project     models.Project
	IsOwner     bool
	MemberCount int64
	TaskCount   int64
}

// ProjectInput represents input for creating or updating a project
type ProjectInput struct {
	Name             string
	ShortDescription string
	Description      string
	Finished         string
}

// ListForUser lists every project the caller owns or is a member of.
// MemberCount includes the owner; TaskCount is the caller's own tasks.
func (s *ProjectService) ListForUser(ctx context.Context, p policy.Principal) ([]ProjectSummary, error) {
	projects, err := s.projectRepo.ListForUser(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return s.summarize(ctx, p, projects)
}

func (s *ProjectService) summarize(ctx context.Context, p policy.Principal, projects []models.Project) ([]ProjectSummary, error) {
	ids := make([]uint64, len(projects))
	for i, project := range projects {
		ids[i] = project.ID
	}

	memberCounts, err := s.projectRepo.CountMembers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	taskCounts, err := s.taskRepo.CountAssigned(ctx, p.UserID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	summaries := make([]ProjectSummary, len(projects))
	for i, project := range projects {
		summaries[i] = ProjectSummary{
			Project:     project,
			IsOwner:     project.OwnerID == p.UserID,
			MemberCount: memberCounts[project.ID] + 1,
			TaskCount:   taskCounts[project.ID],
		}
	}
	return summaries, nil
}

// Create creates a project owned by the caller. The name is slugified.
func (s *ProjectService) Create(ctx context.Context, p policy.Principal, input ProjectInput) (*models.Project, error) {
	name := utils.Slugify(input.Name)
	if name == "" || strings.TrimSpace(input.ShortDescription) == "" {
		return nil, ErrMissingProjectFields
	}

	finished, err := utils.ParseDate(input.Finished, s.now().Add(constants.DefaultProjectDuration))
	if err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.projectRepo.FindByName(ctx, name, false); err == nil {
		return nil, ErrProjectNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check project name: %w", err)
	}

	project := &models.Project{
		OwnerID:          p.UserID,
		Name:             name,
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		Description:      input.Description,
		Finished:         finished,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrProjectNameTaken
		}
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return project, nil
}

// RecentProjectName returns the name of the project the caller viewed last.
func (s *ProjectService) RecentProjectName(ctx context.Context, p policy.Principal) (string, error) {
	project, err := s.projectRepo.MostRecentForUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNoRecentProject
		}
		return "", fmt.Errorf("failed to find recent project: %w", err)
	}
	return project.Name, nil
}

// Get returns a project and records the view.
func (s *ProjectService) Get(ctx context.Context, p policy.Principal, name string) (*models.Project, error) {
	project, _, err := s.access.authorize(ctx, p, name, policy.ActionViewProject)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.projectRepo.Touch(ctx, project.ID, now); err != nil {
		log.Printf("failed to record view of project %d: %v", project.ID, err)
	} else {
		project.RecentlyViewed = now
	}
	return project, nil
}

// GetDetailed returns a project with its owner loaded.
func (s *ProjectService) GetDetailed(ctx context.Context, p policy.Principal, name string) (*models.Project, error) {
	project, state, err := s.access.load(ctx, p, name, true)
	if err != nil {
		return nil, err
	}
	if err := enforce(policy.Decide(p, state, policy.ActionViewProject)); err != nil {
		return nil, err
	}
	return project, nil
}

// Update changes the details of a project. An empty finish date keeps the
// current one.
func (s *ProjectService) Update(ctx context.Context, p policy.Principal, name string, input ProjectInput) error {
	newName := utils.Slugify(input.Name)
	if newName == "" || strings.TrimSpace(input.ShortDescription) == "" {
		return ErrMissingProjectFields
	}

	project, _, err := s.access.authorize(ctx, p, name, policy.ActionUpdateProject)
	if err != nil {
		return err
	}

	finished, err := utils.ParseDate(input.Finished, project.Finished)
	if err != nil {
		return ErrInvalidDate
	}

	if newName != project.Name {
		existing, err := s.projectRepo.FindByName(ctx, newName, false)
		if err == nil && existing.ID != project.ID {
			return ErrProjectNameTaken
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check project name: %w", err)
		}
	}

	project.Name = newName
	project.ShortDescription = strings.TrimSpace(input.ShortDescription)
	project.Description = input.Description
	project.Finished = finished

	if err := s.projectRepo.UpdateDetails(ctx, project); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			return ErrProjectNameTaken
		case errors.Is(err, gorm.ErrRecordNotFound):
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Search finds projects by name, or by name and short description. Admin only.
func (s *ProjectService) Search(ctx context.Context, p policy.Principal, term string, onlyName bool) ([]ProjectSummary, error) {
	if err := enforce(policy.DecideAdmin(p, policy.ActionSearchProjects)); err != nil {
		return nil, err
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrEmptySearch
	}

	projects, err := s.projectRepo.Search(ctx, term, onlyName, constants.MaxSearchResults)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	return s.summarize(ctx, p, projects)
}

// GetOwner returns the owner of a project.
func (s *ProjectService) GetOwner(ctx context.Context, p policy.Principal, name string) (*models.User, error) {
	project, err := s.GetDetailed(ctx, p, name)
	if err != nil {
		return nil, err
	}
	return &project.Owner, nil
}

// IsOwner reports whether the caller owns the project with the given id.
func (s *ProjectService) IsOwner(ctx context.Context, p policy.Principal, projectID uint64) (bool, error) {
	project, err := s.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrProjectNotFound
		}
		return false, fmt.Errorf("failed to find project: %w", err)
	}
	return project.OwnerID == p.UserID, nil
}

// TransferOwnership hands a project to another user. Admin only. The
// previous owner stays on as a member.
func (s *ProjectService) TransferOwnership(ctx context.Context, p policy.Principal, name string, newOwnerID uint64) error {
	project, state, err := s.access.load(ctx, p, name, false)
	if err != nil {
		return err
	}
	if err := enforce(policy.Decide(p, state, policy.ActionTransferOwnership)); err != nil {
		return err
	}

	if _, err := s.userRepo.FindByID(ctx, newOwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	target, err := s.access.target(ctx, project, newOwnerID)
	if err != nil {
		return err
	}
	if err := enforce(policy.DecideTransfer(p, state, target)); err != nil {
		return err
	}

	if err := s.projectRepo.TransferOwnership(ctx, project.ID, newOwnerID); err != nil {
		return fmt.Errorf("failed to transfer ownership: %w", err)
	}
	return nil
}

// GetActiveStatus reports whether a project is active. Members may read it
// even when the project is inactive.
func (s *ProjectService) GetActiveStatus(ctx context.Context, p policy.Principal, name string) (bool, error) {
	project, _, err := s.access.authorize(ctx, p, name, policy.ActionViewActiveStatus)
	if err != nil {
		return false, err
	}
	return project.IsActive, nil
}

// SetActiveStatus activates or deactivates a project. Admin only.
func (s *ProjectService) SetActiveStatus(ctx context.Context, p policy.Principal, name string, active bool) error {
	project, _, err := s.access.authorize(ctx, p, name, policy.ActionSetActiveStatus)
	if err != nil {
		return err
	}

	if err := s.projectRepo.SetActive(ctx, project.ID, active); err != nil {
		return fmt.Errorf("failed to update project status: %w", err)
	}
	return nil
}
