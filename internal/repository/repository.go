package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// ErrDuplicateKey is returned when a write violates a unique index.
var ErrDuplicateKey = errors.New("repository: duplicate key")

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns one page of users ordered by ID and the total count
	List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error)

	// Search matches username, and email unless onlyUsername is set
	Search(ctx context.Context, term string, onlyUsername bool, limit int) ([]models.User, error)

	// UpdateFlags sets the flags that are not nil
	UpdateFlags(ctx context.Context, id uint64, isActive, isAdmin *bool) error
}

// ProjectRepository defines the interface for project and membership data access
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, id uint64) (*models.Project, error)

	// FindByName finds a project by its unique name, optionally with its owner
	FindByName(ctx context.Context, name string, preloadOwner bool) (*models.Project, error)

	// ListForUser lists the projects a user owns or is a member of
	ListForUser(ctx context.Context, userID uint64) ([]models.Project, error)

	// MostRecentForUser returns the project the user viewed last
	MostRecentForUser(ctx context.Context, userID uint64) (*models.Project, error)

	// UpdateDetails writes name, descriptions and finish date
	UpdateDetails(ctx context.Context, project *models.Project) error

	// Touch records that the project was just viewed
	Touch(ctx context.Context, id uint64, at time.Time) error

	SetActive(ctx context.Context, id uint64, active bool) error

	// Search matches name, and shortDescription unless onlyName is set
	Search(ctx context.Context, term string, onlyName bool, limit int) ([]models.Project, error)

	// CountMembers returns member counts keyed by project ID
	CountMembers(ctx context.Context, projectIDs []uint64) (map[uint64]int64, error)

	AddMember(ctx context.Context, projectID, userID uint64) error
	RemoveMember(ctx context.Context, projectID, userID uint64) error
	IsMember(ctx context.Context, projectID, userID uint64) (bool, error)

	// ListMembers lists the members of a project with their users loaded
	ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error)

	// TransferOwnership makes newOwnerID the owner. The previous owner becomes
	// a member and the new owner's membership is dropped, all in one transaction.
	TransferOwnership(ctx context.Context, projectID, newOwnerID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *models.Task) error

	// FindInProject finds a task that belongs to the given project
	FindInProject(ctx context.Context, projectID, taskID uint64) (*models.Task, error)

	// UpdateDetails writes every editable field of the task
	UpdateDetails(ctx context.Context, task *models.Task) error

	UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus) error

	// ListAssigned lists the tasks of a project assigned to a user
	ListAssigned(ctx context.Context, projectID, userID uint64, includeInactive bool) ([]models.Task, error)

	// CountAssigned returns, per project, how many tasks are assigned to a user
	CountAssigned(ctx context.Context, userID uint64, projectIDs []uint64) (map[uint64]int64, error)
}

// store is embedded by every GORM repository. Each call gets its own
// deadline derived from timeout.
type store struct {
	db      *gorm.DB
	timeout time.Duration
}

func (s store) conn(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if s.timeout <= 0 {
		return s.db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	return s.db.WithContext(ctx), cancel
}

// check maps driver level failures onto repository errors. A call cut short
// by its deadline reports context.DeadlineExceeded whatever the driver says.
func check(db *gorm.DB, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateKey
	}
	if ctxErr := db.Statement.Context.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return err
}

type countRow struct {
	ID    uint64
	Count int64
}

func toCountMap(rows []countRow) map[uint64]int64 {
	counts := make(map[uint64]int64, len(rows))
	for _, r := range rows {
		counts[r.ID] = r.Count
	}
	return counts
}
