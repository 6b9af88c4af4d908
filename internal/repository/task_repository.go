package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	store
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB, timeout time.Duration) TaskRepository {
	return &GormTaskRepository{store{db: db, timeout: timeout}}
}

// Create creates a new task
func (r *GormTaskRepository) Create(ctx context.Context, task *models.Task) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return check(db, db.Omit(clause.Associations).Create(task).Error)
}

func (r *GormTaskRepository) FindInProject(ctx context.Context, projectID, taskID uint64) (*models.Task, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var task models.Task
	if err := db.Where("id = ? AND project_id = ?", taskID, projectID).First(&task).Error; err != nil {
		return nil, check(db, err)
	}
	return &task, nil
}

func (r *GormTaskRepository) UpdateDetails(ctx context.Context, task *models.Task) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Model(&models.Task{ID: task.ID}).
		Select("title", "short_description", "description", "deadline", "assigned_to_id", "status", "priority").
		Updates(task).Error
	return check(db, err)
}

func (r *GormTaskRepository) UpdateStatus(ctx context.Context, taskID uint64, status models.TaskStatus) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&models.Task{}).Where("id = ?", taskID).Update("status", status)
	if result.Error != nil {
		return check(db, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormTaskRepository) ListAssigned(ctx context.Context, projectID, userID uint64, includeInactive bool) ([]models.Task, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Where("project_id = ? AND assigned_to_id = ?", projectID, userID)
	if !includeInactive {
		query = query.Scopes(database.Active)
	}

	var tasks []models.Task
	if err := query.Order("deadline ASC").Order("id ASC").Find(&tasks).Error; err != nil {
		return nil, check(db, err)
	}
	return tasks, nil
}

func (r *GormTaskRepository) CountAssigned(ctx context.Context, userID uint64, projectIDs []uint64) (map[uint64]int64, error) {
	if len(projectIDs) == 0 {
		return map[uint64]int64{}, nil
	}

	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []countRow
	if err := db.Model(&models.Task{}).
		Select("project_id AS id, COUNT(*) AS count").
		Where("assigned_to_id = ? AND project_id IN ?", userID, projectIDs).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, check(db, err)
	}
	return toCountMap(rows), nil
}
