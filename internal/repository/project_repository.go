package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	store
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB, timeout time.Duration) ProjectRepository {
	return &GormProjectRepository{store{db: db, timeout: timeout}}
}

// Create creates a new project
func (r *GormProjectRepository) Create(ctx context.Context, project *models.Project) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return check(db, db.Omit(clause.Associations).Create(project).Error)
}

// FindByID finds a project by ID
func (r *GormProjectRepository) FindByID(ctx context.Context, id uint64) (*models.Project, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var project models.Project
	if err := db.First(&project, id).Error; err != nil {
		return nil, check(db, err)
	}
	return &project, nil
}

func (r *GormProjectRepository) FindByName(ctx context.Context, name string, preloadOwner bool) (*models.Project, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Where("name = ?", name)
	if preloadOwner {
		query = query.Preload("Owner")
	}

	var project models.Project
	if err := query.First(&project).Error; err != nil {
		return nil, check(db, err)
	}
	return &project, nil
}

// participating restricts projects to those userID owns or is a member of.
func participating(db *gorm.DB, userID uint64) func(*gorm.DB) *gorm.DB {
	memberOf := db.Model(&models.ProjectMember{}).Select("project_id").Where("user_id = ?", userID)
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("owner_id = ? OR id IN (?)", userID, memberOf)
	}
}

func (r *GormProjectRepository) ListForUser(ctx context.Context, userID uint64) ([]models.Project, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var projects []models.Project
	if err := db.Scopes(participating(db, userID)).
		Order("recently_viewed DESC").
		Order("id ASC").
		Find(&projects).Error; err != nil {
		return nil, check(db, err)
	}
	return projects, nil
}

func (r *GormProjectRepository) MostRecentForUser(ctx context.Context, userID uint64) (*models.Project, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var project models.Project
	if err := db.Scopes(participating(db, userID)).
		Order("recently_viewed DESC").
		Order("id ASC").
		First(&project).Error; err != nil {
		return nil, check(db, err)
	}
	return &project, nil
}

func (r *GormProjectRepository) UpdateDetails(ctx context.Context, project *models.Project) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&models.Project{ID: project.ID}).
		Select("name", "short_description", "description", "finished").
		Updates(project)
	if result.Error != nil {
		return check(db, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProjectRepository) Touch(ctx context.Context, id uint64, at time.Time) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return check(db, db.Model(&models.Project{}).Where("id = ?", id).UpdateColumn("recently_viewed", at).Error)
}

func (r *GormProjectRepository) SetActive(ctx context.Context, id uint64, active bool) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&models.Project{}).Where("id = ?", id).Update("is_active", active)
	if result.Error != nil {
		return check(db, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProjectRepository) Search(ctx context.Context, term string, onlyName bool, limit int) ([]models.Project, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Model(&models.Project{})
	if onlyName {
		query = query.Scopes(database.ContainsFold("name", term))
	} else {
		query = query.Scopes(database.AnyContainsFold(term, "name", "short_description"))
	}

	var projects []models.Project
	if err := query.Order("name ASC").Limit(limit).Find(&projects).Error; err != nil {
		return nil, check(db, err)
	}
	return projects, nil
}

func (r *GormProjectRepository) CountMembers(ctx context.Context, projectIDs []uint64) (map[uint64]int64, error) {
	if len(projectIDs) == 0 {
		return map[uint64]int64{}, nil
	}

	db, cancel := r.conn(ctx)
	defer cancel()

	var rows []countRow
	if err := db.Model(&models.ProjectMember{}).
		Select("project_id AS id, COUNT(*) AS count").
		Where("project_id IN ?", projectIDs).
		Group("project_id").
		Scan(&rows).Error; err != nil {
		return nil, check(db, err)
	}
	return toCountMap(rows), nil
}

// AddMember adds a member to a project
func (r *GormProjectRepository) AddMember(ctx context.Context, projectID, userID uint64) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	member := &models.ProjectMember{ProjectID: projectID, UserID: userID}
	return check(db, db.Omit(clause.Associations).Create(member).Error)
}

// RemoveMember removes a member from a project
func (r *GormProjectRepository) RemoveMember(ctx context.Context, projectID, userID uint64) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{})
	if result.Error != nil {
		return check(db, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormProjectRepository) IsMember(ctx context.Context, projectID, userID uint64) (bool, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var count int64
	if err := db.Model(&models.ProjectMember{}).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Count(&count).Error; err != nil {
		return false, check(db, err)
	}
	return count > 0, nil
}

// ListMembers lists all members of a project
func (r *GormProjectRepository) ListMembers(ctx context.Context, projectID uint64) ([]models.ProjectMember, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var members []models.ProjectMember
	if err := db.Preload("User").
		Where("project_id = ?", projectID).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, check(db, err)
	}
	return members, nil
}

func (r *GormProjectRepository) TransferOwnership(ctx context.Context, projectID, newOwnerID uint64) error {
	db, cancel := r.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Select("id", "owner_id").First(&project, projectID).Error; err != nil {
			return err
		}
		if project.OwnerID == newOwnerID {
			return nil
		}

		// The previous owner stays on the project as a member
		previous := &models.ProjectMember{ProjectID: projectID, UserID: project.OwnerID}
		if err := tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(previous).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ? AND user_id = ?", projectID, newOwnerID).
			Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		return tx.Model(&models.Project{}).
			Where("id = ?", projectID).
			Update("owner_id", newOwnerID).Error
	})
	return check(db, err)
}
