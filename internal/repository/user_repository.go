package repository

import (
	"context"
	"time"

	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	store
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB, timeout time.Duration) UserRepository {
	return &GormUserRepository{store{db: db, timeout: timeout}}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	db, cancel := r.conn(ctx)
	defer cancel()
	return check(db, db.Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, check(db, err)
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, check(db, err)
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, check(db, err)
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context, params utils.PaginationParams) ([]models.User, int64, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, check(db, err)
	}

	var users []models.User
	if err := db.Scopes(database.Paginate(params)).Order("id ASC").Find(&users).Error; err != nil {
		return nil, 0, check(db, err)
	}
	return users, total, nil
}

func (r *GormUserRepository) Search(ctx context.Context, term string, onlyUsername bool, limit int) ([]models.User, error) {
	db, cancel := r.conn(ctx)
	defer cancel()

	query := db.Model(&models.User{})
	if onlyUsername {
		query = query.Scopes(database.ContainsFold("username", term))
	} else {
		query = query.Scopes(database.AnyContainsFold(term, "username", "email"))
	}

	var users []models.User
	if err := query.Order("username ASC").Limit(limit).Find(&users).Error; err != nil {
		return nil, check(db, err)
	}
	return users, nil
}

func (r *GormUserRepository) UpdateFlags(ctx context.Context, id uint64, isActive, isAdmin *bool) error {
	updates := map[string]interface{}{}
	if isActive != nil {
		updates["is_active"] = *isActive
	}
	if isAdmin != nil {
		updates["is_admin"] = *isAdmin
	}
	if len(updates) == 0 {
		return nil
	}

	db, cancel := r.conn(ctx)
	defer cancel()

	result := db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return check(db, result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
