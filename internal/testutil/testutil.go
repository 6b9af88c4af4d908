// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/database"
	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that is closed when the
// test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts an active, non-admin user.
func CreateUser(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hashedpassword",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateAdmin inserts an active admin user.
func CreateAdmin(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := CreateUser(t, db, username)
	require.NoError(t, db.Model(user).Update("is_admin", true).Error)
	user.IsAdmin = true
	return user
}

// CreateProject inserts an active project owned by ownerID.
func CreateProject(t testing.TB, db *gorm.DB, name string, ownerID uint64) *models.Project {
	t.Helper()
	project := &models.Project{
		Name:             name,
		OwnerID:          ownerID,
		ShortDescription: "short",
		Description:      "description",
	}
	require.NoError(t, db.Omit("Owner").Create(project).Error)
	return project
}

// AddMember inserts a membership row.
func AddMember(t testing.TB, db *gorm.DB, projectID, userID uint64) {
	t.Helper()
	require.NoError(t, db.Omit("Project", "User").Create(&models.ProjectMember{ProjectID: projectID, UserID: userID}).Error)
}

// SetActive flips the active flag of a user, project or task.
func SetActive(t testing.TB, db *gorm.DB, model interface{}, active bool) {
	t.Helper()
	require.NoError(t, db.Model(model).Update("is_active", active).Error)
}

// CreateTask inserts an active todo task.
func CreateTask(t testing.TB, db *gorm.DB, projectID, creatorID, assigneeID uint64, title string, status models.TaskStatus) *models.Task {
	t.Helper()
	task := &models.Task{
		ProjectID:        projectID,
		Title:            title,
		ShortDescription: "short",
		CreatedByID:      creatorID,
		AssignedToID:     assigneeID,
		Status:           status,
		Priority:         models.TaskPriorityLow,
	}
	require.NoError(t, db.Omit("Project", "CreatedBy", "AssignedTo").Create(task).Error)
	return task
}
