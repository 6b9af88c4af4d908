package database

import (
	"fmt"
	"log"
	"strings"

	"github.com/yukikurage/project-management-api/internal/models"
	"gorm.io/gorm"
)

// compositeIndex is an index gorm cannot express with a single-column tag.
type compositeIndex struct {
	model   interface{}
	name    string
	columns []string
}

// AddIndexes adds the indexes used by board and dashboard queries.
func AddIndexes(db *gorm.DB) error {
	indexes := []compositeIndex{
		// Board lookups: all tasks of a project by state
		{&models.Task{}, "idx_tasks_project_active_status", []string{"project_id", "is_active", "status"}},
		// Dashboard task counts
		{&models.Task{}, "idx_tasks_project_assignee", []string{"project_id", "assigned_to_id"}},
		// Project search and recent listing
		{&models.Project{}, "idx_projects_active_recent", []string{"is_active", "recently_viewed"}},
	}

	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}

		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(idx.model); err != nil {
			return fmt.Errorf("failed to parse model for index %s: %w", idx.name, err)
		}

		cols := strings.Join(idx.columns, ", ")
		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, stmt.Schema.Table, cols)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Printf("Created index %s on %s(%s)", idx.name, stmt.Schema.Table, cols)
	}

	return nil
}
