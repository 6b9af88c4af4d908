package models

import "time"

// ProjectMember is a non-owner participant of a project. The pair is unique
// at the schema level so concurrent adds cannot both succeed.
type ProjectMember struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	ProjectID uint64    `gorm:"not null;uniqueIndex:idx_project_members_project_user" json:"projectId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_project_members_project_user;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
	User    User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
