package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "inprogress"
	TaskStatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityNormal, TaskPriorityHigh:
		return true
	}
	return false
}

type Task struct {
	ID               uint64       `gorm:"primarykey" json:"id"`
	ProjectID        uint64       `gorm:"not null;index" json:"projectId"`
	Title            string       `gorm:"not null" json:"title"`
	ShortDescription string       `gorm:"type:varchar(255);not null" json:"shortDescription"`
	Description      string       `gorm:"type:text" json:"description"`
	Deadline         time.Time    `json:"deadline"`
	CreatedByID      uint64       `gorm:"not null" json:"createdBy"`
	AssignedToID     uint64       `gorm:"not null;index" json:"assignedTo"`
	IsActive         bool         `gorm:"not null;default:true" json:"isActive"`
	Status           TaskStatus   `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Priority         TaskPriority `gorm:"type:varchar(20);not null;default:'low'" json:"priority"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"-"`
	CreatedBy  User    `gorm:"foreignKey:CreatedByID" json:"-"`
	AssignedTo User    `gorm:"foreignKey:AssignedToID" json:"-"`
}
