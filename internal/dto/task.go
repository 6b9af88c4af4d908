package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// TaskRequest is the body for creating or replacing a task
type TaskRequest struct {
	Title            string `json:"title" binding:"required"`
	ShortDescription string `json:"shortDescription" binding:"required"`
	Description      string `json:"description"`
	Deadline         string `json:"deadline"`
	AssignedTo       uint64 `json:"assignedTo" binding:"required"`
	Status           string `json:"status" binding:"required"`
	Priority         string `json:"priority" binding:"required"`
}

// TaskStatusRequest moves a task to another column
type TaskStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GenerateTasksRequest is free text to turn into task drafts
type GenerateTasksRequest struct {
	Text string `json:"text" binding:"required"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64              `json:"id"`
	ProjectID        uint64              `json:"projectId"`
	Title            string              `json:"title"`
	ShortDescription string              `json:"shortDescription"`
	Description      string              `json:"description"`
	Deadline         string              `json:"deadline"`
	CreatedBy        uint64              `json:"createdBy"`
	AssignedTo       uint64              `json:"assignedTo"`
	IsActive         bool                `json:"isActive"`
	Status           models.TaskStatus   `json:"status"`
	Priority         models.TaskPriority `json:"priority"`
	CreatedAt        string              `json:"createdAt"`
}

// BoardResponse groups the caller's tasks by status
type BoardResponse struct {
	Todos   []TaskDTO `json:"todos"`
	InProgs []TaskDTO `json:"inProgs"`
	Done    []TaskDTO `json:"done"`
}

// TaskDraftDTO is a generated task suggestion. Drafts are not saved.
type TaskDraftDTO struct {
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	Priority         string `json:"priority"`
	Deadline         string `json:"deadline,omitempty"`
}

// ToInput converts the request into service input
func (r TaskRequest) ToInput() services.TaskInput {
	return services.TaskInput{
		Title:            r.Title,
		ShortDescription: r.ShortDescription,
		Description:      r.Description,
		Deadline:         r.Deadline,
		AssignedTo:       r.AssignedTo,
		Status:           r.Status,
		Priority:         r.Priority,
	}
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID,
		ProjectID:        task.ProjectID,
		Title:            task.Title,
		ShortDescription: task.ShortDescription,
		Description:      task.Description,
		Deadline:         utils.FormatDate(task.Deadline),
		CreatedBy:        task.CreatedByID,
		AssignedTo:       task.AssignedToID,
		IsActive:         task.IsActive,
		Status:           task.Status,
		Priority:         task.Priority,
		CreatedAt:        utils.FormatDate(task.CreatedAt),
	}
}

func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}

func ToBoardResponse(board *services.Board) BoardResponse {
	return BoardResponse{
		Todos:   ToTaskDTOs(board.Todos),
		InProgs: ToTaskDTOs(board.InProgs),
		Done:    ToTaskDTOs(board.Done),
	}
}

func ToTaskDraftDTOs(drafts []services.TaskDraft) []TaskDraftDTO {
	dtos := make([]TaskDraftDTO, len(drafts))
	for i, d := range drafts {
		dtos[i] = TaskDraftDTO{
			Title:            d.Title,
			ShortDescription: d.ShortDescription,
			Description:      d.Description,
			Priority:         d.Priority,
		}
		if d.Deadline != nil {
			dtos[i].Deadline = d.Deadline.UTC().Format(time.RFC3339)
		}
	}
	return dtos
}
