package dto

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

// ProjectRequest is the body for creating or updating a project
type ProjectRequest struct {
	Name             string `json:"name" binding:"required"`
	ShortDescription string `json:"shortDescription" binding:"required"`
	Description      string `json:"description"`
	Finished         string `json:"finished"`
}

// TransferOwnerRequest names the new owner of a project
type TransferOwnerRequest struct {
	NewOwner uint64 `json:"newOwner" binding:"required"`
}

// ActiveStatusRequest activates or deactivates a project
type ActiveStatusRequest struct {
	NewStatus *bool `json:"newStatus" binding:"required"`
}

// ProjectListItemDTO is a project on the dashboard or in search results
type ProjectListItemDTO struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	IsOwner          bool   `json:"isOwner"`
	ShortDescription string `json:"shortDescription"`
	IsActive         bool   `json:"isActive"`
	Finished         string `json:"finished"`
	MemberCount      int64  `json:"memberCount"`
	TaskCount        int64  `json:"taskCount"`
	RecentlyViewed   string `json:"recentlyViewed,omitempty"`
}

// ProjectDTO is a single project as viewed by a participant
type ProjectDTO struct {
	ID               uint64 `json:"id"`
	Name             string `json:"name"`
	IsOwner          bool   `json:"isOwner"`
	ShortDescription string `json:"shortDescription"`
	Description      string `json:"description"`
	Finished         string `json:"finished"`
}

// ProjectDetailDTO is a project with its owner
type ProjectDetailDTO struct {
	ID               uint64  `json:"id"`
	Name             string  `json:"name"`
	Owner            UserDTO `json:"owner"`
	ShortDescription string  `json:"shortDescription"`
	Description      string  `json:"description"`
	IsActive         bool    `json:"isActive"`
	Finished         string  `json:"finished"`
	CreatedAt        string  `json:"createdAt"`
}

func ToProjectListItems(summaries []services.ProjectSummary) []ProjectListItemDTO {
	items := make([]ProjectListItemDTO, len(summaries))
	for i, s := range summaries {
		item := ProjectListItemDTO{
			ID:               s.Project.ID,
			Name:             s.Project.Name,
			IsOwner:          s.IsOwner,
			ShortDescription: s.Project.ShortDescription,
			IsActive:         s.Project.IsActive,
			Finished:         utils.FormatDate(s.Project.Finished),
			MemberCount:      s.MemberCount,
			TaskCount:        s.TaskCount,
		}
		if !s.Project.RecentlyViewed.IsZero() {
			item.RecentlyViewed = s.Project.RecentlyViewed.UTC().Format(time.RFC3339)
		}
		items[i] = item
	}
	return items
}

func ToProjectDTO(project models.Project, callerID uint64) ProjectDTO {
	return ProjectDTO{
		ID:               project.ID,
		Name:             project.Name,
		IsOwner:          project.OwnerID == callerID,
		ShortDescription: project.ShortDescription,
		Description:      project.Description,
		Finished:         utils.FormatDate(project.Finished),
	}
}

func ToProjectDetailDTO(project models.Project) ProjectDetailDTO {
	return ProjectDetailDTO{
		ID:               project.ID,
		Name:             project.Name,
		Owner:            ToUserDTO(project.Owner, true),
		ShortDescription: project.ShortDescription,
		Description:      project.Description,
		IsActive:         project.IsActive,
		Finished:         utils.FormatDate(project.Finished),
		CreatedAt:        utils.FormatDate(project.CreatedAt),
	}
}
