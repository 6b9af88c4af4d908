package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// ListProjects returns every project the caller owns or is a member of
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	summaries, err := h.projectService.ListForUser(c.Request.Context(), p)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"projects": dto.ToProjectListItems(summaries)})
}

// CreateProject creates a project owned by the caller
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrMissingProjectFields)
		return
	}

	if _, err := h.projectService.Create(c.Request.Context(), p, services.ProjectInput{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Finished:         req.Finished,
	}); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully created project!", nil)
}

// GetRecentProject returns the name of the project the caller viewed last
func (h *ProjectHandler) GetRecentProject(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	name, err := h.projectService.RecentProjectName(c.Request.Context(), p)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"projectName": name})
}

// GetProject returns a project and marks it as recently viewed
func (h *ProjectHandler) GetProject(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	project, err := h.projectService.Get(c.Request.Context(), p, c.Param("projectname"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"project": dto.ToProjectDTO(*project, p.UserID)})
}

// GetProjectDetailed returns a project with its owner
func (h *ProjectHandler) GetProjectDetailed(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetDetailed(c.Request.Context(), p, c.Param("projectname"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"project": dto.ToProjectDetailDTO(*project)})
}

// UpdateProject changes the details of a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrMissingProjectFields)
		return
	}

	if err := h.projectService.Update(c.Request.Context(), p, c.Param("projectname"), services.ProjectInput{
		Name:             req.Name,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Finished:         req.Finished,
	}); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully updated project!", nil)
}

// SearchProjects matches projects by name. Admin only.
func (h *ProjectHandler) SearchProjects(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	onlyName, ok := boolParam(c, "onlyName")
	if !ok {
		return
	}

	summaries, err := h.projectService.Search(c.Request.Context(), p, c.Param("search"), onlyName)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"projects": dto.ToProjectListItems(summaries)})
}

// GetProjectOwner returns the owner of a project
func (h *ProjectHandler) GetProjectOwner(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	owner, err := h.projectService.GetOwner(c.Request.Context(), p, c.Param("projectname"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"owner": dto.ToUserDTO(*owner, true)})
}

// IsProjectOwner reports whether the caller owns a project
func (h *ProjectHandler) IsProjectOwner(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	projectID, ok := idParam(c, "projectid")
	if !ok {
		return
	}

	isOwner, err := h.projectService.IsOwner(c.Request.Context(), p, projectID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"isOwner": isOwner})
}

// TransferOwnership hands a project to another user. Admin only.
func (h *ProjectHandler) TransferOwnership(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.TransferOwnerRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.projectService.TransferOwnership(c.Request.Context(), p, c.Param("projectname"), req.NewOwner); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully changed the owner!", nil)
}

// GetActiveStatus reports whether a project is active
func (h *ProjectHandler) GetActiveStatus(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	active, err := h.projectService.GetActiveStatus(c.Request.Context(), p, c.Param("projectname"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"isActive": active})
}

// SetActiveStatus activates or deactivates a project. Admin only.
func (h *ProjectHandler) SetActiveStatus(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.ActiveStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.projectService.SetActiveStatus(c.Request.Context(), p, c.Param("projectname"), *req.NewStatus); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully changed the status!", nil)
}
