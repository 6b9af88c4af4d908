package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the caller's tasks in a project grouped by status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	board, err := h.taskService.Board(c.Request.Context(), p, c.Param("projectname"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	resp := dto.ToBoardResponse(board)
	respond(c, http.StatusOK, "", gin.H{
		"todos":   resp.Todos,
		"inProgs": resp.InProgs,
		"done":    resp.Done,
	})
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrMissingTaskFields)
		return
	}

	task, err := h.taskService.Create(c.Request.Context(), p, c.Param("projectname"), req.ToInput())
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully created task!", gin.H{"task": dto.ToTaskDTO(*task)})
}

// UpdateTask replaces the editable fields of a task
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "taskid")
	if !ok {
		return
	}

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrMissingTaskFields)
		return
	}

	if err := h.taskService.Update(c.Request.Context(), p, c.Param("projectname"), taskID, req.ToInput()); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully updated task!", nil)
}

// UpdateTaskStatus moves a task to another status
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	taskID, ok := idParam(c, "taskid")
	if !ok {
		return
	}

	var req dto.TaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.taskService.UpdateStatus(c.Request.Context(), p, c.Param("projectname"), taskID, req.Status); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully updated status!", nil)
}

// GenerateTasks suggests tasks from free text using AI. Nothing is saved.
func (h *TaskHandler) GenerateTasks(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.GenerateTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrAIEmptyText)
		return
	}

	drafts, err := h.taskService.GenerateDrafts(c.Request.Context(), p, c.Param("projectname"), req.Text)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"tasks": dto.ToTaskDraftDTOs(drafts)})
}
