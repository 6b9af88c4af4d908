package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/utils"
	"gorm.io/gorm"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	generator   TaskDraftGenerator
	access      projectAccess
	now         func() time.Time
}

// NewTaskService creates a new TaskService. generator may be nil, in which
// case draft generation reports ErrAINotConfigured.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, generator TaskDraftGenerator) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		generator:   generator,
		access:      projectAccess{projects: projectRepo},
		now:         time.Now,
	}
}

// TaskInput represents input for creating or replacing a task
type TaskInput struct {
	Title            string
	ShortDescription string
	Description      string
	Deadline         string
	AssignedTo       uint64
	Status           string
	Priority         string
}

// Board is the caller's tasks in a project grouped by status.
type Board struct {
	Todos   []models.Task
	InProgs []models.Task
	Done    []models.Task
}

func (in TaskInput) validate() (models.TaskStatus, models.TaskPriority, error) {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.ShortDescription) == "" || in.AssignedTo == 0 {
		return "", "", ErrMissingTaskFields
	}
	status := models.TaskStatus(in.Status)
	if !status.Valid() {
		return "", "", ErrInvalidStatus
	}
	priority := models.TaskPriority(in.Priority)
	if !priority.Valid() {
		return "", "", ErrInvalidPriority
	}
	return status, priority, nil
}

// Board lists the tasks assigned to the caller. Admins also see inactive tasks.
func (s *TaskService) Board(ctx context.Context, p policy.Principal, projectName string) (*Board, error) {
	project, _, err := s.access.authorize(ctx, p, projectName, policy.ActionListTasks)
	if err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.ListAssigned(ctx, project.ID, p.UserID, p.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	board := &Board{
		Todos:   []models.Task{},
		InProgs: []models.Task{},
		Done:    []models.Task{},
	}
	for _, task := range tasks {
		switch task.Status {
		case models.TaskStatusTodo:
			board.Todos = append(board.Todos, task)
		case models.TaskStatusInProgress:
			board.InProgs = append(board.InProgs, task)
		case models.TaskStatusDone:
			board.Done = append(board.Done, task)
		}
	}
	return board, nil
}

// Create adds a task to the project. The assignee must take part in it.
func (s *TaskService) Create(ctx context.Context, p policy.Principal, projectName string, input TaskInput) (*models.Task, error) {
	status, priority, err := input.validate()
	if err != nil {
		return nil, err
	}
	deadline, err := utils.ParseDate(input.Deadline, s.now().Add(constants.DefaultTaskDuration))
	if err != nil {
		return nil, ErrInvalidDate
	}

	project, _, err := s.access.authorize(ctx, p, projectName, policy.ActionCreateTask)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssignee(ctx, project, input.AssignedTo); err != nil {
		return nil, err
	}

	task := &models.Task{
		ProjectID:        project.ID,
		Title:            strings.TrimSpace(input.Title),
		ShortDescription: strings.TrimSpace(input.ShortDescription),
		Description:      input.Description,
		Deadline:         deadline,
		CreatedByID:      p.UserID,
		AssignedToID:     input.AssignedTo,
		Status:           status,
		Priority:         priority,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return task, nil
}

// Update replaces the editable fields of a task. An empty deadline keeps
// the current one.
func (s *TaskService) Update(ctx context.Context, p policy.Principal, projectName string, taskID uint64, input TaskInput) error {
	status, priority, err := input.validate()
	if err != nil {
		return err
	}

	project, _, err := s.access.authorize(ctx, p, projectName, policy.ActionUpdateTask)
	if err != nil {
		return err
	}
	task, err := s.findTask(ctx, project.ID, taskID)
	if err != nil {
		return err
	}

	deadline, err := utils.ParseDate(input.Deadline, task.Deadline)
	if err != nil {
		return ErrInvalidDate
	}
	if input.AssignedTo != task.AssignedToID {
		if err := s.checkAssignee(ctx, project, input.AssignedTo); err != nil {
			return err
		}
	}

	task.Title = strings.TrimSpace(input.Title)
	task.ShortDescription = strings.TrimSpace(input.ShortDescription)
	task.Description = input.Description
	task.Deadline = deadline
	task.AssignedToID = input.AssignedTo
	task.Status = status
	task.Priority = priority

	if err := s.taskRepo.UpdateDetails(ctx, task); err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// UpdateStatus moves a task to another column of the board.
func (s *TaskService) UpdateStatus(ctx context.Context, p policy.Principal, projectName string, taskID uint64, status string) error {
	newStatus := models.TaskStatus(status)
	if !newStatus.Valid() {
		return ErrInvalidStatus
	}

	project, _, err := s.access.authorize(ctx, p, projectName, policy.ActionUpdateTaskStatus)
	if err != nil {
		return err
	}
	if _, err := s.findTask(ctx, project.ID, taskID); err != nil {
		return err
	}

	if err := s.taskRepo.UpdateStatus(ctx, taskID, newStatus); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to update task status: %w", err)
	}
	return nil
}

// GenerateDrafts suggests tasks for the project from free text. Drafts
// with no title are dropped, unknown priorities become low and deadlines
// in the past are cleared.
func (s *TaskService) GenerateDrafts(ctx context.Context, p policy.Principal, projectName, text string) ([]TaskDraft, error) {
	if s.generator == nil {
		return nil, ErrAINotConfigured
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrAIEmptyText
	}

	if _, _, err := s.access.authorize(ctx, p, projectName, policy.ActionCreateTask); err != nil {
		return nil, err
	}

	drafts, err := s.generator.GenerateTaskDrafts(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tasks: %w", err)
	}
	if len(drafts) > constants.MaxAIGeneratedTasks {
		drafts = drafts[:constants.MaxAIGeneratedTasks]
	}

	now := s.now()
	valid := make([]TaskDraft, 0, len(drafts))
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		if !models.TaskPriority(d.Priority).Valid() {
			d.Priority = string(models.TaskPriorityLow)
		}
		if d.Deadline != nil && d.Deadline.Before(now) {
			d.Deadline = nil
		}
		valid = append(valid, d)
	}

	if len(valid) == 0 {
		return nil, ErrAINoValidTasks
	}
	return valid, nil
}

func (s *TaskService) findTask(ctx context.Context, projectID, taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindInProject(ctx, projectID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

func (s *TaskService) checkAssignee(ctx context.Context, project *models.Project, userID uint64) error {
	if userID == project.OwnerID {
		return nil
	}
	isMember, err := s.projectRepo.IsMember(ctx, project.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to check assignee: %w", err)
	}
	if !isMember {
		return ErrAssigneeNotInProject
	}
	return nil
}
