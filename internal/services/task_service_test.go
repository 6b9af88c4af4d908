package services

import (
	"errors"
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/testutil"
)

func (suite *ServiceTestSuite) validTaskInput() TaskInput {
	return TaskInput{
		Title:            "Write docs",
		ShortDescription: "README",
		Description:      "Describe the API",
		AssignedTo:       suite.member.ID,
		Status:           "todo",
		Priority:         "normal",
	}
}

func (suite *ServiceTestSuite) TestCreateTask() {
	fixed := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	suite.taskService.now = func() time.Time { return fixed }

	task, err := suite.taskService.Create(suite.ctx, principal(suite.owner), "alpha", suite.validTaskInput())
	suite.Require().NoError(err)
	suite.Equal(suite.project.ID, task.ProjectID)
	suite.Equal(suite.owner.ID, task.CreatedByID)
	suite.Equal(models.TaskPriorityNormal, task.Priority)
	suite.True(task.Deadline.Equal(fixed.Add(14 * 24 * time.Hour)))

	input := suite.validTaskInput()
	input.AssignedTo = suite.outsider.ID
	_, err = suite.taskService.Create(suite.ctx, principal(suite.owner), "alpha", input)
	suite.requireAppError(ErrAssigneeNotInProject, err)

	input = suite.validTaskInput()
	input.Status = "blocked"
	_, err = suite.taskService.Create(suite.ctx, principal(suite.owner), "alpha", input)
	suite.requireAppError(ErrInvalidStatus, err)

	input = suite.validTaskInput()
	input.Priority = "urgent"
	_, err = suite.taskService.Create(suite.ctx, principal(suite.owner), "alpha", input)
	suite.requireAppError(ErrInvalidPriority, err)

	input = suite.validTaskInput()
	input.Title = ""
	_, err = suite.taskService.Create(suite.ctx, principal(suite.owner), "alpha", input)
	suite.requireAppError(ErrMissingTaskFields, err)

	_, err = suite.taskService.Create(suite.ctx, principal(suite.outsider), "alpha", suite.validTaskInput())
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)
}

func (suite *ServiceTestSuite) TestBoard_GroupsByStatus() {
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "a", models.TaskStatusTodo)
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "b", models.TaskStatusInProgress)
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "c", models.TaskStatusDone)
	hidden := testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "d", models.TaskStatusDone)
	testutil.SetActive(suite.T(), suite.db, hidden, false)
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.owner.ID, "e", models.TaskStatusTodo)

	board, err := suite.taskService.Board(suite.ctx, principal(suite.member), "alpha")
	suite.Require().NoError(err)
	suite.Len(board.Todos, 1)
	suite.Len(board.InProgs, 1)
	suite.Len(board.Done, 1)

	board, err = suite.taskService.Board(suite.ctx, principal(suite.owner), "alpha")
	suite.Require().NoError(err)
	suite.Len(board.Todos, 1)
	suite.Empty(board.InProgs)
	suite.Empty(board.Done)
}

func (suite *ServiceTestSuite) TestUpdateTask() {
	task := testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "old", models.TaskStatusTodo)

	input := suite.validTaskInput()
	input.Title = "new"
	input.AssignedTo = suite.owner.ID
	input.Status = "done"
	input.Deadline = "2031-01-02"
	suite.Require().NoError(suite.taskService.Update(suite.ctx, principal(suite.member), "alpha", task.ID, input))

	updated, err := suite.taskRepo.FindInProject(suite.ctx, suite.project.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal("new", updated.Title)
	suite.Equal(suite.owner.ID, updated.AssignedToID)
	suite.Equal(models.TaskStatusDone, updated.Status)
	suite.Equal(2031, updated.Deadline.Year())

	err = suite.taskService.Update(suite.ctx, principal(suite.member), "alpha", 9999, input)
	suite.requireAppError(ErrTaskNotFound, err)

	// A task is only reachable through its own project
	other := testutil.CreateProject(suite.T(), suite.db, "other", suite.member.ID)
	err = suite.taskService.Update(suite.ctx, principal(suite.member), other.Name, task.ID, input)
	suite.requireAppError(ErrTaskNotFound, err)
}

func (suite *ServiceTestSuite) TestUpdateTaskStatus() {
	task := testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "t", models.TaskStatusTodo)

	suite.Require().NoError(suite.taskService.UpdateStatus(suite.ctx, principal(suite.member), "alpha", task.ID, "inprogress"))

	updated, err := suite.taskRepo.FindInProject(suite.ctx, suite.project.ID, task.ID)
	suite.Require().NoError(err)
	suite.Equal(models.TaskStatusInProgress, updated.Status)

	err = suite.taskService.UpdateStatus(suite.ctx, principal(suite.member), "alpha", task.ID, "later")
	suite.requireAppError(ErrInvalidStatus, err)

	err = suite.taskService.UpdateStatus(suite.ctx, principal(suite.outsider), "alpha", task.ID, "done")
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)
}

func (suite *ServiceTestSuite) TestGenerateDrafts() {
	fixed := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	suite.taskService.now = func() time.Time { return fixed }
	suite.chat.content = "```json\n" + `[
  {"title": "Design schema", "shortDescription": "tables", "priority": "high", "deadline": "2025-06-10T00:00:00Z"},
  {"title": "  ", "shortDescription": "empty title"},
  {"title": "Old work", "priority": "asap", "deadline": "2024-01-01T00:00:00Z"}
]` + "\n```"

	drafts, err := suite.taskService.GenerateDrafts(suite.ctx, principal(suite.member), "alpha", "plan the database")
	suite.Require().NoError(err)
	suite.Require().Len(drafts, 2)
	suite.Equal("Design schema", drafts[0].Title)
	suite.Equal("high", drafts[0].Priority)
	suite.Require().NotNil(drafts[0].Deadline)
	suite.Equal("low", drafts[1].Priority)
	suite.Nil(drafts[1].Deadline)

	// Nothing is stored
	var count int64
	suite.Require().NoError(suite.db.Model(&models.Task{}).Count(&count).Error)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestGenerateDrafts_Failures() {
	_, err := suite.taskService.GenerateDrafts(suite.ctx, principal(suite.member), "alpha", " ")
	suite.requireAppError(ErrAIEmptyText, err)

	_, err = suite.taskService.GenerateDrafts(suite.ctx, principal(suite.outsider), "alpha", "text")
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)
	suite.Zero(suite.chat.calls)

	suite.chat.content = "[]"
	_, err = suite.taskService.GenerateDrafts(suite.ctx, principal(suite.member), "alpha", "text")
	suite.requireAppError(ErrAINoValidTasks, err)

	suite.chat.err = errors.New("rate limited")
	_, err = suite.taskService.GenerateDrafts(suite.ctx, principal(suite.member), "alpha", "text")
	suite.Require().Error(err)
	suite.Contains(err.Error(), "rate limited")

	disabled := NewTaskService(suite.taskRepo, suite.projectRepo, nil)
	_, err = disabled.GenerateDrafts(suite.ctx, principal(suite.member), "alpha", "text")
	suite.requireAppError(ErrAINotConfigured, err)
}
