package handlers

import (
	"fmt"
	"net/http"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/testutil"
)

func (suite *HandlerTestSuite) taskBody(assignee uint64) map[string]interface{} {
	return map[string]interface{}{
		"title":            "Ship it",
		"shortDescription": "release",
		"description":      "cut the release",
		"deadline":         "2031-02-03",
		"assignedTo":       assignee,
		"status":           "todo",
		"priority":         "high",
	}
}

func (suite *HandlerTestSuite) TestCreateTask() {
	w := suite.request(http.MethodPost, "/api/tasks/create/alpha", suite.taskBody(suite.member.ID), suite.owner)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	task := suite.decode(w)["task"].(map[string]interface{})
	suite.Equal("2031-02-03", task["deadline"])
	suite.Equal("high", task["priority"])

	w = suite.request(http.MethodPost, "/api/tasks/create/alpha", suite.taskBody(suite.outsider.ID), suite.owner)
	suite.Equal(http.StatusBadRequest, w.Code)

	body := suite.taskBody(suite.member.ID)
	body["status"] = "someday"
	w = suite.request(http.MethodPost, "/api/tasks/create/alpha", body, suite.owner)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/tasks/create/alpha", suite.taskBody(suite.member.ID), suite.outsider)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestTaskBoardAndStatus() {
	task := testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "first", models.TaskStatusTodo)
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "second", models.TaskStatusDone)

	w := suite.request(http.MethodGet, "/api/tasks/alpha", nil, suite.member)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["todos"], 1)
	suite.Len(body["inProgs"], 0)
	suite.Len(body["done"], 1)

	path := fmt.Sprintf("/api/tasks/update/status/alpha/%d", task.ID)
	w = suite.request(http.MethodPatch, path, map[string]string{"status": "inprogress"}, suite.member)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodGet, "/api/tasks/alpha", nil, suite.member)
	body = suite.decode(w)
	suite.Len(body["todos"], 0)
	suite.Len(body["inProgs"], 1)

	w = suite.request(http.MethodPatch, "/api/tasks/update/status/alpha/9999", map[string]string{"status": "done"}, suite.member)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateTask() {
	task := testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "first", models.TaskStatusTodo)

	body := suite.taskBody(suite.owner.ID)
	body["title"] = "renamed"
	w := suite.request(http.MethodPut, fmt.Sprintf("/api/tasks/update/alpha/%d", task.ID), body, suite.member)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	suite.Equal("renamed", updated.Title)
	suite.Equal(suite.owner.ID, updated.AssignedToID)
}

func (suite *HandlerTestSuite) TestGenerateTasks_Unavailable() {
	w := suite.request(http.MethodPost, "/api/tasks/generate/alpha", map[string]string{"text": "plan the launch"}, suite.member)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.decode(w)
}
