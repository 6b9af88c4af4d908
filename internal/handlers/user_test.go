package handlers

import (
	"fmt"
	"net/http"
)

func (suite *HandlerTestSuite) TestListUsers() {
	w := suite.request(http.MethodGet, "/api/users?page=1&limit=3", nil, suite.member)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/api/users?page=2&limit=3", nil, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Len(body["users"], 1)

	pagination := body["pagination"].(map[string]interface{})
	suite.EqualValues(4, pagination["total"])
	suite.EqualValues(2, pagination["totalPages"])
	suite.EqualValues(2, pagination["page"])
}

func (suite *HandlerTestSuite) TestSearchUsers() {
	w := suite.request(http.MethodGet, "/api/users/search/OWN/true", nil, suite.member)
	suite.Require().Equal(http.StatusOK, w.Code)
	users := suite.decode(w)["users"].([]interface{})
	suite.Require().Len(users, 1)
	user := users[0].(map[string]interface{})
	suite.Equal("owner", user["username"])
	suite.NotContains(user, "email")

	w = suite.request(http.MethodGet, "/api/users/search/own/yes", nil, suite.member)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestUpdateUserFlags() {
	path := fmt.Sprintf("/api/users/%d/flags", suite.outsider.ID)

	w := suite.request(http.MethodPut, path, map[string]bool{"isActive": false}, suite.member)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPut, path, map[string]bool{"isActive": false}, suite.admin)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// A deactivated user is rejected even with a valid access token
	w = suite.request(http.MethodGet, "/api/projects", nil, suite.outsider)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPut, path, map[string]bool{}, suite.admin)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCheckAdmin() {
	w := suite.request(http.MethodGet, "/api/admin/check", nil, suite.admin)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(true, suite.decode(w)["isAdmin"])

	w = suite.request(http.MethodGet, "/api/admin/check", nil, suite.member)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal(false, suite.decode(w)["isAdmin"])
}
