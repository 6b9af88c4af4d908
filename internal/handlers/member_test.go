package handlers

import (
	"fmt"
	"net/http"
)

func (suite *HandlerTestSuite) TestMembers() {
	w := suite.request(http.MethodGet, "/api/members/alpha", nil, suite.member)
	suite.Require().Equal(http.StatusOK, w.Code)
	users := suite.decode(w)["users"].([]interface{})
	suite.Require().Len(users, 2)
	last := users[1].(map[string]interface{})
	suite.Equal("owner", last["username"])
	suite.Equal(true, last["isOwner"])

	w = suite.request(http.MethodPost, "/api/members/add/alpha", map[string]uint64{"memberid": suite.outsider.ID}, suite.member)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, "/api/members/add/alpha", map[string]uint64{"memberid": suite.outsider.ID}, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.request(http.MethodPost, "/api/members/add/alpha", map[string]uint64{"memberid": suite.outsider.ID}, suite.owner)
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/members/remove/alpha/%d", suite.owner.ID), nil, suite.admin)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodDelete, fmt.Sprintf("/api/members/remove/alpha/%d", suite.outsider.ID), nil, suite.owner)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/projects/alpha", nil, suite.outsider)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestAddMember_InvalidBody() {
	w := suite.request(http.MethodPost, "/api/members/add/alpha", map[string]string{}, suite.owner)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodDelete, "/api/members/remove/alpha/zero", nil, suite.owner)
	suite.Equal(http.StatusBadRequest, w.Code)
}
