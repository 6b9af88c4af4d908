package handlers

import (
	"net/http"

	"github.com/yukikurage/project-management-api/internal/services"
)

func (suite *HandlerTestSuite) TestRegisterAndLogin() {
	w := suite.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "newuser",
		"email":    "newuser@example.com",
		"password": "supersecret",
	}, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.Equal("", body["error"])

	w = suite.request(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "newuser",
		"password": "supersecret",
	}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body = suite.decode(w)

	token, ok := body["accessToken"].(string)
	suite.Require().True(ok)
	claims, err := suite.tokens.VerifyAccessToken(token)
	suite.Require().NoError(err)
	suite.EqualValues(body["userId"], claims.UserID)

	cookie := refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.True(cookie.HttpOnly)
	suite.True(cookie.Secure)
	suite.Equal(http.SameSiteNoneMode, cookie.SameSite)
	suite.Equal(5*24*60*60, cookie.MaxAge)
}

func (suite *HandlerTestSuite) TestRegister_Conflicts() {
	w := suite.request(http.MethodPost, "/api/auth/register", map[string]string{
		"username": "owner",
		"email":    "other@example.com",
		"password": "pw",
	}, nil)
	suite.Equal(http.StatusConflict, w.Code)
	body := suite.decode(w)
	suite.Equal(services.ErrUsernameTaken.ClientMsg, body["clientMsg"])

	w = suite.request(http.MethodPost, "/api/auth/register", map[string]string{"username": "x"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestLogin_Unauthorized() {
	_, err := suite.authService.Register(suite.ctx(), services.RegisterInput{Username: "erin", Email: "erin@example.com", Password: "right"})
	suite.Require().NoError(err)

	w := suite.request(http.MethodPost, "/api/auth/login", map[string]string{"username": "erin", "password": "wrong"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Nil(refreshCookie(w))

	w = suite.request(http.MethodPost, "/api/auth/login", map[string]string{"username": "ghost", "password": "right"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestRefresh() {
	// No cookie at all is distinct from a bad one
	w := suite.request(http.MethodGet, "/api/auth/refresh", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodGet, "/api/auth/refresh", nil, nil, &http.Cookie{Name: "refreshToken", Value: "garbage"})
	suite.Equal(http.StatusForbidden, w.Code)

	refresh, err := suite.tokens.IssueRefreshToken(suite.member.ID)
	suite.Require().NoError(err)

	w = suite.request(http.MethodGet, "/api/auth/refresh", nil, nil, &http.Cookie{Name: "refreshToken", Value: refresh})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	body := suite.decode(w)
	suite.EqualValues(suite.member.ID, body["userId"])

	cookie := refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.NotEmpty(cookie.Value)
	suite.NotEqual(refresh, cookie.Value)
}

func (suite *HandlerTestSuite) TestLogout_AlwaysSucceeds() {
	w := suite.request(http.MethodPost, "/api/auth/logout", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.decode(w)

	refresh, err := suite.tokens.IssueRefreshToken(suite.member.ID)
	suite.Require().NoError(err)
	w = suite.request(http.MethodPost, "/api/auth/logout", nil, nil, &http.Cookie{Name: "refreshToken", Value: refresh})
	suite.Equal(http.StatusOK, w.Code)

	cookie := refreshCookie(w)
	suite.Require().NotNil(cookie)
	suite.Empty(cookie.Value)
	suite.True(cookie.MaxAge < 0)
}
