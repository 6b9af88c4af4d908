package services

func (suite *ServiceTestSuite) TestRegister_ThenLogin() {
	user, err := suite.authService.Register(suite.ctx, RegisterInput{
		Username: "newbie",
		Email:    "newbie@example.com",
		Password: "secret123",
	})
	suite.Require().NoError(err)
	suite.True(user.IsActive)
	suite.False(user.IsAdmin)
	suite.NotEqual("secret123", user.PasswordHash)

	session, err := suite.authService.Login(suite.ctx, "newbie", "secret123")
	suite.Require().NoError(err)
	suite.Equal(user.ID, session.UserID)

	claims, err := suite.tokens.VerifyAccessToken(session.Tokens.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(user.ID, claims.UserID)
}

func (suite *ServiceTestSuite) TestRegister_Duplicates() {
	_, err := suite.authService.Register(suite.ctx, RegisterInput{Username: "owner", Email: "fresh@example.com", Password: "pw"})
	suite.requireAppError(ErrUsernameTaken, err)

	_, err = suite.authService.Register(suite.ctx, RegisterInput{Username: "fresh", Email: "owner@example.com", Password: "pw"})
	suite.requireAppError(ErrEmailTaken, err)

	_, err = suite.authService.Register(suite.ctx, RegisterInput{Username: " ", Email: "x@example.com", Password: "pw"})
	suite.requireAppError(ErrMissingRegistrationFields, err)
}

func (suite *ServiceTestSuite) TestLogin_Failures() {
	_, err := suite.authService.Register(suite.ctx, RegisterInput{Username: "carol", Email: "carol@example.com", Password: "right"})
	suite.Require().NoError(err)

	_, err = suite.authService.Login(suite.ctx, "nobody", "right")
	suite.requireAppError(ErrUnknownUsername, err)

	_, err = suite.authService.Login(suite.ctx, "carol", "wrong")
	suite.requireAppError(ErrPasswordMismatch, err)

	_, err = suite.authService.Login(suite.ctx, "", "")
	suite.requireAppError(ErrMissingLoginFields, err)

	carol, err := suite.userRepo.FindByUsername(suite.ctx, "carol")
	suite.Require().NoError(err)
	inactive := false
	suite.Require().NoError(suite.userRepo.UpdateFlags(suite.ctx, carol.ID, &inactive, nil))

	_, err = suite.authService.Login(suite.ctx, "carol", "right")
	suite.requireAppError(ErrInactiveProfile, err)
}

func (suite *ServiceTestSuite) TestRefresh_RotatesToken() {
	_, err := suite.authService.Register(suite.ctx, RegisterInput{Username: "dave", Email: "dave@example.com", Password: "pw"})
	suite.Require().NoError(err)
	session, err := suite.authService.Login(suite.ctx, "dave", "pw")
	suite.Require().NoError(err)

	rotated, err := suite.authService.Refresh(suite.ctx, session.Tokens.RefreshToken)
	suite.Require().NoError(err)
	suite.Equal(session.UserID, rotated.UserID)
	suite.NotEqual(session.Tokens.RefreshToken, rotated.Tokens.RefreshToken)

	// The old token can no longer be used
	_, err = suite.authService.Refresh(suite.ctx, session.Tokens.RefreshToken)
	suite.requireAppError(ErrRefreshRejected, err)

	_, err = suite.authService.Refresh(suite.ctx, rotated.Tokens.RefreshToken)
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestRefresh_RejectsInvalidAndInactive() {
	_, err := suite.authService.Refresh(suite.ctx, "not-a-token")
	suite.requireAppError(ErrRefreshRejected, err)

	access, err := suite.tokens.IssueAccessToken(suite.member.ID)
	suite.Require().NoError(err)
	_, err = suite.authService.Refresh(suite.ctx, access)
	suite.requireAppError(ErrRefreshRejected, err)

	refresh, err := suite.tokens.IssueRefreshToken(suite.member.ID)
	suite.Require().NoError(err)
	inactive := false
	suite.Require().NoError(suite.userRepo.UpdateFlags(suite.ctx, suite.member.ID, &inactive, nil))
	_, err = suite.authService.Refresh(suite.ctx, refresh)
	suite.requireAppError(ErrRefreshRejected, err)
}

func (suite *ServiceTestSuite) TestLogout_RevokesRefreshToken() {
	refresh, err := suite.tokens.IssueRefreshToken(suite.member.ID)
	suite.Require().NoError(err)

	suite.authService.Logout(suite.ctx, refresh)
	suite.Len(suite.denylist.revoked, 1)

	_, err = suite.authService.Refresh(suite.ctx, refresh)
	suite.requireAppError(ErrRefreshRejected, err)

	// Without a token logout is a no-op
	suite.authService.Logout(suite.ctx, "")
	suite.authService.Logout(suite.ctx, "garbage")
	suite.Len(suite.denylist.revoked, 1)
}
