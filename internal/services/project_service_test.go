package services

import (
	"time"

	"github.com/yukikurage/project-management-api/internal/models"
	"github.com/yukikurage/project-management-api/internal/policy"
	"github.com/yukikurage/project-management-api/internal/testutil"
)

func (suite *ServiceTestSuite) TestCreateProject() {
	fixed := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	suite.projectService.now = func() time.Time { return fixed }

	project, err := suite.projectService.Create(suite.ctx, principal(suite.member), ProjectInput{
		Name:             "My New Project",
		ShortDescription: "short",
	})
	suite.Require().NoError(err)
	suite.Equal("My-New-Project", project.Name)
	suite.Equal(suite.member.ID, project.OwnerID)
	suite.True(project.Finished.After(fixed.AddDate(2, 0, 0)))

	_, err = suite.projectService.Create(suite.ctx, principal(suite.owner), ProjectInput{Name: "My  New Project", ShortDescription: "dup"})
	suite.requireAppError(ErrProjectNameTaken, err)

	_, err = suite.projectService.Create(suite.ctx, principal(suite.owner), ProjectInput{Name: "x", ShortDescription: ""})
	suite.requireAppError(ErrMissingProjectFields, err)

	_, err = suite.projectService.Create(suite.ctx, principal(suite.owner), ProjectInput{Name: "dated", ShortDescription: "s", Finished: "soon"})
	suite.requireAppError(ErrInvalidDate, err)
}

func (suite *ServiceTestSuite) TestListForUser_CountsMembersAndTasks() {
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.member.ID, "one", models.TaskStatusTodo)
	testutil.CreateTask(suite.T(), suite.db, suite.project.ID, suite.owner.ID, suite.owner.ID, "two", models.TaskStatusTodo)

	summaries, err := suite.projectService.ListForUser(suite.ctx, principal(suite.member))
	suite.Require().NoError(err)
	suite.Require().Len(summaries, 1)
	suite.Equal("alpha", summaries[0].Project.Name)
	suite.False(summaries[0].IsOwner)
	suite.EqualValues(2, summaries[0].MemberCount)
	suite.EqualValues(1, summaries[0].TaskCount)

	summaries, err = suite.projectService.ListForUser(suite.ctx, principal(suite.outsider))
	suite.Require().NoError(err)
	suite.Empty(summaries)
}

func (suite *ServiceTestSuite) TestGetProject_Access() {
	_, err := suite.projectService.Get(suite.ctx, principal(suite.member), "alpha")
	suite.NoError(err)

	_, err = suite.projectService.Get(suite.ctx, principal(suite.outsider), "alpha")
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)

	_, err = suite.projectService.Get(suite.ctx, principal(suite.admin), "alpha")
	suite.NoError(err)

	_, err = suite.projectService.Get(suite.ctx, principal(suite.owner), "missing")
	suite.requireAppError(ErrProjectNotFound, err)
}

func (suite *ServiceTestSuite) TestRecentProjectName() {
	_, err := suite.projectService.RecentProjectName(suite.ctx, principal(suite.member))
	suite.requireAppError(ErrNoRecentProject, err)

	_, err = suite.projectService.Get(suite.ctx, principal(suite.member), "alpha")
	suite.Require().NoError(err)

	name, err := suite.projectService.RecentProjectName(suite.ctx, principal(suite.member))
	suite.Require().NoError(err)
	suite.Equal("alpha", name)
}

func (suite *ServiceTestSuite) TestInactiveProject_BlocksMembersNotAdmins() {
	suite.Require().NoError(suite.projectService.SetActiveStatus(suite.ctx, principal(suite.admin), "alpha", false))

	_, err := suite.projectService.Get(suite.ctx, principal(suite.owner), "alpha")
	suite.requireAppError(Denied(policy.ReasonProjectInactive), err)

	active, err := suite.projectService.GetActiveStatus(suite.ctx, principal(suite.member), "alpha")
	suite.Require().NoError(err)
	suite.False(active)

	_, err = suite.projectService.Get(suite.ctx, principal(suite.admin), "alpha")
	suite.NoError(err)

	err = suite.projectService.SetActiveStatus(suite.ctx, principal(suite.owner), "alpha", true)
	suite.requireAppError(Denied(policy.ReasonAdminOnly), err)
}

func (suite *ServiceTestSuite) TestUpdateProject() {
	err := suite.projectService.Update(suite.ctx, principal(suite.member), "alpha", ProjectInput{
		Name:             "Alpha Renamed",
		ShortDescription: "new short",
		Finished:         "2030-05-01",
	})
	suite.Require().NoError(err)

	project, err := suite.projectRepo.FindByName(suite.ctx, "Alpha-Renamed", false)
	suite.Require().NoError(err)
	suite.Equal("new short", project.ShortDescription)
	suite.Equal(2030, project.Finished.Year())

	testutil.CreateProject(suite.T(), suite.db, "beta", suite.owner.ID)
	err = suite.projectService.Update(suite.ctx, principal(suite.owner), "Alpha-Renamed", ProjectInput{Name: "beta", ShortDescription: "s"})
	suite.requireAppError(ErrProjectNameTaken, err)

	err = suite.projectService.Update(suite.ctx, principal(suite.outsider), "beta", ProjectInput{Name: "gamma", ShortDescription: "s"})
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)
}

func (suite *ServiceTestSuite) TestSearchProjects() {
	testutil.CreateProject(suite.T(), suite.db, "alphabet", suite.outsider.ID)

	_, err := suite.projectService.Search(suite.ctx, principal(suite.owner), "alpha", true)
	suite.requireAppError(Denied(policy.ReasonAdminOnly), err)

	results, err := suite.projectService.Search(suite.ctx, principal(suite.admin), "ALPHA", true)
	suite.Require().NoError(err)
	suite.Len(results, 2)

	_, err = suite.projectService.Search(suite.ctx, principal(suite.admin), "  ", false)
	suite.requireAppError(ErrEmptySearch, err)
}

func (suite *ServiceTestSuite) TestTransferOwnership() {
	err := suite.projectService.TransferOwnership(suite.ctx, principal(suite.owner), "alpha", suite.member.ID)
	suite.requireAppError(Denied(policy.ReasonAdminOnly), err)

	err = suite.projectService.TransferOwnership(suite.ctx, principal(suite.admin), "alpha", suite.owner.ID)
	suite.requireAppError(Denied(policy.ReasonAlreadyOwner), err)

	err = suite.projectService.TransferOwnership(suite.ctx, principal(suite.admin), "alpha", 9999)
	suite.requireAppError(ErrUserNotFound, err)

	suite.Require().NoError(suite.projectService.TransferOwnership(suite.ctx, principal(suite.admin), "alpha", suite.member.ID))

	owner, err := suite.projectService.GetOwner(suite.ctx, principal(suite.member), "alpha")
	suite.Require().NoError(err)
	suite.Equal(suite.member.ID, owner.ID)

	isMember, err := suite.projectRepo.IsMember(suite.ctx, suite.project.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.True(isMember)

	isMember, err = suite.projectRepo.IsMember(suite.ctx, suite.project.ID, suite.member.ID)
	suite.Require().NoError(err)
	suite.False(isMember)

	isOwner, err := suite.projectService.IsOwner(suite.ctx, principal(suite.member), suite.project.ID)
	suite.Require().NoError(err)
	suite.True(isOwner)
}
