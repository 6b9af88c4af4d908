package services

import (
	"github.com/yukikurage/project-management-api/internal/policy"
)

func (suite *ServiceTestSuite) TestListMembers_EndsWithOwner() {
	participants, err := suite.memberService.List(suite.ctx, principal(suite.member), "alpha")
	suite.Require().NoError(err)
	suite.Require().Len(participants, 2)
	suite.Equal(Participant{ID: suite.member.ID, Username: "member"}, participants[0])
	suite.Equal(Participant{ID: suite.owner.ID, Username: "owner", IsOwner: true}, participants[1])

	_, err = suite.memberService.List(suite.ctx, principal(suite.outsider), "alpha")
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)
}

func (suite *ServiceTestSuite) TestAddMember() {
	// Members can't add others
	err := suite.memberService.Add(suite.ctx, principal(suite.member), "alpha", suite.outsider.ID)
	suite.requireAppError(Denied(policy.ReasonOwnerOrAdminOnly), err)

	err = suite.memberService.Add(suite.ctx, principal(suite.owner), "alpha", suite.owner.ID)
	suite.requireAppError(Denied(policy.ReasonSelfAdd), err)

	err = suite.memberService.Add(suite.ctx, principal(suite.admin), "alpha", suite.owner.ID)
	suite.requireAppError(Denied(policy.ReasonOwnerAsMember), err)

	err = suite.memberService.Add(suite.ctx, principal(suite.owner), "alpha", suite.member.ID)
	suite.requireAppError(Denied(policy.ReasonAlreadyMember), err)

	err = suite.memberService.Add(suite.ctx, principal(suite.owner), "alpha", 9999)
	suite.requireAppError(ErrUserNotFound, err)

	suite.Require().NoError(suite.memberService.Add(suite.ctx, principal(suite.owner), "alpha", suite.outsider.ID))

	// The new member can now see the project
	_, err = suite.projectService.Get(suite.ctx, principal(suite.outsider), "alpha")
	suite.NoError(err)
}

func (suite *ServiceTestSuite) TestRemoveMember() {
	err := suite.memberService.Remove(suite.ctx, principal(suite.admin), "alpha", suite.owner.ID)
	suite.requireAppError(Denied(policy.ReasonOwnerRemoval), err)

	err = suite.memberService.Remove(suite.ctx, principal(suite.owner), "alpha", suite.outsider.ID)
	suite.requireAppError(Denied(policy.ReasonNotMember), err)

	err = suite.memberService.Remove(suite.ctx, principal(suite.member), "alpha", suite.member.ID)
	suite.requireAppError(Denied(policy.ReasonOwnerOrAdminOnly), err)

	suite.Require().NoError(suite.memberService.Remove(suite.ctx, principal(suite.owner), "alpha", suite.member.ID))

	// Access is gone on the very next request
	_, err = suite.projectService.Get(suite.ctx, principal(suite.member), "alpha")
	suite.requireAppError(Denied(policy.ReasonNotParticipant), err)
}

func (suite *ServiceTestSuite) TestMembership_InactiveProject() {
	suite.Require().NoError(suite.projectService.SetActiveStatus(suite.ctx, principal(suite.admin), "alpha", false))

	err := suite.memberService.Add(suite.ctx, principal(suite.owner), "alpha", suite.outsider.ID)
	suite.requireAppError(Denied(policy.ReasonProjectInactive), err)

	suite.NoError(suite.memberService.Add(suite.ctx, principal(suite.admin), "alpha", suite.outsider.ID))
}
