package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

type MemberHandler struct {
	memberService *services.MemberService
}

func NewMemberHandler(memberService *services.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// ListMembers returns the members of a project followed by its owner
func (h *MemberHandler) ListMembers(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	participants, err := h.memberService.List(c.Request.Context(), p, c.Param("projectname"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"users": dto.ToMemberDTOs(participants)})
}

// AddMember adds a user to a project
func (h *MemberHandler) AddMember(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	var req dto.AddMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.memberService.Add(c.Request.Context(), p, c.Param("projectname"), req.MemberID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully added member!", nil)
}

// RemoveMember removes a user from a project
func (h *MemberHandler) RemoveMember(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	memberID, ok := idParam(c, "memberid")
	if !ok {
		return
	}

	if err := h.memberService.Remove(c.Request.Context(), p, c.Param("projectname"), memberID); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully removed member!", nil)
}
