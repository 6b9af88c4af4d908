package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
	"github.com/yukikurage/project-management-api/internal/utils"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// ListUsers returns one page of users. Admin only.
func (h *UserHandler) ListUsers(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	users, total, err := h.userService.ListUsers(c.Request.Context(), p, params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{
		"users":      dto.ToAdminUserDTOs(users),
		"pagination": utils.NewPaginationResponse(params, total),
	})
}

// SearchUsers matches users by username, or by username and email
func (h *UserHandler) SearchUsers(c *gin.Context) {
	if _, ok := currentPrincipal(c); !ok {
		return
	}
	onlyUsername, ok := boolParam(c, "onlyUsername")
	if !ok {
		return
	}

	users, err := h.userService.SearchUsers(c.Request.Context(), c.Param("search"), onlyUsername)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "", gin.H{"users": dto.ToUserDTOs(users)})
}

// UpdateUserFlags activates, deactivates, promotes or demotes a user. Admin only.
func (h *UserHandler) UpdateUserFlags(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}
	userID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateUserFlagsRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.userService.UpdateUserFlags(c.Request.Context(), p, userID, req.IsActive, req.IsAdmin); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully updated user!", nil)
}

// CheckAdmin reports whether the caller is an admin
func (h *UserHandler) CheckAdmin(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		return
	}

	isAdmin, err := h.userService.CheckAdmin(c.Request.Context(), p.UserID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusOK, "Successfully checked admin rights!", gin.H{"isAdmin": isAdmin})
}
