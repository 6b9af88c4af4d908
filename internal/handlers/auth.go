package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/auth"
	"github.com/yukikurage/project-management-api/internal/dto"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrMissingRegistrationFields)
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		apierrors.Respond(c, err)
		return
	}

	respond(c, http.StatusCreated, "Successfully registered!", nil)
}

// Login checks the credentials and starts a session.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Respond(c, services.ErrMissingLoginFields)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	h.startSession(c, session, "Successfully logged in!")
}

// Refresh exchanges the refresh cookie for a new token pair.
func (h *AuthHandler) Refresh(c *gin.Context) {
	token, ok := auth.RefreshCookie(c)
	if !ok {
		apierrors.Unauthorized(c, "", "No refresh token cookie.")
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), token)
	if err != nil {
		auth.ClearRefreshCookie(c)
		apierrors.Respond(c, err)
		return
	}

	h.startSession(c, session, "")
}

// Logout clears the refresh cookie. It always succeeds.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, ok := auth.RefreshCookie(c); ok {
		h.authService.Logout(c.Request.Context(), token)
	}
	auth.ClearRefreshCookie(c)

	respond(c, http.StatusOK, "Successfully logged out!", nil)
}

// startSession replaces the refresh cookie and returns the access token.
func (h *AuthHandler) startSession(c *gin.Context, session *services.Session, clientMsg string) {
	auth.ClearRefreshCookie(c)
	auth.SetRefreshCookie(c, session.Tokens.RefreshToken, h.authService.RefreshTTL())
	c.JSON(http.StatusOK, dto.SessionResponse{
		UserID:      session.UserID,
		AccessToken: session.Tokens.AccessToken,
		ClientMsg:   clientMsg,
	})
}
