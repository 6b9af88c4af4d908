package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/policy"
)

// respond writes a success envelope. payload keys sit next to clientMsg
// and an empty error.
func respond(c *gin.Context, status int, clientMsg string, payload gin.H) {
	body := gin.H{
		"clientMsg": clientMsg,
		"error":     "",
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// currentPrincipal returns the caller set by RequireAuth. It writes a 401
// when the route was registered without the middleware.
func currentPrincipal(c *gin.Context) (policy.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "", "No principal in request context.")
		return policy.Principal{}, false
	}
	return p, true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequest(c, "Not enough information provided.", "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func idParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid request parameters.", "Parameter "+name+" is not a valid id.")
		return 0, false
	}
	return id, true
}

func boolParam(c *gin.Context, name string) (bool, bool) {
	value, err := strconv.ParseBool(c.Param(name))
	if err != nil {
		apierrors.BadRequest(c, "Invalid request parameters.", "Parameter "+name+" is not a boolean.")
		return false, false
	}
	return value, true
}
