package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/constants"
)

// SetRefreshCookie stores the refresh token in an HTTP-only cookie.
func SetRefreshCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.RefreshCookieName, token, int(ttl.Seconds()), constants.RefreshCookiePath, "", true, true)
}

// ClearRefreshCookie expires the refresh cookie on the client.
func ClearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.RefreshCookieName, "", -1, constants.RefreshCookiePath, "", true, true)
}

// RefreshCookie returns the refresh token sent by the client, if any.
func RefreshCookie(c *gin.Context) (string, bool) {
	token, err := c.Cookie(constants.RefreshCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
