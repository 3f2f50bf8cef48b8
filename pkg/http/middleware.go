package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"liyu1981.xyz/cct-cloud-service/pkg/models"
)

const (
	HeaderAPIKey = "X-API-Key"

	ctxKeyUser = "cct_user"

	msgInvalidAPIKey   = "Invalid API key"
	msgInvalidSession  = "Could not validate credentials"
	msgTooManyRequests = "Too many requests"
)

func unauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// authorizeDevice throttles and authenticates one device call. It writes the
// rejection itself and reports whether the handler may go on.
func (rs *RestfulServer) authorizeDevice(c *gin.Context, deviceID string) bool {
	if !rs.CheckDeviceLimiter(deviceID) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": msgTooManyRequests})
		return false
	}

	apiKey := c.GetHeader(HeaderAPIKey)
	if apiKey == "" || rs.Cct.Credential.VerifyDeviceAPIKey(apiKey, deviceID) != nil {
		unauthorized(c, msgInvalidAPIKey)
		return false
	}
	return true
}

// RequireDeviceKey guards routes carrying :device_id in the path.
func (rs *RestfulServer) RequireDeviceKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rs.authorizeDevice(c, c.Param("device_id")) {
			return
		}
		c.Next()
	}
}

// RequireSession resolves the bearer token into the calling user.
func (rs *RestfulServer) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			unauthorized(c, msgInvalidSession)
			return
		}

		user, err := rs.Cct.Credential.VerifyUserSession(strings.TrimSpace(token))
		if err != nil {
			unauthorized(c, msgInvalidSession)
			return
		}

		c.Set(ctxKeyUser, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	return c.MustGet(ctxKeyUser).(*models.User)
}
