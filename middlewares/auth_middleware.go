package middlewares

import (
	"strings"

	"github.com/tuonghuynh11/HealthAppAPI/models"
	"github.com/tuonghuynh11/HealthAppAPI/utils"

	"github.com/gin-gonic/gin"
)

const (
	CallerKey = "caller"
	UserIDKey = "userID"
)

// bearer reads the access token from the Authorization header, or from the
// access_token query parameter for websocket upgrades.
func bearer(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return c.Query("access_token")
}

// Auth validates the access token and stores the caller on the context.
func Auth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearer(c)
		if raw == "" {
			c.Error(utils.Unauthorized("access token is required"))
			c.Abort()
			return
		}
		claims, err := tokens.Parse(utils.AccessToken, raw)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}
		c.Set(CallerKey, claims.Caller())
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// CallerFrom returns the caller stored by Auth.
func CallerFrom(c *gin.Context) utils.Caller {
	v, _ := c.Get(CallerKey)
	caller, _ := v.(utils.Caller)
	return caller
}

// VerifiedUser rejects callers whose email is not verified.
func VerifiedUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CallerFrom(c).Verify != models.Verified {
			c.Error(utils.Forbidden("user not verified"))
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminRole() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CallerFrom(c).IsAdmin() {
			c.Error(utils.Forbidden("admin role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
