package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/podhost/podhost-backend/utils"
)

// RequireRoles is the single authorization guard: it assumes RequireLogin
// ran earlier in the chain and aborts with 403 unless the session role is in
// the allow-list. Controllers never repeat this check inline.
func RequireRoles(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(CtxRole)
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": utils.ErrForbidden.Error()})
		c.Abort()
	}
}
