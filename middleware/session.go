package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/utils"
)

// Keys set on the context once a session is resolved.
const (
	CtxUserID       = "user_id"
	CtxUsername     = "username"
	CtxRole         = "role"
	CtxEmail        = "email"
	CtxSessionToken = "session_token"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

func resolveSession(c *gin.Context) (services.Session, string, bool) {
	token := bearerToken(c)
	if token == "" {
		return services.Session{}, "", false
	}
	sessions := c.MustGet(CtxSessions).(*services.SessionStore)
	sess, ok, err := sessions.Get(c.Request.Context(), token)
	if err != nil || !ok {
		return services.Session{}, "", false
	}
	return sess, token, true
}

// RequireLogin resolves the session token and aborts with 401 when there is
// none or it has expired. The resolved identity lands in the context.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, token, ok := resolveSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": utils.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}
		c.Set(CtxUserID, sess.UserID)
		c.Set(CtxUsername, sess.Username)
		c.Set(CtxRole, sess.Role)
		c.Set(CtxEmail, sess.Email)
		c.Set(CtxSessionToken, token)
		c.Next()
	}
}

// OptionalSession resolves the session when present and lets anonymous
// requests through untouched.
func OptionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, token, ok := resolveSession(c); ok {
			c.Set(CtxUserID, sess.UserID)
			c.Set(CtxUsername, sess.Username)
			c.Set(CtxRole, sess.Role)
			c.Set(CtxEmail, sess.Email)
			c.Set(CtxSessionToken, token)
		}
		c.Next()
	}
}
