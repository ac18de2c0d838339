package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/podhost/podhost-backend/middleware"
)

// sessionUserID parses the session user id. The guard middleware already ran,
// so a parse failure here means a corrupted session; treat it as logged out.
func sessionUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(middleware.CtxUserID))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session, please log in again"})
		return uuid.Nil, false
	}
	return id, true
}
