package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/services"
)

// Context keys under which Inject stores the shared dependencies.
const (
	CtxDB       = "db"
	CtxRedis    = "redis"
	CtxSessions = "sessions"
	CtxComments = "comments"
	CtxUploader = "uploader"
)

// Inject makes the database and the stores available to every handler via
// the gin context, so controllers stay free functions.
func Inject(db *gorm.DB, rdb *redis.Client, sessions *services.SessionStore, comments *services.CommentStore, uploader services.MediaUploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxDB, db)
		c.Set(CtxRedis, rdb)
		c.Set(CtxSessions, sessions)
		c.Set(CtxComments, comments)
		c.Set(CtxUploader, uploader)
		c.Next()
	}
}
