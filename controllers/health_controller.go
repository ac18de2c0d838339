package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/ws"
)

// HealthCheck reports liveness of the database, the redis stores and the
// websocket hub.
func HealthCheck(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	response := gin.H{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"db":        "ok",
		"redis":     "ok",
		"websocket": ws.H.GetStats(),
	}

	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		response["db"] = "error"
		response["status"] = "degraded"
	}

	if rdb, ok := c.Get(middleware.CtxRedis); ok {
		if client, ok := rdb.(*redis.Client); ok {
			if err := client.Ping(c.Request.Context()).Err(); err != nil {
				response["redis"] = "error"
				response["status"] = "degraded"
			}
		}
	}

	if response["status"] == "degraded" {
		c.JSON(http.StatusInternalServerError, response)
		return
	}
	c.JSON(http.StatusOK, response)
}
