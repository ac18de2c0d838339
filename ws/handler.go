package ws

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // dev only; restrict in production
	},
}

// HandleEpisodeWebSocket subscribes a client to an episode's comment room.
// Browsers cannot set headers on websocket requests, so the session token
// travels as a query parameter here.
func HandleEpisodeWebSocket(c *gin.Context) {
	episodeID := c.Param("id")
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}

	sessions := c.MustGet(middleware.CtxSessions).(*services.SessionStore)
	sess, ok, err := sessions.Get(c.Request.Context(), token)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	slog.Info("episode ws connected", "episode_id", episodeID, "user_id", sess.UserID)
	conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"connected","episode_id":"`+episodeID+`"}`))
	H.Register(episodeID, conn)
}
