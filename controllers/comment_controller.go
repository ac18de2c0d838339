package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/utils"
	"github.com/podhost/podhost-backend/ws"
)

type AddCommentInput struct {
	EpisodeID string `json:"episode_id" binding:"required"`
	PodcastID string `json:"podcast_id" binding:"required"`
	Text      string `json:"text" binding:"required"`
}

type EditCommentInput struct {
	EpisodeID string `json:"episode_id" binding:"required"`
	CommentID string `json:"comment_id" binding:"required"`
	NewText   string `json:"new_text" binding:"required"`
}

// AddComment posts a comment as the session user and broadcasts it to
// everyone watching the episode. No check that the episode exists: comments
// are decoupled from the catalog by design.
func AddComment(c *gin.Context) {
	var input AddCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(input.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment cannot be empty"})
		return
	}

	comments := c.MustGet(middleware.CtxComments).(*services.CommentStore)
	comment, err := comments.Add(c.Request.Context(), input.EpisodeID, input.PodcastID, c.GetString(middleware.CtxUserID), input.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error()})
		return
	}

	ws.BroadcastNewComment(comment)

	c.JSON(http.StatusCreated, gin.H{
		"message": "comment posted as " + c.GetString(middleware.CtxUsername),
		"comment": comment,
	})
}

// EditComment replaces a comment's text. The store enforces owner + 24h;
// every refusal comes back as one 403 so callers cannot probe which
// condition failed.
func EditComment(c *gin.Context) {
	var input EditCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comments := c.MustGet(middleware.CtxComments).(*services.CommentStore)
	comment, ok, err := comments.Edit(c.Request.Context(), input.EpisodeID, input.CommentID, c.GetString(middleware.CtxUserID), input.NewText)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error()})
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": utils.ErrEditNotAllowed.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "comment updated",
		"comment": comment,
	})
}

// ListComments returns an episode's comments, oldest first.
func ListComments(c *gin.Context) {
	episodeID := c.Query("episodeId")
	if episodeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "episodeId is required"})
		return
	}

	comments := c.MustGet(middleware.CtxComments).(*services.CommentStore)
	list, err := comments.ListForEpisode(c.Request.Context(), episodeID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}
