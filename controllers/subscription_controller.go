package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/models"
)

type SubscriptionInput struct {
	PodcastID uint `json:"podcast_id" binding:"required"`
}

// Subscribe adds a podcast to the session user's subscriptions.
func Subscribe(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var input SubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var podcast models.Podcast
	if err := db.First(&podcast, input.PodcastID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "podcast does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load podcast"})
		}
		return
	}

	var existing models.Subscription
	if err := db.Where("user_id = ? AND podcast_id = ?", userID, input.PodcastID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already subscribed"})
		return
	}

	sub := models.Subscription{
		UserID:    userID,
		PodcastID: input.PodcastID,
	}
	if err := db.Create(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not subscribe"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":      "subscribed to " + podcast.Title,
		"subscription": sub,
	})
}

// Unsubscribe removes the session user's subscription to a podcast.
func Unsubscribe(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var input SubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := db.Where("user_id = ? AND podcast_id = ?", userID, input.PodcastID).Delete(&models.Subscription{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not unsubscribe"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "not subscribed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unsubscribed"})
}

// ListSubscriptions lists the session user's subscriptions with podcasts.
func ListSubscriptions(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	userID, ok := sessionUserID(c)
	if !ok {
		return
	}

	var subs []models.Subscription
	if err := db.Preload("Podcast").Where("user_id = ?", userID).Order("subscribed_date DESC").Find(&subs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list subscriptions"})
		return
	}
	c.JSON(http.StatusOK, subs)
}
