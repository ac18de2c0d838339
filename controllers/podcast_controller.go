package controllers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/models"
	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/utils"
)

// ListPodcasts returns every podcast, newest first.
func ListPodcasts(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	var podcasts []models.Podcast
	if err := db.Order("created_date DESC").Find(&podcasts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list podcasts"})
		return
	}
	c.JSON(http.StatusOK, podcasts)
}

// NewPodcastForm is the role-gated GET counterpart of CreatePodcast.
func NewPodcastForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": []string{"title", "description", "media"}})
}

// CreatePodcast creates a podcast for the session user. An optional
// multipart "media" file is uploaded and its URL appended to the
// description; Podcast has no dedicated media column.
func CreatePodcast(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	creatorID, ok := sessionUserID(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}
	description := c.PostForm("description")

	if file, err := c.FormFile("media"); err == nil {
		url, err := uploadMedia(c, "podcasts", creatorID.String(), file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error(), "details": err.Error()})
			return
		}
		description += "\nMedia: " + url
	}

	podcast := models.Podcast{
		Title:       title,
		Description: description,
		CreatorID:   creatorID,
	}
	if err := db.Create(&podcast).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create podcast"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "podcast created",
		"podcast": podcast,
	})
}

// EditPodcastForm returns the podcast being edited, after the ownership check.
func EditPodcastForm(c *gin.Context) {
	podcast, ok := ownedPodcast(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, podcast)
}

// EditPodcast updates title/description and optionally appends a new media
// URL. Only the creator or an Admin may edit.
func EditPodcast(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	podcast, ok := ownedPodcast(c)
	if !ok {
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		podcast.Title = title
	}
	if description, set := c.GetPostForm("description"); set {
		podcast.Description = description
	}
	if file, err := c.FormFile("media"); err == nil {
		url, err := uploadMedia(c, "podcasts", podcast.CreatorID.String(), file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error(), "details": err.Error()})
			return
		}
		podcast.Description += "\nUpdated media: " + url
	}

	if err := db.Save(&podcast).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update podcast"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "podcast updated",
		"podcast": podcast,
	})
}

// DeletePodcastForm returns the podcast for a delete confirmation step.
func DeletePodcastForm(c *gin.Context) {
	podcast, ok := ownedPodcast(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, podcast)
}

// DeletePodcast removes the podcast and, through the FK cascade, its
// episodes. Comments in the document store are left behind on purpose.
func DeletePodcast(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	podcast, ok := ownedPodcast(c)
	if !ok {
		return
	}
	if err := db.Select("Episodes").Delete(&podcast).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete podcast"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "podcast deleted"})
}

// ownedPodcast loads the :id podcast and enforces creator-or-Admin access.
// It writes the error response itself and reports success via ok.
func ownedPodcast(c *gin.Context) (models.Podcast, bool) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid podcast id"})
		return models.Podcast{}, false
	}

	var podcast models.Podcast
	if err := db.First(&podcast, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": utils.ErrNotFound.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load podcast"})
		}
		return models.Podcast{}, false
	}

	role := c.GetString(middleware.CtxRole)
	userID := c.GetString(middleware.CtxUserID)
	if role != string(models.RoleAdmin) && podcast.CreatorID.String() != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the creator or an admin may modify this podcast"})
		return models.Podcast{}, false
	}
	return podcast, true
}

// uploadMedia streams a multipart file to the object store under the
// {entityType}/{parentID}/{uuid}_{filename} key and returns the public URL.
func uploadMedia(c *gin.Context, entityType, parentID string, file *multipart.FileHeader) (string, error) {
	uploader := c.MustGet(middleware.CtxUploader).(services.MediaUploader)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	key := services.MediaKey(entityType, parentID, file.Filename)
	contentType := file.Header.Get("Content-Type")
	return uploader.Upload(c.Request.Context(), src, file.Size, contentType, key)
}
