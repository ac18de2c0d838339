package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/podhost/podhost-backend/middleware"
	"github.com/podhost/podhost-backend/models"
	"github.com/podhost/podhost-backend/services"
	"github.com/podhost/podhost-backend/utils"
)

// ListEpisodes returns every episode with its parent podcast, newest release
// first.
func ListEpisodes(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	var episodes []models.Episode
	if err := db.Preload("Podcast").Order("release_date DESC").Find(&episodes).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list episodes"})
		return
	}
	c.JSON(http.StatusOK, episodes)
}

// EpisodeDetails returns one episode with its podcast and comments. Every
// call increments PlayCount and NumberOfViews by 1, repeated views included.
func EpisodeDetails(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode id"})
		return
	}

	var episode models.Episode
	if err := db.Preload("Podcast").First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": utils.ErrNotFound.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load episode"})
		}
		return
	}

	// Single-statement bump keeps concurrent views from losing increments.
	if err := db.Model(&episode).UpdateColumns(map[string]interface{}{
		"play_count":      gorm.Expr("play_count + ?", 1),
		"number_of_views": gorm.Expr("number_of_views + ?", 1),
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update counters"})
		return
	}
	episode.PlayCount++
	episode.NumberOfViews++

	response := gin.H{"episode": episode}

	comments := c.MustGet(middleware.CtxComments).(*services.CommentStore)
	list, err := comments.ListForEpisode(c.Request.Context(), strconv.Itoa(int(episode.ID)))
	if err != nil {
		// Degrade rather than hide the episode behind a comment-store outage.
		response["comments"] = []models.Comment{}
		response["comments_unavailable"] = true
	} else {
		response["comments"] = list
	}

	c.JSON(http.StatusOK, response)
}

// NewEpisodeForm lists the podcasts an episode can be attached to.
func NewEpisodeForm(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	var podcasts []models.Podcast
	if err := db.Select("id", "title").Order("title").Find(&podcasts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list podcasts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"fields":   []string{"podcast_id", "title", "description", "release_date", "duration", "media"},
		"podcasts": podcasts,
	})
}

// CreateEpisode adds an episode under an existing podcast. Counters start at
// zero, a missing release date defaults to now, optional media goes to the
// object store.
func CreateEpisode(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	podcastID, err := strconv.Atoi(c.PostForm("podcast_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "podcast_id is required"})
		return
	}
	var podcast models.Podcast
	if err := db.First(&podcast, podcastID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "podcast does not exist"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load podcast"})
		}
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
		return
	}

	duration := 0
	if v := c.PostForm("duration"); v != "" {
		duration, err = strconv.Atoi(v)
		if err != nil || duration < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a non-negative number of minutes"})
			return
		}
	}

	releaseDate := time.Now().UTC()
	if v := c.PostForm("release_date"); v != "" {
		parsed, err := parseReleaseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "release_date must be YYYY-MM-DD or RFC 3339"})
			return
		}
		releaseDate = parsed
	}

	episode := models.Episode{
		PodcastID:     uint(podcastID),
		Title:         title,
		Description:   c.PostForm("description"),
		ReleaseDate:   releaseDate,
		Duration:      duration,
		PlayCount:     0,
		NumberOfViews: 0,
	}

	if file, err := c.FormFile("media"); err == nil {
		url, err := uploadMedia(c, "episodes", strconv.Itoa(podcastID), file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error(), "details": err.Error()})
			return
		}
		episode.AudioURL = url
	}

	if err := db.Create(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create episode"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "episode created",
		"episode": episode,
	})
}

// EditEpisodeForm returns the episode being edited.
func EditEpisodeForm(c *gin.Context) {
	episode, ok := findEpisode(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, episode)
}

// EditEpisode replaces the mutable fields and optionally the media
// reference. Counters are not editable.
func EditEpisode(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	episode, ok := findEpisode(c)
	if !ok {
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		episode.Title = title
	}
	if description, set := c.GetPostForm("description"); set {
		episode.Description = description
	}
	if v := c.PostForm("duration"); v != "" {
		duration, err := strconv.Atoi(v)
		if err != nil || duration < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "duration must be a non-negative number of minutes"})
			return
		}
		episode.Duration = duration
	}
	if v := c.PostForm("release_date"); v != "" {
		parsed, err := parseReleaseDate(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "release_date must be YYYY-MM-DD or RFC 3339"})
			return
		}
		episode.ReleaseDate = parsed
	}
	if file, err := c.FormFile("media"); err == nil {
		url, err := uploadMedia(c, "episodes", strconv.Itoa(int(episode.PodcastID)), file)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": utils.ErrExternalService.Error(), "details": err.Error()})
			return
		}
		episode.AudioURL = url
	}

	if err := db.Save(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update episode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "episode updated",
		"episode": episode,
	})
}

// DeleteEpisodeForm returns the episode for a delete confirmation step.
func DeleteEpisodeForm(c *gin.Context) {
	episode, ok := findEpisode(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, episode)
}

// DeleteEpisode removes the episode row. Its comments stay in the document
// store; they are simply never rendered again.
func DeleteEpisode(c *gin.Context) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	episode, ok := findEpisode(c)
	if !ok {
		return
	}
	if err := db.Delete(&episode).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete episode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "episode deleted"})
}

func findEpisode(c *gin.Context) (models.Episode, bool) {
	db := c.MustGet(middleware.CtxDB).(*gorm.DB)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid episode id"})
		return models.Episode{}, false
	}
	var episode models.Episode
	if err := db.First(&episode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": utils.ErrNotFound.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load episode"})
		}
		return models.Episode{}, false
	}
	return episode, true
}

func parseReleaseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
