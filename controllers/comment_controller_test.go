package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podhost/podhost-backend/models"
)

func seedEpisode(t *testing.T, env *testEnv) models.Episode {
	t.Helper()
	podcast := seedPodcast(t, env, "Tech Talk")
	episode := models.Episode{PodcastID: podcast.ID, Title: "Ep1", ReleaseDate: time.Now()}
	require.NoError(t, env.db.Create(&episode).Error)
	return episode
}

func TestAddCommentAndEditByAuthor(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	env.register(t, "bob", "bob@example.com", "secret123", "Listener")
	aliceToken := env.login(t, "alice@example.com", "secret123")
	bobToken := env.login(t, "bob@example.com", "secret123")
	seedEpisode(t, env)

	rec := env.doJSON(t, http.MethodPost, "/Comments/Add", map[string]string{
		"episode_id": "1",
		"podcast_id": "1",
		"text":       "Nice!",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var added struct {
		Message string         `json:"message"`
		Comment models.Comment `json:"comment"`
	}
	decodeBody(t, rec, &added)
	assert.Equal(t, "comment posted as alice", added.Message)
	assert.Equal(t, "Nice!", added.Comment.Text)
	require.NotEmpty(t, added.Comment.CommentID)

	// The author can rephrase within the edit window.
	rec = env.doJSON(t, http.MethodPost, "/Comments/Edit", map[string]string{
		"episode_id": "1",
		"comment_id": added.Comment.CommentID,
		"new_text":   "Nice episode!",
	}, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// A different user cannot, no matter the window.
	rec = env.doJSON(t, http.MethodPost, "/Comments/Edit", map[string]string{
		"episode_id": "1",
		"comment_id": added.Comment.CommentID,
		"new_text":   "hijacked",
	}, bobToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/Comments/List?episodeId=1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Comment
	decodeBody(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Nice episode!", list[0].Text)
}

func TestAddCommentRejectsBlankText(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Listener")
	token := env.login(t, "alice@example.com", "secret123")
	seedEpisode(t, env)

	rec := env.doJSON(t, http.MethodPost, "/Comments/Add", map[string]string{
		"episode_id": "1",
		"podcast_id": "1",
		"text":       "   ",
	}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddCommentRequiresLogin(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSON(t, http.MethodPost, "/Comments/Add", map[string]string{
		"episode_id": "1",
		"podcast_id": "1",
		"text":       "anonymous drive by",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListCommentsRequiresEpisodeID(t *testing.T) {
	env := newTestEnv(t)
	rec := env.doJSON(t, http.MethodGet, "/Comments/List", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestEpisodeDetailsIncludesComments(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Listener")
	token := env.login(t, "alice@example.com", "secret123")
	seedEpisode(t, env)

	rec := env.doJSON(t, http.MethodPost, "/Comments/Add", map[string]string{
		"episode_id": "1",
		"podcast_id": "1",
		"text":       "first!",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSON(t, http.MethodGet, "/Episodes/Details/1", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var details struct {
		Comments []models.Comment `json:"comments"`
	}
	decodeBody(t, rec, &details)
	require.Len(t, details.Comments, 1)
	assert.Equal(t, "first!", details.Comments[0].Text)
	assert.NotEmpty(t, details.Comments[0].UserID)
}
