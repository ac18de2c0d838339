package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/podhost/podhost-backend/models"
)

func TestCreatePodcastRequiresPodcasterRole(t *testing.T) {
	env := newTestEnv(t)

	// Anonymous caller.
	rec := env.doForm(t, http.MethodPost, "/Podcasts/Create", map[string]string{"title": "Tech Talk"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Listener session.
	env.register(t, "lisa", "lisa@example.com", "secret123", "Listener")
	token := env.login(t, "lisa@example.com", "secret123")
	rec = env.doForm(t, http.MethodPost, "/Podcasts/Create", map[string]string{"title": "Tech Talk"}, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// No row was written either way.
	var count int64
	require.NoError(t, env.db.Model(&models.Podcast{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreatePodcastAppearsFirstInList(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	token := env.login(t, "alice@example.com", "secret123")

	// An older podcast already in the catalog.
	var alice models.User
	require.NoError(t, env.db.Where("email = ?", "alice@example.com").First(&alice).Error)
	old := models.Podcast{
		Title:       "Old Show",
		CreatorID:   alice.ID,
		CreatedDate: time.Now().Add(-48 * time.Hour),
	}
	require.NoError(t, env.db.Create(&old).Error)

	rec := env.doForm(t, http.MethodPost, "/Podcasts/Create", map[string]string{
		"title":       "Tech Talk",
		"description": "",
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.doJSON(t, http.MethodGet, "/Podcasts", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Podcast
	decodeBody(t, rec, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Tech Talk", list[0].Title)
	assert.Equal(t, "Old Show", list[1].Title)
	assert.Equal(t, alice.ID, list[0].CreatorID)
}

func TestCreatePodcastRequiresTitle(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	token := env.login(t, "alice@example.com", "secret123")

	rec := env.doForm(t, http.MethodPost, "/Podcasts/Create", map[string]string{"title": "   "}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreatePodcastWithMediaAppendsURL(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	token := env.login(t, "alice@example.com", "secret123")

	rec := env.doMultipart(t, "/Podcasts/Create", map[string]string{
		"title":       "Tech Talk",
		"description": "weekly show",
	}, "media", "trailer.mp3", []byte("mp3-bytes"), token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var podcast models.Podcast
	require.NoError(t, env.db.Where("title = ?", "Tech Talk").First(&podcast).Error)
	assert.Contains(t, podcast.Description, "weekly show")
	assert.Contains(t, podcast.Description, "\nMedia: https://media.test/podhost-media/podcasts/")
	assert.Contains(t, podcast.Description, "_trailer.mp3")
}

func TestEditPodcastOwnership(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	env.register(t, "mallory", "mallory@example.com", "secret123", "Podcaster")
	env.register(t, "root", "root@example.com", "secret123", "Admin")

	aliceToken := env.login(t, "alice@example.com", "secret123")
	rec := env.doForm(t, http.MethodPost, "/Podcasts/Create", map[string]string{"title": "Tech Talk"}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Another podcaster may not touch it.
	malloryToken := env.login(t, "mallory@example.com", "secret123")
	rec = env.doForm(t, http.MethodPost, "/Podcasts/Edit/1", map[string]string{"title": "Hijacked"}, malloryToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The creator may.
	rec = env.doForm(t, http.MethodPost, "/Podcasts/Edit/1", map[string]string{"title": "Tech Talk v2"}, aliceToken)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// So may an admin.
	adminToken := env.login(t, "root@example.com", "secret123")
	rec = env.doForm(t, http.MethodPost, "/Podcasts/Edit/1", map[string]string{"description": "curated"}, adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var podcast models.Podcast
	require.NoError(t, env.db.First(&podcast, 1).Error)
	assert.Equal(t, "Tech Talk v2", podcast.Title)
	assert.Equal(t, "curated", podcast.Description)
}

func TestDeletePodcast(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	token := env.login(t, "alice@example.com", "secret123")

	rec := env.doForm(t, http.MethodPost, "/Podcasts/Create", map[string]string{"title": "Short Lived"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	// The confirm step returns the row.
	rec = env.doJSON(t, http.MethodGet, "/Podcasts/Delete/1", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Short Lived")

	rec = env.doForm(t, http.MethodPost, "/Podcasts/Delete/1", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Podcast{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMissingPodcastIsNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123", "Podcaster")
	token := env.login(t, "alice@example.com", "secret123")

	rec := env.doForm(t, http.MethodPost, "/Podcasts/Delete/999", nil, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
