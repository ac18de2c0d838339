package models

import (
	"errors"
	"time"
)

// Comment is one document in the Redis comment store, keyed by
// (EpisodeID, CommentID). It is deliberately decoupled from the relational
// catalog: no foreign keys, ids are plain strings, and a comment may outlive
// the episode it was posted on.
type Comment struct {
	EpisodeID string `json:"episode_id"`
	CommentID string `json:"comment_id"`
	PodcastID string `json:"podcast_id"`
	UserID    string `json:"user_id"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"` // RFC 3339, UTC
}

var ErrMalformedComment = errors.New("malformed comment record")

// Validate rejects stored records that are missing required fields or carry
// an unparseable timestamp, so a corrupt document never reaches a handler.
func (c Comment) Validate() error {
	if c.EpisodeID == "" || c.CommentID == "" || c.UserID == "" || c.Timestamp == "" {
		return ErrMalformedComment
	}
	if _, err := time.Parse(time.RFC3339, c.Timestamp); err != nil {
		return ErrMalformedComment
	}
	return nil
}

// CreatedAt parses the stored timestamp. Call Validate first.
func (c Comment) CreatedAt() time.Time {
	t, _ := time.Parse(time.RFC3339, c.Timestamp)
	return t
}
