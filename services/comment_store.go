package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/podhost/podhost-backend/models"
)

// EditWindow is how long the author of a comment may replace its text.
const EditWindow = 24 * time.Hour

// CommentStore is a key-value document store for comments, independent of
// the relational catalog. Each comment lives as one JSON document at
// comment:{episodeID}:{commentID}; a per-episode set indexes the comment ids.
// There is no relational integrity with the catalog and no delete operation.
type CommentStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewCommentStore(client *redis.Client) *CommentStore {
	return &CommentStore{client: client, now: time.Now}
}

func commentKey(episodeID, commentID string) string {
	return fmt.Sprintf("comment:%s:%s", episodeID, commentID)
}

func episodeIndexKey(episodeID string) string {
	return fmt.Sprintf("episode:%s:comments", episodeID)
}

// Add stores a new comment with a fresh id and the current UTC timestamp.
func (s *CommentStore) Add(ctx context.Context, episodeID, podcastID, userID, text string) (models.Comment, error) {
	comment := models.Comment{
		EpisodeID: episodeID,
		CommentID: uuid.New().String(),
		PodcastID: podcastID,
		UserID:    userID,
		Text:      text,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	}
	data, err := json.Marshal(comment)
	if err != nil {
		return models.Comment{}, fmt.Errorf("encode comment: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, commentKey(episodeID, comment.CommentID), data, 0)
	pipe.SAdd(ctx, episodeIndexKey(episodeID), comment.CommentID)
	if _, err := pipe.Exec(ctx); err != nil {
		return models.Comment{}, fmt.Errorf("store comment: %w", err)
	}
	return comment, nil
}

// ListForEpisode returns every comment on an episode, oldest first.
// Malformed stored documents are skipped, not surfaced.
func (s *CommentStore) ListForEpisode(ctx context.Context, episodeID string) ([]models.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	ids, err := s.client.SMembers(ctx, episodeIndexKey(episodeID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list comment ids: %w", err)
	}
	if len(ids) == 0 {
		return []models.Comment{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = commentKey(episodeID, id)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}

	comments := make([]models.Comment, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue // id indexed but document gone
		}
		var comment models.Comment
		if err := json.Unmarshal([]byte(raw), &comment); err != nil || comment.Validate() != nil {
			slog.Warn("skipping malformed comment record", "key", keys[i])
			continue
		}
		comments = append(comments, comment)
	}

	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt().Before(comments[j].CreatedAt())
	})
	return comments, nil
}

// Edit replaces the text of a comment if and only if the document exists,
// the requester is its author, and less than EditWindow has passed since it
// was created. Author and timestamp are never touched. Two concurrent edits
// inside the window are last-write-wins; there is no concurrency token.
//
// The boolean result is the verdict; err is reserved for store failures.
func (s *CommentStore) Edit(ctx context.Context, episodeID, commentID, userID, newText string) (models.Comment, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	key := commentKey(episodeID, commentID)
	raw, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.Comment{}, false, nil
	}
	if err != nil {
		return models.Comment{}, false, fmt.Errorf("load comment: %w", err)
	}

	var comment models.Comment
	if err := json.Unmarshal([]byte(raw), &comment); err != nil || comment.Validate() != nil {
		return models.Comment{}, false, nil
	}
	if comment.UserID != userID {
		return models.Comment{}, false, nil
	}
	if s.now().UTC().Sub(comment.CreatedAt()) > EditWindow {
		return models.Comment{}, false, nil
	}

	comment.Text = newText
	data, err := json.Marshal(comment)
	if err != nil {
		return models.Comment{}, false, fmt.Errorf("encode comment: %w", err)
	}
	if err := s.client.Set(ctx, key, data, 0).Err(); err != nil {
		return models.Comment{}, false, fmt.Errorf("store comment: %w", err)
	}
	return comment, true, nil
}
