package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Session is the authenticated-identity state established at login. It is
// passed to handlers through the request context instead of being read from
// ambient storage.
type Session struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
}

// SessionTTL is the idle expiration window; every successful lookup resets it.
const SessionTTL = 30 * time.Minute

const sessionKeyPrefix = "session:"

const redisTimeout = 3 * time.Second

// SessionStore keeps sessions in Redis with an idle TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = SessionTTL
	}
	return &SessionStore{client: client, ttl: ttl}
}

// New writes a token -> session mapping with the idle TTL and returns the token.
func (s *SessionStore) New(ctx context.Context, sess Session) (string, error) {
	token := uuid.New().String()
	data, err := json.Marshal(sess)
	if err != nil {
		return "", fmt.Errorf("encode session: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token and, when found, pushes the expiration out by the
// full TTL again. A session therefore only dies after ttl of inactivity.
func (s *SessionStore) Get(ctx context.Context, token string) (Session, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()

	key := sessionKeyPrefix + token
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.UserID == "" {
		// Corrupt entry: drop it rather than hand out a half-built identity.
		s.client.Del(ctx, key)
		return Session{}, false, nil
	}

	s.client.Expire(ctx, key, s.ttl)
	return sess, true, nil
}

// Delete invalidates a session immediately (logout).
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, redisTimeout)
	defer cancel()
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
