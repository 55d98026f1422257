// Package session provides the Redis-backed session store and the
// transport-layer authentication gate.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"account_backend/internal/feature/account/domain/entity"
	"account_backend/internal/feature/account/usecase"
)

// SessionRedis implements usecase.SessionStore using Redis.
// Expiry is delegated to Redis TTLs, so expired sessions simply vanish.
type SessionRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check to ensure SessionRedis implements SessionStore.
var _ usecase.SessionStore = (*SessionRedis)(nil)

// NewSessionRedis creates a new SessionRedis instance.
func NewSessionRedis(client *redis.Client, prefix string) *SessionRedis {
	if prefix == "" {
		prefix = "session"
	}
	return &SessionRedis{
		client: client,
		prefix: prefix,
	}
}

// sessionKey returns the Redis key for a session.
func (r *SessionRedis) sessionKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// Create persists a new session to Redis with a TTL matching its expiry.
func (r *SessionRedis) Create(ctx context.Context, session *entity.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	return r.client.Set(ctx, r.sessionKey(session.ID), data, ttl).Err()
}

// FindByID retrieves a session by its ID.
func (r *SessionRedis) FindByID(ctx context.Context, id string) (*entity.Session, error) {
	data, err := r.client.Get(ctx, r.sessionKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, usecase.ErrSessionNotFound
		}
		return nil, err
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	if session.IsExpired() {
		// TTL should have removed it already; clean up just in case.
		_ = r.client.Del(ctx, r.sessionKey(id)).Err()
		return nil, usecase.ErrSessionNotFound
	}

	return &session, nil
}

// UpdateDisplayName rewrites the session with a new display name,
// preserving the remaining TTL.
func (r *SessionRedis) UpdateDisplayName(ctx context.Context, id, name string) error {
	session, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	session.DisplayName = name

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return usecase.ErrSessionNotFound
	}
	return r.client.Set(ctx, r.sessionKey(id), data, ttl).Err()
}

// Delete removes a session from Redis.
func (r *SessionRedis) Delete(ctx context.Context, id string) error {
	deleted, err := r.client.Del(ctx, r.sessionKey(id)).Result()
	if err != nil {
		return err
	}
	if deleted == 0 {
		return usecase.ErrSessionNotFound
	}
	return nil
}

// DeleteExpired removes expired sessions (handled by Redis TTL).
func (r *SessionRedis) DeleteExpired(ctx context.Context) (int64, error) {
	// Redis handles expiration automatically via TTL
	return 0, nil
}
