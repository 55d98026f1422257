package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"account_backend/internal/feature/account/adapters"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/session"
)

// NewSessionStore creates a SessionStore implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the sessions table in the database.
func NewSessionStore(rdb *redis.Client, db *gorm.DB) usecase.SessionStore {
	if rdb != nil {
		return session.NewSessionRedis(rdb, "session")
	}
	return adapters.NewSessionGorm(db)
}
