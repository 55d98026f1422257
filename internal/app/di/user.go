// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"account_backend/internal/feature/account/adapters"
	"account_backend/internal/feature/account/usecase"
	"account_backend/internal/platform/cache"
)

// userCacheTTL bounds how stale a cached profile read may be.
const userCacheTTL = 5 * time.Minute

// NewUserRepository creates the UserRepository, wrapping the database
// repository with a Redis read-through cache when Redis is available.
func NewUserRepository(rdb *redis.Client, db *gorm.DB) usecase.UserRepository {
	repo := adapters.NewUserGorm(db)
	if rdb == nil {
		return repo
	}
	return cache.NewCachingUserRepository(rdb, userCacheTTL, repo, "users")
}
