package usecase

import (
	"context"

	"account_backend/internal/feature/account/domain/entity"
)

// SessionStore abstracts the persistence layer for login sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (platform/adapters).
type SessionStore interface {
	// Create persists a new session to the storage.
	Create(ctx context.Context, session *entity.Session) error

	// FindByID retrieves a session by its ID (token value).
	// Expired sessions are treated as absent.
	FindByID(ctx context.Context, id string) (*entity.Session, error)

	// UpdateDisplayName replaces the cached display name of a session
	// without changing its identity or expiry.
	UpdateDisplayName(ctx context.Context, id, name string) error

	// Delete removes a session from storage. Deleting a session that does
	// not exist returns ErrSessionNotFound.
	Delete(ctx context.Context, id string) error

	// DeleteExpired removes all expired sessions from storage.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context) (int64, error)
}
