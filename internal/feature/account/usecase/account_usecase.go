package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"account_backend/internal/feature/account/domain/entity"
)

const (
	// minPasswordLength is the minimum number of characters for a password.
	minPasswordLength = 8

	// sessionTTL is the lifetime of a login session.
	sessionTTL = 7 * 24 * time.Hour
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user to the storage.
	// It returns ErrEmailAlreadyExists if a user with the same email exists.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user matching the specified email address.
	// It returns ErrUserNotFound if the user does not exist.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user matching the specified ID.
	// It returns ErrUserNotFound if the user does not exist.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update persists changes to an existing user.
	// It returns ErrEmailAlreadyExists if the new email collides with a
	// different existing user.
	Update(ctx context.Context, user *entity.User) error
}

// PasswordHasher abstracts the one-way password transform.
type PasswordHasher interface {
	// Hash produces a salted, self-describing hash of the plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches the stored hash.
	// Malformed hashes verify as false, never as an error.
	Verify(plaintext, hash string) bool
}

// SessionContext identifies the authenticated caller of a protected
// operation. The transport layer builds it from the per-request session;
// the usecase never reads ambient session state.
type SessionContext struct {
	SessionID string
	UserID    uint
}

// SessionMeta carries client metadata recorded on the session at login.
type SessionMeta struct {
	UserAgent string
	IPAddress string
}

// UpdateProfileInput is the set of profile changes applied by UpdateProfile.
// An empty NewPassword leaves the stored password hash unchanged.
type UpdateProfileInput struct {
	Name        string
	Email       string
	NewPassword string
}

// accountUsecase implements registration, login, profile update and logout.
type accountUsecase struct {
	users    UserRepository
	sessions SessionStore
	hasher   PasswordHasher
}

// NewAccountUsecase creates a new instance of accountUsecase.
func NewAccountUsecase(users UserRepository, sessions SessionStore, hasher PasswordHasher) *accountUsecase {
	return &accountUsecase{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
	}
}

// normalizeEmail lowercases and trims an email address.
// Policy: "A@x.com" and "a@x.com" refer to the same account, so uniqueness
// checks and login lookups always see the normalized form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validatePassword checks that a password meets the minimum length requirement.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrWeakPassword, minPasswordLength)
	}
	return nil
}

// newSessionToken returns a new random session token (64 hex characters).
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Register creates a new user with a hashed password.
// It does not establish a session; the caller must log in afterwards.
func (u *accountUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	email = normalizeEmail(email)

	// Pre-check for a friendlier error. The unique index on email is what
	// actually enforces uniqueness under concurrent registration.
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := u.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: hashed}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// dummyHash is a bcrypt hash compared against when the email is unknown,
// so that login takes the same time whether or not the user exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Login authenticates a user and establishes a session on success.
// It returns the user and the session token to hand to the client.
// Unknown email and wrong password produce the same ErrInvalidCredentials.
func (u *accountUsecase) Login(ctx context.Context, email, password string, meta SessionMeta) (*entity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}

	// Always run the verification so response time does not reveal
	// whether the email is registered.
	ok := u.hasher.Verify(password, passwordHash)

	if err != nil || !ok {
		return nil, "", ErrInvalidCredentials
	}

	token, err := newSessionToken()
	if err != nil {
		return nil, "", err
	}

	now := time.Now()
	session := &entity.Session{
		ID:          token,
		UserID:      user.ID,
		DisplayName: user.Name,
		UserAgent:   meta.UserAgent,
		IPAddress:   meta.IPAddress,
		CreatedAt:   now,
		ExpiresAt:   now.Add(sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	return user, token, nil
}

// Profile loads the user a session refers to.
func (u *accountUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// UpdateProfile applies name/email changes and an optional password change
// for the authenticated user, then refreshes the session's display name.
func (u *accountUsecase) UpdateProfile(ctx context.Context, sc SessionContext, in UpdateProfileInput) (*entity.User, error) {
	if sc.UserID == 0 {
		return nil, ErrUnauthenticated
	}

	user, err := u.users.FindByID(ctx, sc.UserID)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if email != user.Email {
		existing, err := u.users.FindByEmail(ctx, email)
		if err == nil && existing.ID != user.ID {
			return nil, ErrEmailAlreadyExists
		}
		if err != nil && !errors.Is(err, ErrUserNotFound) {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
	}

	user.Name = in.Name
	user.Email = email

	if in.NewPassword != "" {
		if err := validatePassword(in.NewPassword); err != nil {
			return nil, err
		}
		hashed, err := u.hasher.Hash(in.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, err
	}

	// Keep the cached display name in step with the profile. A session that
	// disappeared in the meantime is not an error for the update itself.
	if err := u.sessions.UpdateDisplayName(ctx, sc.SessionID, user.Name); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return nil, fmt.Errorf("failed to refresh session: %w", err)
	}

	return user, nil
}

// Logout destroys the session. Logging out an already-cleared session
// succeeds; the operation is idempotent.
func (u *accountUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := u.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, ErrSessionNotFound) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
