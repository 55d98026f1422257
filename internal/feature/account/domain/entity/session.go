package entity

import "time"

// Session represents a server-held login session.
// The ID is the opaque token handed to the client; everything else is
// server-side state keyed by it.
type Session struct {
	ID          string    // Session token value (64-character hex string)
	UserID      uint      // Associated user ID
	DisplayName string    // Copy of the user's name at login/update time
	UserAgent   string    // Client's User-Agent header
	IPAddress   string    // Client's IP address
	CreatedAt   time.Time // Session creation time
	ExpiresAt   time.Time // Session expiration time
}

// IsExpired returns true if the session has passed its expiration time.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsValid returns true if the session has not expired.
func (s *Session) IsValid() bool {
	return !s.IsExpired()
}
