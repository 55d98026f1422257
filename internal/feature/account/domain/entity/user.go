// Package entity defines the domain entities for the account feature.
package entity

import "time"

// User represents a registered account in the system.
// It holds the profile fields shown to the user and the credential
// material used for authentication.
type User struct {
	// ID is the unique identifier for the user, assigned by the store.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown on the profile page.
	Name string `gorm:"size:100;not null"`

	// Email is the user's email address used for login.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:150;not null"`

	// Password is the hashed password for the user.
	// This should never store plaintext passwords.
	Password string `gorm:"size:200;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
