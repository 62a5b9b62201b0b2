// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the identity record of the system. A user owns contacts and is the
// subject of every issued token. Users are created at registration, mutated
// on email verification or password change, and never hard-deleted.
type User struct {
	ID           uuid.UUID // The unique identifier for the user.
	Username     string    // Unique login name; the subject of access tokens.
	Email        string    // Unique email address; the subject of verification tokens.
	PasswordHash string    // bcrypt hash of the user's password.
	Verified     bool      // Whether the email address has been confirmed.
	CreatedAt    time.Time // Timestamp of when this account was created.
	UpdatedAt    time.Time // Timestamp of the last modification to this account.
}
