package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is an address-book entry. Every contact belongs to exactly one
// user; all queries and mutations are scoped to that owner. Within a single
// owner's book the email and the phone number must each be unique.
type Contact struct {
	ID        uuid.UUID // The unique identifier for the contact.
	UserID    uuid.UUID // The owning user; every operation is filtered by this.
	Name      string
	Surname   string
	Email     string
	Phone     string
	Birthday  time.Time // Date of birth; only the month and day matter for reminders.
	Notes     string    // Free-form notes.
	CreatedAt time.Time
	UpdatedAt time.Time
}
