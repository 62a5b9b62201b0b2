package repository

import (
	"context"
	"errors"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when a contact does not exist or is not
// owned by the requesting user. The two cases are deliberately
// indistinguishable at this boundary.
var ErrContactNotFound = errors.New("contact not found")

// ContactFilter narrows a contact listing. Empty string fields are ignored.
type ContactFilter struct {
	Name    string
	Surname string
	Email   string
	Skip    int
	Limit   int
}

// ContactRepository defines ownership-scoped CRUD and filtered search over
// contact records. Every operation is implicitly filtered by the owning user.
type ContactRepository interface {
	// IsContactExists reports whether the user already has a contact with the
	// given email or the given phone number.
	IsContactExists(ctx context.Context, email, phone string, userID uuid.UUID) (bool, error)

	// CreateContact persists a new contact.
	CreateContact(ctx context.Context, contact *entity.Contact) error

	// GetContacts returns a filtered, paginated listing of the user's contacts.
	GetContacts(ctx context.Context, filter ContactFilter, userID uuid.UUID) ([]*entity.Contact, error)

	// GetContactByID retrieves one contact by ID, scoped to the user.
	GetContactByID(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error)

	// UpdateContact overwrites the mutable fields of the contact identified by
	// contact.ID and contact.UserID. Returns ErrContactNotFound when no
	// matching row exists.
	UpdateContact(ctx context.Context, contact *entity.Contact) (*entity.Contact, error)

	// RemoveContact deletes one contact scoped to the user and returns the
	// deleted record.
	RemoveContact(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error)

	// GetUpcomingBirthdays returns the user's contacts whose birthday falls in
	// the window today..today+days, wrapping across the year boundary.
	GetUpcomingBirthdays(ctx context.Context, days int, userID uuid.UUID) ([]*entity.Contact, error)
}
