package usecase

import (
	"context"
	"time"

	"rolodex/internal/domain/entity"

	"github.com/google/uuid"
)

// ContactInput carries the mutable fields of a contact for create and update.
type ContactInput struct {
	Name     string    `json:"name" validate:"required,max=100"`
	Surname  string    `json:"surname" validate:"max=100"`
	Email    string    `json:"email" validate:"required,email"`
	Phone    string    `json:"phone" validate:"required,max=50"`
	Birthday time.Time `json:"birthday"`
	Notes    string    `json:"notes" validate:"max=500"`
}

// ListContactsInput narrows and paginates a contact listing.
// Skip and Limit are non-negative; an upper bound is the repository's concern.
type ListContactsInput struct {
	Name    string
	Surname string
	Email   string
	Skip    int
	Limit   int
}

// ContactUsecase enforces the contact business rules (per-user uniqueness,
// ownership, not-found semantics) on top of the repository.
type ContactUsecase interface {
	Create(ctx context.Context, input *ContactInput, user *entity.User) (*entity.Contact, error)
	List(ctx context.Context, input *ListContactsInput, user *entity.User) ([]*entity.Contact, error)
	Get(ctx context.Context, id uuid.UUID, user *entity.User) (*entity.Contact, error)
	Update(ctx context.Context, id uuid.UUID, input *ContactInput, user *entity.User) (*entity.Contact, error)
	Remove(ctx context.Context, id uuid.UUID, user *entity.User) (*entity.Contact, error)
	UpcomingBirthdays(ctx context.Context, days int, user *entity.User) ([]*entity.Contact, error)
}
