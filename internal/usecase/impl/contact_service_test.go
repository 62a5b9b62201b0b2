package impl

import (
	"context"
	"testing"
	"time"

	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContactService(t *testing.T) (usecase.ContactUsecase, *mockContactRepository) {
	t.Helper()

	contactRepo := new(mockContactRepository)

	svc := NewContactService(ContactServiceParams{
		ContactRepo: contactRepo,
		Config:      testConfig(),
		Logger:      testLogger(),
	})

	return svc, contactRepo
}

func contactInput(email, phone string) *usecase.ContactInput {
	return &usecase.ContactInput{
		Name:     "Ann",
		Surname:  "Lee",
		Email:    email,
		Phone:    phone,
		Birthday: time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestContactService_Create(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")

	contactRepo.On("IsContactExists", ctx, "a@x.com", "111", owner.ID).Return(false, nil)
	contactRepo.On("CreateContact", ctx, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.UserID == owner.ID && c.Email == "a@x.com" && c.Phone == "111"
	})).Return(nil)

	contact, err := svc.Create(ctx, contactInput("a@x.com", "111"), owner)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, contact.UserID)

	contactRepo.AssertExpectations(t)
}

func TestContactService_CreateRejectsDuplicateEmailOrPhone(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")

	// Same email, different phone
	contactRepo.On("IsContactExists", ctx, "a@x.com", "222", owner.ID).Return(true, nil)

	_, err := svc.Create(ctx, contactInput("a@x.com", "222"), owner)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "DUPLICATE_CONTACT", appErr.ErrorCode())
	assert.Contains(t, appErr.Message(), "a@x.com")
	assert.Contains(t, appErr.Message(), "222")

	// Same phone, different email
	contactRepo.On("IsContactExists", ctx, "b@x.com", "111", owner.ID).Return(true, nil)

	_, err = svc.Create(ctx, contactInput("b@x.com", "111"), owner)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "DUPLICATE_CONTACT", appErr.ErrorCode())

	contactRepo.AssertNotCalled(t, "CreateContact", mock.Anything, mock.Anything)
}

func TestContactService_CreateScopedPerUser(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()

	// A second user can hold the same email and phone; the existence check
	// runs against their own book only.
	other := entityUser("bob", "bob@example.com")
	contactRepo.On("IsContactExists", ctx, "a@x.com", "111", other.ID).Return(false, nil)
	contactRepo.On("CreateContact", ctx, mock.Anything).Return(nil)

	_, err := svc.Create(ctx, contactInput("a@x.com", "111"), other)
	assert.NoError(t, err)
}

func TestContactService_ListAppliesDefaultLimit(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")

	contactRepo.On("GetContacts", ctx, repository.ContactFilter{Limit: 100}, owner.ID).
		Return([]*entity.Contact{}, nil)

	_, err := svc.List(ctx, &usecase.ListContactsInput{}, owner)
	assert.NoError(t, err)

	// Negative skip is clamped, explicit limit kept
	contactRepo.On("GetContacts", ctx, repository.ContactFilter{Name: "ann", Skip: 0, Limit: 10}, owner.ID).
		Return([]*entity.Contact{}, nil)

	_, err = svc.List(ctx, &usecase.ListContactsInput{Name: "ann", Skip: -5, Limit: 10}, owner)
	assert.NoError(t, err)

	contactRepo.AssertExpectations(t)
}

func TestContactService_GetMapsNotFound(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")
	id := uuid.New()

	contactRepo.On("GetContactByID", ctx, id, owner.ID).Return(nil, repository.ErrContactNotFound)

	_, err := svc.Get(ctx, id, owner)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_Update(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")
	id := uuid.New()

	updated := &entity.Contact{ID: id, UserID: owner.ID, Name: "Ann"}
	contactRepo.On("UpdateContact", ctx, mock.MatchedBy(func(c *entity.Contact) bool {
		return c.ID == id && c.UserID == owner.ID
	})).Return(updated, nil)

	contact, err := svc.Update(ctx, id, contactInput("a@x.com", "111"), owner)
	require.NoError(t, err)
	assert.Equal(t, updated, contact)
}

func TestContactService_UpdateNotFound(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")
	id := uuid.New()

	contactRepo.On("UpdateContact", ctx, mock.Anything).Return(nil, repository.ErrContactNotFound)

	_, err := svc.Update(ctx, id, contactInput("a@x.com", "111"), owner)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_Remove(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")
	id := uuid.New()

	removed := &entity.Contact{ID: id, UserID: owner.ID}
	contactRepo.On("RemoveContact", ctx, id, owner.ID).Return(removed, nil)

	contact, err := svc.Remove(ctx, id, owner)
	require.NoError(t, err)
	assert.Equal(t, removed, contact)

	// Removing a contact that is not in the caller's book is a 404, whether
	// it belongs to someone else or does not exist at all.
	contactRepo.On("RemoveContact", ctx, mock.Anything, owner.ID).Return(nil, repository.ErrContactNotFound)

	_, err = svc.Remove(ctx, uuid.New(), owner)
	assert.ErrorIs(t, err, domainerrors.ErrContactNotFound)
}

func TestContactService_UpcomingBirthdaysDefaultsToWeek(t *testing.T) {
	svc, contactRepo := newTestContactService(t)
	ctx := context.Background()
	owner := entityUser("alice", "alice@example.com")

	contactRepo.On("GetUpcomingBirthdays", ctx, 7, owner.ID).Return([]*entity.Contact{}, nil)

	_, err := svc.UpcomingBirthdays(ctx, 0, owner)
	assert.NoError(t, err)

	contactRepo.On("GetUpcomingBirthdays", ctx, 30, owner.ID).Return([]*entity.Contact{}, nil)

	_, err = svc.UpcomingBirthdays(ctx, 30, owner)
	assert.NoError(t, err)

	contactRepo.AssertExpectations(t)
}
