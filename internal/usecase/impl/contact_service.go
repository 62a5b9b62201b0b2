package impl

import (
	"context"
	"log/slog"

	"rolodex/config"
	deliverycontext "rolodex/internal/delivery/context"
	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultBirthdayWindowDays = 7

// contactService implements the ContactUsecase interface.
type contactService struct {
	contactRepo      repository.ContactRepository
	defaultPageLimit int
	logger           *slog.Logger
}

// ContactServiceParams holds dependencies for ContactService, injected by Fx.
type ContactServiceParams struct {
	fx.In

	ContactRepo repository.ContactRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewContactService is the constructor for contactService.
func NewContactService(params ContactServiceParams) usecase.ContactUsecase {
	defaultPageLimit := 0
	if params.Config != nil && params.Config.Contacts != nil {
		defaultPageLimit = params.Config.Contacts.DefaultPageLimit
	}

	return &contactService{
		contactRepo:      params.ContactRepo,
		defaultPageLimit: defaultPageLimit,
		logger:           params.Logger,
	}
}

func (srv *contactService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create adds a contact to the user's book. Email and phone must both be new
// within that user's contacts; other users' contacts never collide.
func (srv *contactService) Create(ctx context.Context, input *usecase.ContactInput, user *entity.User) (*entity.Contact, error) {
	exists, err := srv.contactRepo.IsContactExists(ctx, input.Email, input.Phone, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for duplicate contact")
	}
	if exists {
		srv.log(ctx).Warn("Duplicate contact rejected", slog.Any("userID", user.ID), slog.String("email", input.Email))

		return nil, domainerrors.NewDuplicateContactError(input.Email, input.Phone)
	}

	contact := &entity.Contact{
		UserID:   user.ID,
		Name:     input.Name,
		Surname:  input.Surname,
		Email:    input.Email,
		Phone:    input.Phone,
		Birthday: input.Birthday,
		Notes:    input.Notes,
	}

	if err := srv.contactRepo.CreateContact(ctx, contact); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Contact created", slog.Any("userID", user.ID), slog.Any("contactID", contact.ID))

	return contact, nil
}

// List returns a filtered page of the user's contacts. A missing limit falls
// back to the configured default page size.
func (srv *contactService) List(ctx context.Context, input *usecase.ListContactsInput, user *entity.User) ([]*entity.Contact, error) {
	filter := repository.ContactFilter{
		Name:    input.Name,
		Surname: input.Surname,
		Email:   input.Email,
		Skip:    input.Skip,
		Limit:   input.Limit,
	}

	if filter.Skip < 0 {
		filter.Skip = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = srv.defaultPageLimit
	}

	contacts, err := srv.contactRepo.GetContacts(ctx, filter, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// Get retrieves one of the user's contacts by ID.
func (srv *contactService) Get(ctx context.Context, id uuid.UUID, user *entity.User) (*entity.Contact, error) {
	contact, err := srv.contactRepo.GetContactByID(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to load contact")
	}

	return contact, nil
}

// Update replaces the mutable fields of one of the user's contacts.
func (srv *contactService) Update(ctx context.Context, id uuid.UUID, input *usecase.ContactInput, user *entity.User) (*entity.Contact, error) {
	contact := &entity.Contact{
		ID:       id,
		UserID:   user.ID,
		Name:     input.Name,
		Surname:  input.Surname,
		Email:    input.Email,
		Phone:    input.Phone,
		Birthday: input.Birthday,
		Notes:    input.Notes,
	}

	updated, err := srv.contactRepo.UpdateContact(ctx, contact)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, err
	}

	srv.log(ctx).Debug("Contact updated", slog.Any("userID", user.ID), slog.Any("contactID", id))

	return updated, nil
}

// Remove deletes one of the user's contacts and returns the removed record.
func (srv *contactService) Remove(ctx context.Context, id uuid.UUID, user *entity.User) (*entity.Contact, error) {
	removed, err := srv.contactRepo.RemoveContact(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, err
	}

	srv.log(ctx).Debug("Contact removed", slog.Any("userID", user.ID), slog.Any("contactID", id))

	return removed, nil
}

// UpcomingBirthdays returns the user's contacts with a birthday inside the
// next days days, defaulting to one week.
func (srv *contactService) UpcomingBirthdays(ctx context.Context, days int, user *entity.User) ([]*entity.Contact, error) {
	if days <= 0 {
		days = defaultBirthdayWindowDays
	}

	contacts, err := srv.contactRepo.GetUpcomingBirthdays(ctx, days, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query upcoming birthdays")
	}

	return contacts, nil
}
