package postgres

import (
	"context"
	"time"

	"rolodex/internal/domain/entity"
	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/repository"
	"rolodex/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// contactRepository implements the domain.ContactRepository interface using GORM.
// Every query carries the owning user's ID, so a contact is never visible
// outside its owner's scope.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

// IsContactExists reports whether the user already has a contact with the
// given email or phone number.
func (repo *contactRepository) IsContactExists(ctx context.Context, email, phone string, userID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("user_id = ?", userID).
		Where("(email = ? OR phone = ?)", email, phone).
		Count(&count).Error

	if err != nil {
		return false, errors.Wrap(err, "failed to check contact existence")
	}

	return count > 0, nil
}

// CreateContact persists a new contact.
func (repo *contactRepository) CreateContact(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		// The composite unique indexes catch duplicates that slipped past the
		// service-level existence check under concurrent writers.
		if isUniqueConstraintViolation(err) {
			return domainerrors.NewDuplicateContactError(contact.Email, contact.Phone)
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("invalid owner reference")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	contact.ID = contactM.ID
	contact.CreatedAt = contactM.CreatedAt
	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// GetContacts returns a filtered, paginated listing of the user's contacts.
func (repo *contactRepository) GetContacts(ctx context.Context, filter repository.ContactFilter, userID uuid.UUID) ([]*entity.Contact, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("user_id = ?", userID)

	if filter.Name != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Surname != "" {
		query = query.Where("surname ILIKE ?", "%"+filter.Surname+"%")
	}
	if filter.Email != "" {
		query = query.Where("email ILIKE ?", "%"+filter.Email+"%")
	}

	if filter.Skip > 0 {
		query = query.Offset(filter.Skip)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var contactModels []*model.ContactModel
	if err := query.Order("name ASC, surname ASC").Find(&contactModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	contacts := make([]*entity.Contact, 0, len(contactModels))
	for _, contactM := range contactModels {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// GetContactByID retrieves one contact by ID, scoped to the user.
func (repo *contactRepository) GetContactByID(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contactM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by id")
	}

	return toContactDomain(&contactM), nil
}

// UpdateContact overwrites the mutable fields of the contact identified by
// contact.ID and contact.UserID.
func (repo *contactRepository) UpdateContact(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	result := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(map[string]any{
			"name":     contact.Name,
			"surname":  contact.Surname,
			"email":    contact.Email,
			"phone":    contact.Phone,
			"birthday": contact.Birthday,
			"notes":    contact.Notes,
		})

	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return nil, domainerrors.NewDuplicateContactError(contact.Email, contact.Phone)
		}
		if isNotNullConstraintViolation(result.Error) {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("missing required contact information")
		}

		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update contact")
	}

	// No matching row means a wrong id or a wrong owner; the caller cannot
	// tell the difference.
	if result.RowsAffected == 0 {
		return nil, repository.ErrContactNotFound
	}

	return repo.GetContactByID(ctx, contact.ID, contact.UserID)
}

// RemoveContact deletes one contact scoped to the user and returns the
// deleted record.
func (repo *contactRepository) RemoveContact(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error) {
	contact, err := repo.GetContactByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ContactModel{})

	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to remove contact")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrContactNotFound
	}

	return contact, nil
}

// monthDayLayout is the sort-friendly key the birthday window compares on.
const monthDayLayout = "01-02"

// birthdayWindow computes the inclusive month-day bounds of the reminder
// window now..now+days. wrapped reports that the window crosses New Year, in
// which case a key matches when it is >= startKey or <= endKey instead of
// between the two.
func birthdayWindow(now time.Time, days int) (startKey, endKey string, wrapped bool) {
	startKey = now.Format(monthDayLayout)
	endKey = now.AddDate(0, 0, days).Format(monthDayLayout)

	return startKey, endKey, startKey > endKey
}

// GetUpcomingBirthdays returns the user's contacts whose birthday falls in
// the window today..today+days. The comparison is on the month-day key so
// the year stored in the birthday column is irrelevant, and a window that
// spans New Year wraps around.
func (repo *contactRepository) GetUpcomingBirthdays(ctx context.Context, days int, userID uuid.UUID) ([]*entity.Contact, error) {
	startKey, endKey, wrapped := birthdayWindow(time.Now(), days)

	query := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("user_id = ?", userID)

	if wrapped {
		// Window wraps across the year boundary.
		query = query.Where("(to_char(birthday, 'MM-DD') >= ? OR to_char(birthday, 'MM-DD') <= ?)", startKey, endKey)
	} else {
		query = query.Where("to_char(birthday, 'MM-DD') BETWEEN ? AND ?", startKey, endKey)
	}

	var contactModels []*model.ContactModel
	if err := query.Order("to_char(birthday, 'MM-DD') ASC").Find(&contactModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to query upcoming birthdays")
	}

	contacts := make([]*entity.Contact, 0, len(contactModels))
	for _, contactM := range contactModels {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// --- Mapper Functions ---

func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	return &entity.Contact{
		ID:        data.ID,
		UserID:    data.UserID,
		Name:      data.Name,
		Surname:   data.Surname,
		Email:     data.Email,
		Phone:     data.Phone,
		Birthday:  data.Birthday,
		Notes:     data.Notes,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromContactDomain(data *entity.Contact) *model.ContactModel {
	if data == nil {
		return nil
	}

	return &model.ContactModel{
		ID:       data.ID,
		UserID:   data.UserID,
		Name:     data.Name,
		Surname:  data.Surname,
		Email:    data.Email,
		Phone:    data.Phone,
		Birthday: data.Birthday,
		Notes:    data.Notes,
	}
}
