package impl

import (
	"context"
	"log/slog"
	"time"

	"rolodex/config"
	"rolodex/internal/domain/entity"
	"rolodex/internal/domain/repository"
	"rolodex/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-rolled testify mocks for the domain interfaces the services depend on.

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

type mockContactRepository struct {
	mock.Mock
}

func (m *mockContactRepository) IsContactExists(ctx context.Context, email, phone string, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, phone, userID)

	return args.Bool(0), args.Error(1)
}

func (m *mockContactRepository) CreateContact(ctx context.Context, contact *entity.Contact) error {
	args := m.Called(ctx, contact)

	return args.Error(0)
}

func (m *mockContactRepository) GetContacts(ctx context.Context, filter repository.ContactFilter, userID uuid.UUID) ([]*entity.Contact, error) {
	args := m.Called(ctx, filter, userID)
	if contacts, ok := args.Get(0).([]*entity.Contact); ok {
		return contacts, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockContactRepository) GetContactByID(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id, userID)
	if contact, ok := args.Get(0).(*entity.Contact); ok {
		return contact, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockContactRepository) UpdateContact(ctx context.Context, contact *entity.Contact) (*entity.Contact, error) {
	args := m.Called(ctx, contact)
	if updated, ok := args.Get(0).(*entity.Contact); ok {
		return updated, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockContactRepository) RemoveContact(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error) {
	args := m.Called(ctx, id, userID)
	if removed, ok := args.Get(0).(*entity.Contact); ok {
		return removed, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockContactRepository) GetUpcomingBirthdays(ctx context.Context, days int, userID uuid.UUID) ([]*entity.Contact, error) {
	args := m.Called(ctx, days, userID)
	if contacts, ok := args.Get(0).([]*entity.Contact); ok {
		return contacts, args.Error(1)
	}

	return nil, args.Error(1)
}

// mockTransactionManager runs the callback against a factory handing out the
// supplied mock repositories, without any real transaction underneath.
type mockTransactionManager struct {
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
}

func (m *mockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(&mockRepositoryFactory{userRepo: m.userRepo, contactRepo: m.contactRepo})
}

type mockRepositoryFactory struct {
	userRepo    repository.UserRepository
	contactRepo repository.ContactRepository
}

func (f *mockRepositoryFactory) UserRepo() repository.UserRepository {
	return f.userRepo
}

func (f *mockRepositoryFactory) ContactRepo() repository.ContactRepository {
	return f.contactRepo
}

type mockPasswordHasher struct {
	mock.Mock
}

func (m *mockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockPasswordHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)

	return args.Bool(0)
}

type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) IssueAccessToken(claims service.Claims, ttl time.Duration) (string, error) {
	args := m.Called(claims, ttl)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) IssueEmailToken(claims service.Claims) (string, error) {
	args := m.Called(claims)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Decode(token string) (jwt.MapClaims, error) {
	args := m.Called(token)
	if claims, ok := args.Get(0).(jwt.MapClaims); ok {
		return claims, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockTokenService) ResolveSubject(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

type mockEmailSender struct {
	mock.Mock
}

func (m *mockEmailSender) SendVerificationEmail(ctx context.Context, to, token string) error {
	args := m.Called(ctx, to, token)

	return args.Error(0)
}

func entityUser(username, email string) *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testConfig() *config.Config {
	return &config.Config{
		Contacts: &config.ContactsConfig{DefaultPageLimit: 100},
	}
}
