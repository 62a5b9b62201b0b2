package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rolodex/internal/delivery/http/middleware"
	"rolodex/internal/delivery/http/response"
	"rolodex/internal/domain/entity"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingUserUsecase fails the test when any business operation is reached.
// Handlers must reject malformed payloads before touching the usecase.
type failingUserUsecase struct {
	t *testing.T
}

func (u *failingUserUsecase) Register(context.Context, *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	u.t.Fatal("Register reached the usecase on a malformed payload")

	return nil, nil
}

func (u *failingUserUsecase) Login(context.Context, *usecase.LoginInput) (*usecase.LoginOutput, error) {
	u.t.Fatal("Login reached the usecase on a malformed payload")

	return nil, nil
}

func (u *failingUserUsecase) ConfirmEmail(context.Context, string) error {
	u.t.Fatal("ConfirmEmail reached the usecase unexpectedly")

	return nil
}

func (u *failingUserUsecase) GetByUsername(context.Context, string) (*entity.User, error) {
	u.t.Fatal("GetByUsername reached the usecase unexpectedly")

	return nil, nil
}

type failingContactUsecase struct {
	t *testing.T
}

func (u *failingContactUsecase) Create(context.Context, *usecase.ContactInput, *entity.User) (*entity.Contact, error) {
	u.t.Fatal("Create reached the usecase on a malformed payload")

	return nil, nil
}

func (u *failingContactUsecase) List(context.Context, *usecase.ListContactsInput, *entity.User) ([]*entity.Contact, error) {
	u.t.Fatal("List reached the usecase unexpectedly")

	return nil, nil
}

func (u *failingContactUsecase) Get(context.Context, uuid.UUID, *entity.User) (*entity.Contact, error) {
	u.t.Fatal("Get reached the usecase unexpectedly")

	return nil, nil
}

func (u *failingContactUsecase) Update(context.Context, uuid.UUID, *usecase.ContactInput, *entity.User) (*entity.Contact, error) {
	u.t.Fatal("Update reached the usecase on a malformed payload")

	return nil, nil
}

func (u *failingContactUsecase) Remove(context.Context, uuid.UUID, *entity.User) (*entity.Contact, error) {
	u.t.Fatal("Remove reached the usecase unexpectedly")

	return nil, nil
}

func (u *failingContactUsecase) UpcomingBirthdays(context.Context, int, *entity.User) ([]*entity.Contact, error) {
	u.t.Fatal("UpcomingBirthdays reached the usecase unexpectedly")

	return nil, nil
}

func postJSON(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()

	var envelope response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))

	return envelope
}

func TestUserHandler_RejectsMalformedBody(t *testing.T) {
	var logBuf bytes.Buffer
	h := NewUserHandler(&failingUserUsecase{t: t}, slog.New(slog.NewTextHandler(&logBuf, nil)))
	e := echo.New()

	c, rec := postJSON(e, `{"username": "ann"`)
	require.NoError(t, h.Register(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_INPUT", envelope.Error.Code)
	assert.Contains(t, logBuf.String(), "Rejected registration payload")

	logBuf.Reset()
	c, rec = postJSON(e, `not json`)
	require.NoError(t, h.Login(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, logBuf.String(), "Rejected login payload")
}

func TestContactHandler_RejectsMalformedBody(t *testing.T) {
	var logBuf bytes.Buffer
	h := NewContactHandler(&failingContactUsecase{t: t}, slog.New(slog.NewTextHandler(&logBuf, nil)))
	e := echo.New()

	c, rec := postJSON(e, `{"name": "Ann"`)
	c.Set(middleware.ContextKeyUser, &entity.User{Username: "ann"})
	require.NoError(t, h.Create(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "INVALID_INPUT", envelope.Error.Code)
	assert.Contains(t, logBuf.String(), "Rejected contact payload")
}
