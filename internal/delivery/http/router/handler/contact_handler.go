package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"rolodex/internal/delivery/http/response"
	"rolodex/internal/domain/entity"
	"rolodex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// birthdayLayout is the wire format for birthday fields.
const birthdayLayout = "2006-01-02"

// contactRequest is the request body for creating or replacing a contact.
type contactRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Surname  string `json:"surname" validate:"max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,max=50"`
	Birthday string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Notes    string `json:"notes" validate:"max=500"`
}

func (r *contactRequest) toInput() (*usecase.ContactInput, error) {
	input := &usecase.ContactInput{
		Name:    r.Name,
		Surname: r.Surname,
		Email:   r.Email,
		Phone:   r.Phone,
		Notes:   r.Notes,
	}

	if r.Birthday != "" {
		birthday, err := time.Parse(birthdayLayout, r.Birthday)
		if err != nil {
			return nil, errors.Wrap(err, "invalid birthday format")
		}
		input.Birthday = birthday
	}

	return input, nil
}

// contactView is the wire representation of a contact.
type contactView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Birthday  string    `json:"birthday,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toContactView(contact *entity.Contact) *contactView {
	view := &contactView{
		ID:        contact.ID,
		Name:      contact.Name,
		Surname:   contact.Surname,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Notes:     contact.Notes,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
	}
	if !contact.Birthday.IsZero() {
		view.Birthday = contact.Birthday.Format(birthdayLayout)
	}

	return view
}

func toContactViews(contacts []*entity.Contact) []*contactView {
	views := make([]*contactView, 0, len(contacts))
	for _, contact := range contacts {
		views = append(views, toContactView(contact))
	}

	return views
}

// ContactHandler holds dependencies for contact-related handlers.
type ContactHandler struct {
	uc     usecase.ContactUsecase
	logger *slog.Logger
}

// NewContactHandler is the constructor for ContactHandler, injected by Fx.
func NewContactHandler(uc usecase.ContactUsecase, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{
		uc:     uc,
		logger: logger,
	}
}

// Create handles adding a new contact to the caller's book.
func (h *ContactHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Rejected contact payload", slog.Any("error", err))

		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input, err := req.toInput()
	if err != nil {
		h.logger.Warn("Rejected contact birthday", slog.Any("error", err))

		return response.BadRequest(c, "INVALID_INPUT", "Birthday must be formatted as YYYY-MM-DD")
	}

	contact, err := h.uc.Create(c.Request().Context(), input, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toContactView(contact), "Contact created")
}

// List handles the filtered, paginated contact listing.
func (h *ContactHandler) List(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.ListContactsInput{
		Name:    c.QueryParam("name"),
		Surname: c.QueryParam("surname"),
		Email:   c.QueryParam("email"),
		Skip:    queryInt(c, "skip", 0),
		Limit:   queryInt(c, "limit", 0),
	}

	contacts, err := h.uc.List(c.Request().Context(), input, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactViews(contacts), "")
}

// Get handles fetching a single contact by ID.
func (h *ContactHandler) Get(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Contact ID must be a valid UUID")
	}

	contact, err := h.uc.Get(c.Request().Context(), id, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactView(contact), "")
}

// Update handles replacing a contact's fields.
func (h *ContactHandler) Update(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Contact ID must be a valid UUID")
	}

	var req contactRequest
	if err := c.Bind(&req); err != nil {
		h.logger.Warn("Rejected contact payload", slog.Any("error", err))

		return response.BindingError(c, "INVALID_INPUT", "Invalid contact input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input, err := req.toInput()
	if err != nil {
		h.logger.Warn("Rejected contact birthday", slog.Any("error", err))

		return response.BadRequest(c, "INVALID_INPUT", "Birthday must be formatted as YYYY-MM-DD")
	}

	contact, err := h.uc.Update(c.Request().Context(), id, input, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactView(contact), "Contact updated")
}

// Delete handles removing a contact and echoes the removed record.
func (h *ContactHandler) Delete(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Contact ID must be a valid UUID")
	}

	contact, err := h.uc.Remove(c.Request().Context(), id, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactView(contact), "Contact removed")
}

// Birthdays handles the upcoming-birthdays query. The window defaults to one
// week when the days parameter is absent.
func (h *ContactHandler) Birthdays(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return errors.WithStack(err)
	}

	days := queryInt(c, "days", 7)

	contacts, err := h.uc.UpcomingBirthdays(c.Request().Context(), days, user)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toContactViews(contacts), "")
}

// queryInt parses an optional integer query parameter, falling back to the
// default on absence or garbage.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
