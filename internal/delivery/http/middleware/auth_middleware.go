package middleware

import (
	"strings"

	domainerrors "rolodex/internal/domain/errors"
	"rolodex/internal/domain/service"
	"rolodex/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ContextKeyUser is the echo.Context key under which the authenticated user
// entity is stored for handlers.
const ContextKeyUser = "user"

// AuthMiddleware is the authentication gate for protected routes. It turns a
// bearer token into a loaded user entity, or rejects the request.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userUc   usecase.UserUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userUc usecase.UserUsecase) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userUc: userUc}
}

// Authenticate validates the bearer token and attaches the account to the
// request context. A missing header, a malformed header, an unusable token
// and an unknown subject all produce the identical unauthenticated error, so
// the response never reveals which check failed.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthenticated
		}

		username, err := m.tokenSvc.ResolveSubject(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthenticated
		}

		user, err := m.userUc.GetByUsername(c.Request().Context(), username)
		if err != nil {
			return domainerrors.ErrUnauthenticated
		}

		c.Set(ContextKeyUser, user)

		return next(c)
	}
}
