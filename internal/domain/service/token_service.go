package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any token that cannot be trusted: bad
// signature, malformed payload, expired, or missing the subject claim.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the caller-supplied claim set merged into issued tokens.
type Claims map[string]any

// TokenService issues and validates the two signed, self-contained token
// variants used by the system: short-lived session access tokens and
// fixed-expiry email verification tokens. Tokens are bearer proof, not
// session objects; revocation is out of scope.
type TokenService interface {
	// IssueAccessToken merges an expiry claim (now + ttl, or the configured
	// default when ttl <= 0) into claims and signs the result.
	IssueAccessToken(claims Claims, ttl time.Duration) (string, error)

	// IssueEmailToken merges issued-at and a fixed 7-day expiry into claims
	// and signs the result.
	IssueEmailToken(claims Claims) (string, error)

	// Decode verifies signature and expiry and returns the claim set.
	// Any failure is reported as ErrInvalidToken.
	Decode(token string) (jwt.MapClaims, error)

	// ResolveSubject decodes the token and extracts the subject claim.
	// A missing subject is an ErrInvalidToken, same as a decode failure.
	ResolveSubject(token string) (string, error)
}
