// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"rolodex/config"
	"rolodex/internal/domain/service"
)

// emailTokenTTL is the fixed lifetime of email verification tokens.
const emailTokenTTL = 7 * 24 * time.Hour

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     []byte            // Process-wide signing secret, immutable after construction.
	method     jwt.SigningMethod // Configured HMAC signing method.
	defaultTTL time.Duration     // Default lifetime of access tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	method := jwt.GetSigningMethod(cfg.JWT.Algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unsupported jwt algorithm: %s", cfg.JWT.Algorithm)
	}

	return &jwtService{
		secret:     []byte(cfg.JWT.Secret),
		method:     method,
		defaultTTL: time.Duration(cfg.JWT.ExpirationSeconds) * time.Second,
	}, nil
}

// IssueAccessToken merges an expiry claim into the caller-supplied claims and
// signs the result. A non-positive ttl falls back to the configured default.
func (s *jwtService) IssueAccessToken(claims service.Claims, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	merged := jwt.MapClaims{}
	for k, v := range claims {
		merged[k] = v
	}
	merged["exp"] = time.Now().Add(ttl).Unix()

	token := jwt.NewWithClaims(s.method, merged)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}

	return signed, nil
}

// IssueEmailToken merges issued-at and a fixed 7-day expiry into the claims
// and signs the result.
func (s *jwtService) IssueEmailToken(claims service.Claims) (string, error) {
	now := time.Now()

	merged := jwt.MapClaims{}
	for k, v := range claims {
		merged[k] = v
	}
	merged["iat"] = now.Unix()
	merged["exp"] = now.Add(emailTokenTTL).Unix()

	token := jwt.NewWithClaims(s.method, merged)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign email token")
	}

	return signed, nil
}

// Decode verifies the signature and expiry of a token string. jwt.Parse
// rejects expired tokens by default, so no separate expiry check is needed.
func (s *jwtService) Decode(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if token.Method.Alg() != s.method.Alg() {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(service.ErrInvalidToken, "token decode failed")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.Wrap(service.ErrInvalidToken, "unexpected claims type")
	}

	return claims, nil
}

// ResolveSubject decodes the token and extracts the subject claim.
func (s *jwtService) ResolveSubject(tokenString string) (string, error) {
	claims, err := s.Decode(tokenString)
	if err != nil {
		return "", err
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", errors.Wrap(service.ErrInvalidToken, "subject claim missing")
	}

	return subject, nil
}
