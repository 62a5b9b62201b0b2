package auth

import (
	"testing"
	"time"

	"rolodex/config"
	"rolodex/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	return &config.Config{
		JWT: &config.JWTConfig{
			Secret:            "test_secret_key_very_long_for_testing",
			Algorithm:         "HS256",
			ExpirationSeconds: 900,
		},
	}
}

func TestJWTService_IssueAndResolveAccessToken(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, tokenService)

	token, err := tokenService.IssueAccessToken(service.Claims{"sub": "alice"}, 0)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	subject, err := tokenService.ResolveSubject(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", subject)

	// Custom claims survive the round trip
	claims, err := tokenService.Decode(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice", claims["sub"])
}

func TestJWTService_AccessTokenExpiryWindow(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	before := time.Now()
	token, err := tokenService.IssueAccessToken(service.Claims{"sub": "alice"}, 0)
	require.NoError(t, err)

	claims, err := tokenService.Decode(token)
	require.NoError(t, err)

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)

	// exp must land in [issue + 900s, issue + 900s + slack)
	expectedMin := before.Add(900 * time.Second).Unix()
	expectedMax := time.Now().Add(900*time.Second + time.Second).Unix()
	assert.GreaterOrEqual(t, int64(exp), expectedMin)
	assert.LessOrEqual(t, int64(exp), expectedMax)
}

func TestJWTService_CustomTTLOverridesDefault(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := tokenService.IssueAccessToken(service.Claims{"sub": "alice"}, time.Hour)
	require.NoError(t, err)

	claims, err := tokenService.Decode(token)
	require.NoError(t, err)

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Add(59*time.Minute).Unix())
}

func TestJWTService_EmailTokenHasFixedSevenDayLifetime(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := tokenService.IssueEmailToken(service.Claims{"sub": "alice@example.com"})
	require.NoError(t, err)

	claims, err := tokenService.Decode(token)
	require.NoError(t, err)

	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	exp, ok := claims["exp"].(float64)
	require.True(t, ok)

	assert.Equal(t, int64(7*24*time.Hour/time.Second), int64(exp)-int64(iat))

	subject, err := tokenService.ResolveSubject(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice@example.com", subject)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	cfg := testJWTConfig()
	tokenService, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Hand-craft an already expired token with the same secret
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(cfg.JWT.Secret))
	require.NoError(t, err)

	_, err = tokenService.Decode(signed)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_TamperedTokenRejected(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := tokenService.IssueAccessToken(service.Claims{"sub": "alice"}, 0)
	require.NoError(t, err)

	tampered := token[:len(token)-2] + "xx"
	_, err = tokenService.Decode(tampered)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = tokenService.ResolveSubject("clearly-not-a-jwt-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := other.SignedString([]byte("a-completely-different-secret"))
	require.NoError(t, err)

	_, err = tokenService.ResolveSubject(signed)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_MissingSubjectRejected(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	token, err := tokenService.IssueAccessToken(service.Claims{"role": "admin"}, 0)
	require.NoError(t, err)

	// Decode succeeds but subject resolution does not
	_, err = tokenService.Decode(token)
	assert.NoError(t, err)

	_, err = tokenService.ResolveSubject(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestJWTService_ConfigValidation(t *testing.T) {
	_, err := NewJWTService(&config.Config{JWT: &config.JWTConfig{Secret: ""}})
	assert.Error(t, err)

	_, err = NewJWTService(&config.Config{JWT: &config.JWTConfig{
		Secret:    "secret",
		Algorithm: "RS256",
	}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported jwt algorithm")
}
