package handler

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/config"
	"github.com/sysu-ecnc-dev/job-portal/backend/internal/domain"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Expiration = 3600

	return &Handler{config: cfg}
}

func TestIssueSessionToken(t *testing.T) {
	h := newTestHandler(t)
	user := &domain.User{ID: 42, Role: domain.RoleEmployer}

	tokenString, err := h.issueSessionToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(h.config.JWT.Secret), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)

	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, string(domain.RoleEmployer), claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestIssueSessionTokenWrongSecret(t *testing.T) {
	h := newTestHandler(t)
	user := &domain.User{ID: 1, Role: domain.RoleSeeker}

	tokenString, err := h.issueSessionToken(user)
	require.NoError(t, err)

	claims := &AuthClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("another-secret"), nil
	})
	assert.Error(t, err)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "verify_email_abc", verifyEmailKey("abc"))
	assert.Equal(t, "reset_password_abc", resetPasswordKey("abc"))
}
