package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studlink-api/internal/config"
	"github.com/studlink-api/internal/domain"
	jwtinfra "github.com/studlink-api/internal/infrastructure/jwt"
)

func newTestProvider(t *testing.T) *jwtinfra.Provider {
	t.Helper()
	p, err := jwtinfra.NewProvider(&config.Config{
		JWTSecret:     "test-secret-do-not-use-in-prod",
		JWTExpiryDays: 7,
	})
	require.NoError(t, err)
	return p
}

func okHandler(hit *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hit = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_NoHeader(t *testing.T) {
	var hit bool
	h := Auth(newTestProvider(t))(okHandler(&hit))

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestAuth_MalformedHeader(t *testing.T) {
	var hit bool
	h := Auth(newTestProvider(t))(okHandler(&hit))

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestAuth_InvalidToken(t *testing.T) {
	var hit bool
	h := Auth(newTestProvider(t))(okHandler(&hit))

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestAuth_ValidToken_InjectsClaims(t *testing.T) {
	provider := newTestProvider(t)
	token, err := provider.Sign("u1", "a@x.edu", domain.RoleStudent)
	require.NoError(t, err)

	var got *jwtinfra.Claims
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		got = c
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Auth(provider)(inner).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "a@x.edu", got.Email)
	assert.Equal(t, domain.RoleStudent, got.Role)
}

func TestAuth_TokenSignedWithOtherSecret(t *testing.T) {
	other, err := jwtinfra.NewProvider(&config.Config{JWTSecret: "another-secret", JWTExpiryDays: 7})
	require.NoError(t, err)
	token, err := other.Sign("u1", "a@x.edu", domain.RoleStudent)
	require.NoError(t, err)

	var hit bool
	h := Auth(newTestProvider(t))(okHandler(&hit))

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, hit)
}

func TestClaimsFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := ClaimsFromContext(req.Context())
	assert.False(t, ok)
}
