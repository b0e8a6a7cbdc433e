package jwtinfra

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studlink-api/internal/config"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := NewProvider(&config.Config{
		JWTSecret:     "test-secret-do-not-use-in-prod",
		JWTExpiryDays: 7,
	})
	require.NoError(t, err)
	return p
}

func TestNewProvider_MissingSecret(t *testing.T) {
	_, err := NewProvider(&config.Config{JWTExpiryDays: 7})
	assert.Error(t, err)
}

func TestSignVerify_RoundTrip(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.Sign("u1", "a@x.edu", "student")
	require.NoError(t, err)

	claims, err := p.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "a@x.edu", claims.Email)
	assert.Equal(t, "student", claims.Role)
	// 7-day validity window.
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestVerify_TamperedToken(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.Sign("u1", "a@x.edu", "student")
	require.NoError(t, err)

	// Flip a byte in the payload segment.
	b := []byte(token)
	mid := len(b) / 2
	if b[mid] == 'A' {
		b[mid] = 'B'
	} else {
		b[mid] = 'A'
	}
	_, err = p.Verify(string(b))
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	p := newTestProvider(t)
	other, err := NewProvider(&config.Config{JWTSecret: "a-different-secret", JWTExpiryDays: 7})
	require.NoError(t, err)

	token, err := p.Sign("u1", "a@x.edu", "student")
	require.NoError(t, err)

	_, err = other.Verify(token)
	assert.Error(t, err)
}

func TestVerify_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret-do-not-use-in-prod")
	claims := &Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)), // already expired
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	p := newTestProvider(t)
	_, err = p.Verify(signed)
	assert.Error(t, err)
}

func TestVerify_RejectsNonHMACSigningMethod(t *testing.T) {
	p := newTestProvider(t)

	// alg=none token must never verify.
	claims := &Claims{UserID: "u1"}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = p.Verify(signed)
	assert.Error(t, err)
}
