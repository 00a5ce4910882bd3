package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenService_GenerateAndVerify(t *testing.T) {
	s := NewTokenService(testSecret)

	token, err := s.Generate("admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin)

	exp := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenTTL), exp, time.Minute)
}

func TestTokenService_Verify(t *testing.T) {
	s := NewTokenService(testSecret)

	t.Run("garbage token", func(t *testing.T) {
		_, err := s.Verify("not-a-token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		other := NewTokenService("ffffffffffffffffffffffffffffffff")
		token, err := other.Generate("admin")
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		token := signClaims(t, testSecret, Claims{
			Username: "admin",
			IsAdmin:  true,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		})
		_, err := s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("valid signature without admin claim", func(t *testing.T) {
		token := signClaims(t, testSecret, Claims{
			Username: "admin",
			IsAdmin:  false,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		_, err := s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
			Username: "admin",
			IsAdmin:  true,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		})
		token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func signClaims(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}
