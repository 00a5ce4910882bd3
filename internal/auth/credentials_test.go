package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func encodedHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString([]byte(hash))
}

func TestVerifier_Verify(t *testing.T) {
	hash := encodedHash(t, "correct horse battery staple")
	v := NewVerifier("admin", hash, zap.NewNop())

	t.Run("accepts matching credentials", func(t *testing.T) {
		assert.True(t, v.Verify("admin", "correct horse battery staple"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		assert.False(t, v.Verify("admin", "wrong"))
	})

	t.Run("rejects wrong username", func(t *testing.T) {
		assert.False(t, v.Verify("root", "correct horse battery staple"))
	})

	t.Run("rejects empty password", func(t *testing.T) {
		assert.False(t, v.Verify("admin", ""))
	})
}

func TestVerifier_FailsClosed(t *testing.T) {
	t.Run("unconfigured hash rejects everything", func(t *testing.T) {
		v := NewVerifier("admin", "", zap.NewNop())
		assert.False(t, v.Verify("admin", "any password at all"))
	})

	t.Run("invalid base64 rejects everything", func(t *testing.T) {
		v := NewVerifier("admin", "%%%not-base64%%%", zap.NewNop())
		assert.False(t, v.Verify("admin", "any password at all"))
	})

	t.Run("decoded hash too short rejects everything", func(t *testing.T) {
		v := NewVerifier("admin", base64.StdEncoding.EncodeToString([]byte("short")), zap.NewNop())
		assert.False(t, v.Verify("admin", "any password at all"))
	})

	t.Run("malformed bcrypt hash rejects without panicking", func(t *testing.T) {
		v := NewVerifier("admin", base64.StdEncoding.EncodeToString([]byte("$2a$garbage-not-a-real-hash")), zap.NewNop())
		assert.False(t, v.Verify("admin", "any password at all"))
	})
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.Contains(t, hash, "$2a$")

	v := NewVerifier("admin", base64.StdEncoding.EncodeToString([]byte(hash)), zap.NewNop())
	assert.True(t, v.Verify("admin", "s3cret-pass"))
}
