package auth

import (
	"encoding/base64"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Verifier checks submitted credentials against the single configured admin
// identity. The password hash is supplied base64-encoded so bcrypt's `$`
// separators survive .env files.
type Verifier struct {
	username string
	hash     string
	logger   *zap.Logger
}

// NewVerifier creates a credential verifier. hashBase64 may be empty, in
// which case every login attempt is rejected.
func NewVerifier(username, hashBase64 string, logger *zap.Logger) *Verifier {
	hash := ""
	if hashBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(hashBase64)
		if err != nil {
			logger.Error("decode admin password hash", zap.Error(err))
		} else {
			hash = strings.TrimSpace(string(decoded))
		}
	}
	return &Verifier{username: username, hash: hash, logger: logger}
}

// Verify reports whether the credentials match the configured admin. It
// fails closed: an unconfigured or malformed hash rejects every attempt and
// no error escapes this boundary.
func (v *Verifier) Verify(username, password string) bool {
	if username != v.username {
		return false
	}
	if len(v.hash) < 10 {
		v.logger.Error("admin password hash not configured")
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(password)) == nil
}

// HashPassword hashes a plain password with bcrypt, for initial admin setup.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}
