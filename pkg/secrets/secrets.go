// Package secrets resolves configuration secrets from mounted secret files
// with a process-environment fallback, so the same binary runs under Docker
// Compose secrets and plain env-based development setups.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where container runtimes mount per-secret files.
const DefaultDir = "/run/secrets"

// Provider looks up secrets from files under Dir, falling back to
// environment variables. The zero value uses DefaultDir.
type Provider struct {
	Dir string
}

// Get resolves a secret by name. It tries <dir>/<NAME>, then
// <dir>/<name lowercased>.txt, then the environment variable NAME.
// The boolean is false when no source has a non-empty value.
func (p Provider) Get(name string) (string, bool) {
	dir := p.Dir
	if dir == "" {
		dir = DefaultDir
	}
	for _, path := range []string{
		filepath.Join(dir, name),
		filepath.Join(dir, strings.ToLower(name)+".txt"),
	} {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if s := strings.TrimSpace(string(data)); s != "" {
			return s, true
		}
	}
	if v := os.Getenv(name); v != "" {
		return v, true
	}
	return "", false
}

// Required resolves a secret and errors when it is absent or shorter than
// minLength, so missing cryptographic material fails at startup instead of
// silently defaulting. minLength 0 skips the length check.
func (p Provider) Required(name string, minLength int) (string, error) {
	v, ok := p.Get(name)
	if !ok {
		return "", fmt.Errorf("secret %s is required: provide a secret file or the %s environment variable", name, name)
	}
	if minLength > 0 && len(v) < minLength {
		return "", fmt.Errorf("secret %s must be at least %d characters long", name, minLength)
	}
	return v, nil
}
