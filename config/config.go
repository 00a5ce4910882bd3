// Package config loads application configuration from the environment, with
// an optional .env file and file-mounted secrets for sensitive values.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/askanon/board/pkg/secrets"
)

// minJWTSecretLength guards against weak signing keys sneaking in via env.
const minJWTSecretLength = 32

// Config holds application configuration loaded from environment.
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string
	ReadTimeout        int
	WriteTimeout       int
	CORSAllowedOrigins string
	Production         bool // marks the session cookie Secure
}

// StoreConfig holds record store settings.
type StoreConfig struct {
	DataDir  string
	CacheTTL time.Duration
}

// AdminConfig holds the single admin identity and token signing material.
type AdminConfig struct {
	Username           string
	PasswordHashBase64 string // bcrypt hash, base64-encoded to survive .env
	JWTSecret          string
}

// RateLimitConfig bounds question submissions per IP per 24h window.
type RateLimitConfig struct {
	MaxQuestionsPerDay int
}

// Load reads configuration from environment, with optional .env file.
// Required secrets are validated here so a misconfigured deployment fails at
// startup, not on the first admin login.
func Load() (*Config, error) {
	_ = godotenv.Load()

	src := secrets.Provider{Dir: os.Getenv("SECRETS_DIR")}

	jwtSecret, err := src.Required("JWT_SECRET", minJWTSecretLength)
	if err != nil {
		return nil, err
	}
	adminUser, err := src.Required("ADMIN_USERNAME", 0)
	if err != nil {
		return nil, err
	}
	// Optional: login is rejected outright while unset.
	passwordHash, _ := src.Get("ADMIN_PASSWORD_HASH_BASE64")

	cacheTTL := time.Duration(getEnvInt("CACHE_TTL_MS", 5000)) * time.Millisecond

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			ReadTimeout:        getEnvInt("READ_TIMEOUT_SEC", 30),
			WriteTimeout:       getEnvInt("WRITE_TIMEOUT_SEC", 30),
			CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			Production:         getEnv("APP_ENV", "development") == "production",
		},
		Store: StoreConfig{
			DataDir:  getEnv("DATA_DIR", "data"),
			CacheTTL: cacheTTL,
		},
		Admin: AdminConfig{
			Username:           adminUser,
			PasswordHashBase64: passwordHash,
			JWTSecret:          jwtSecret,
		},
		RateLimit: RateLimitConfig{
			MaxQuestionsPerDay: getEnvInt("MAX_QUESTIONS_PER_DAY", 10),
		},
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
