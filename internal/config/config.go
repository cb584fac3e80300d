package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	StoragePath    string
	LogLevel       string
	StaleThreshold time.Duration
	MockFallback   bool
	SignInURL      string
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		APIBaseURL:     envOr("API_BASE_URL", "http://localhost:8080/api"),
		RequestTimeout: envMillisOr("REQUEST_TIMEOUT_MS", 10*time.Second),
		StoragePath:    envOr("STORAGE_PATH", "file:prepdash.db"),
		LogLevel:       envOr("LOG_LEVEL", "INFO"),
		StaleThreshold: envMillisOr("STALE_THRESHOLD_MS", 5*time.Minute),
		MockFallback:   envBoolOr("MOCK_FALLBACK", false),
		SignInURL:      envOr("SIGN_IN_URL", "/authentication/sign-in"),
	}
}

// Validate checks the configuration for values that would make the client
// unusable, collecting every problem into a single error.
func (c Config) Validate() error {
	var problems []string

	if c.APIBaseURL == "" {
		problems = append(problems, "API_BASE_URL cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "REQUEST_TIMEOUT_MS must be positive")
	}
	if c.StoragePath == "" {
		problems = append(problems, "STORAGE_PATH cannot be empty")
	}
	if c.StaleThreshold <= 0 {
		problems = append(problems, "STALE_THRESHOLD_MS must be positive")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.SignInURL == "" {
		problems = append(problems, "SIGN_IN_URL cannot be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}

func envMillisOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
