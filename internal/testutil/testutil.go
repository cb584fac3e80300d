package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mkalil/prepdash/internal/config"
	"github.com/mkalil/prepdash/internal/storage"
	"github.com/mkalil/prepdash/internal/storage/sqlite"
)

// NewTestKV creates an in-memory SQLite local storage with migrations
// applied.
func NewTestKV(t *testing.T) *sqlite.KV {
	t.Helper()

	kv, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	return kv
}

// TestConfig returns a config suitable for store tests: short timeout, mock
// fallback off, default staleness window.
func TestConfig() config.Config {
	return config.Config{
		APIBaseURL:     "http://localhost:0/api",
		RequestTimeout: 2 * time.Second,
		StoragePath:    ":memory:",
		LogLevel:       "ERROR",
		StaleThreshold: 5 * time.Minute,
		SignInURL:      "/authentication/sign-in",
	}
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	t.Helper()
	require.NoError(t, closer.Close())
}

// SetToken stores a raw bearer token the way the user store would.
func SetToken(t *testing.T, kv storage.KV, token string) {
	t.Helper()
	require.NoError(t, kv.Set(context.Background(), storage.TokenKey, []byte(token)))
}
