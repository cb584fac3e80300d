package store

import (
	"sync"
	"time"

	"github.com/mkalil/prepdash/internal/api"
	"github.com/mkalil/prepdash/internal/config"
	"github.com/mkalil/prepdash/internal/storage"
)

// Deps carries the collaborators every store is constructed with. Stores are
// explicit instances, never package-level singletons, so tests can build an
// isolated world per run.
type Deps struct {
	Gateway api.Gateway
	KV      storage.KV
	Config  config.Config
}

func (d Deps) staleThreshold() time.Duration {
	if d.Config.StaleThreshold > 0 {
		return d.Config.StaleThreshold
	}
	return DefaultStaleThreshold
}

// apiState is the cache metadata slice every store carries uniformly:
// isLoading, error and lastFetched, behind the store's mutex. The fetch
// helpers below implement the shared control flow once; the five data
// stores instantiate it instead of duplicating it.
type apiState struct {
	mu          sync.Mutex
	loading     bool
	errMsg      string
	lastFetched int64
}

// IsLoading reports whether a fetch is in flight.
func (s *apiState) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Error returns the current error message, empty when none.
func (s *apiState) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// LastFetched returns the epoch-millisecond stamp of the last successful
// fetch, zero when never fetched.
func (s *apiState) LastFetched() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFetched
}

// SetError sets the error message directly.
func (s *apiState) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

// ClearError clears the error message.
func (s *apiState) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = ""
}

// beginFetch implements the entry half of the shared fetch contract: the
// in-flight guard and the staleness short-circuit. It returns false when the
// caller should skip the network entirely; on true, loading is set and the
// error cleared. hasData reports whether a cached payload exists and MUST be
// computed by the caller while holding no other locks.
func (s *apiState) beginFetch(hasData bool, threshold time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loading {
		return false
	}
	if hasData && !IsStale(s.lastFetched, threshold) {
		return false
	}
	s.loading = true
	s.errMsg = ""
	return true
}

// finishSuccess drops the loading flag and stamps lastFetched, then applies
// the confirmed payload under the lock. The stamp lands first so persistence
// running inside apply snapshots the final state, not the pre-fetch one.
func (s *apiState) finishSuccess(apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.lastFetched = Timestamp()
	if apply != nil {
		apply()
	}
}

// finishFallback installs a canned placeholder payload after a failed fetch
// (development convenience, gated on explicit configuration). The error is
// informational: it names the fallback and the underlying cause, and the
// cache is stamped so the placeholder honors the staleness window. As with
// finishSuccess, the flags and stamp are set before apply runs.
func (s *apiState) finishFallback(apply func(), cause string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.errMsg = "Using mock data (API error: " + cause + ")"
	s.lastFetched = Timestamp()
	if apply != nil {
		apply()
	}
}

// finishError records the failure without touching cached data and without
// stamping lastFetched, so the next call retries.
func (s *apiState) finishError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.errMsg = msg
}

// resetAPIState returns the metadata slice to its initial values.
func (s *apiState) resetAPIState() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	s.errMsg = ""
	s.lastFetched = 0
}

// optimistic runs an optimistic update as one saga: the speculative change
// is applied immediately, then the remote call decides between committing
// the server's authoritative state and restoring the exact pre-image.
func optimistic[S any](pre S, applySpeculative func(), remote func() (S, error), commit func(S), restore func(S)) error {
	applySpeculative()

	confirmed, err := remote()
	if err != nil {
		restore(pre)
		return err
	}
	commit(confirmed)
	return nil
}
