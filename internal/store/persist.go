package store

import (
	"context"
	"encoding/json"

	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/storage"
)

// persistSpec names a store's durable snapshot: its storage key and the
// schema version of the persisted projection.
type persistSpec struct {
	name    string
	version int
}

type persistEnvelope struct {
	Version int             `json:"version"`
	State   json.RawMessage `json:"state"`
}

// rehydrate loads the persisted projection for spec into out, returning true
// when a usable snapshot was found. A version mismatch discards the snapshot
// with a warning; there is no migration path between versions yet.
func rehydrate(ctx context.Context, kv storage.KV, spec persistSpec, out any) bool {
	log := logger.Default().WithPrefix("store").WithField("storage_key", spec.name)

	raw, ok, err := kv.Get(ctx, spec.name)
	if err != nil {
		log.Error("failed to read snapshot: %v", err)
		return false
	}
	if !ok {
		return false
	}

	var env persistEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn("discarding unreadable snapshot: %v", err)
		return false
	}
	if env.Version != spec.version {
		log.Warn("discarding snapshot with version %d, want %d", env.Version, spec.version)
		return false
	}
	if err := json.Unmarshal(env.State, out); err != nil {
		log.Warn("discarding snapshot with unreadable state: %v", err)
		return false
	}
	return true
}

// persist serializes the projection under the spec's key. Persistence
// failures are logged, never surfaced: a failed write must not fail the
// store action that triggered it.
func persist(ctx context.Context, kv storage.KV, spec persistSpec, state any) {
	log := logger.Default().WithPrefix("store").WithField("storage_key", spec.name)

	raw, err := json.Marshal(state)
	if err != nil {
		log.Error("failed to encode snapshot state: %v", err)
		return
	}
	payload, err := json.Marshal(persistEnvelope{Version: spec.version, State: raw})
	if err != nil {
		log.Error("failed to encode snapshot envelope: %v", err)
		return
	}
	if err := kv.Set(ctx, spec.name, payload); err != nil {
		log.Error("failed to write snapshot: %v", err)
	}
}

// clearSnapshot removes the persisted projection, used by reset paths.
func clearSnapshot(ctx context.Context, kv storage.KV, spec persistSpec) {
	if err := kv.Delete(ctx, spec.name); err != nil {
		logger.Default().WithPrefix("store").Error("failed to clear snapshot %s: %v", spec.name, err)
	}
}
