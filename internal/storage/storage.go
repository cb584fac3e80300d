package storage

import "context"

// Well-known keys. TokenKey holds the raw bearer token and is read directly
// by the API client; the *-storage keys hold versioned JSON snapshots owned
// by the stores.
const (
	TokenKey            = "auth-token"
	UserStorageKey      = "user-storage"
	CourseStorageKey    = "course-storage"
	AnalyticsStorageKey = "analytics-storage"
	TestTimeStorageKey  = "test-time-storage"
	CarsStorageKey      = "cars-analytics-storage"
)

// KV is the durable local storage used for persisted store snapshots and the
// bearer token. Subscribe delivers change notifications that originate
// OUTSIDE this process (another tab, another process); local writes are not
// echoed back to subscribers, matching browser storage-event semantics.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error

	// Subscribe registers a handler for external change notifications and
	// returns a cancel function that detaches it.
	Subscribe(fn func(key string)) (cancel func())
	// NotifyExternal injects an external change event for key. The transport
	// that detects foreign writes (file watcher, IPC, tests) calls this.
	NotifyExternal(key string)
}
