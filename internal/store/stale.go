package store

import "time"

// DefaultStaleThreshold is how long cached data stays fresh.
const DefaultStaleThreshold = 5 * time.Minute

// Timestamp returns the current time in epoch milliseconds, the unit every
// store uses for its lastFetched stamp.
func Timestamp() int64 {
	return time.Now().UnixMilli()
}

// IsStale reports whether a cache stamped at lastFetched (epoch millis) has
// outlived threshold. A zero stamp means never fetched and is always stale.
func IsStale(lastFetched int64, threshold time.Duration) bool {
	if lastFetched == 0 {
		return true
	}
	return time.Now().UnixMilli()-lastFetched > threshold.Milliseconds()
}
