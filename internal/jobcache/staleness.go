package jobcache

import "time"

// IsStale reports whether a cached entry written at cachedAt with the given
// TTL should be refreshed as of now. A non-positive TTL disables caching and
// a zero cachedAt is treated as stale.
func IsStale(cachedAt time.Time, ttlMinutes int, now time.Time) bool {
	if ttlMinutes <= 0 {
		return true
	}
	if cachedAt.IsZero() {
		return true
	}
	return now.Sub(cachedAt) >= time.Duration(ttlMinutes)*time.Minute
}
