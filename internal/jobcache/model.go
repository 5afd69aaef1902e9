package jobcache

import (
	"time"

	"careercompass-backend/internal/jobs"
)

const (
	// DefaultTTLMinutes is the validity window used when callers pass no TTL.
	DefaultTTLMinutes = 30

	keyPrefix = "jobcache:"
)

// CachedJobSet is the single durable slot stored per user. At most one exists
// per userId; every refresh replaces it wholesale (last write wins).
type CachedJobSet struct {
	UserID             string                `json:"userId"`
	ProfileFingerprint string                `json:"profileFingerprint"`
	Jobs               []jobs.Recommendation `json:"jobs"`
	CachedAt           time.Time             `json:"cachedAt"`
	TTLMinutes         int                   `json:"ttlMinutes"`
}

// Key returns the storage key for a user's cache slot.
func Key(userID string) string {
	return keyPrefix + userID
}
