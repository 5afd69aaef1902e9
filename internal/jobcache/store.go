package jobcache

import (
	"context"
	"encoding/json"
	"time"

	"careercompass-backend/internal/jobs"
	"careercompass-backend/internal/profile"
	"careercompass-backend/internal/shared/metrics"
	"careercompass-backend/internal/shared/storage/kv"
	"careercompass-backend/internal/shared/telemetry"
)

// Store holds per-user cached job recommendations. The cache is advisory:
// every backend failure degrades to a miss or a skipped write, never to an
// error the caller has to handle.
type Store struct {
	backend kv.Store
	now     func() time.Time
}

// New constructs a Store over the given backend. The now func is injectable
// for tests; nil means time.Now.
func New(backend kv.Store, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{backend: backend, now: now}
}

// Get returns the cached jobs for userID if an entry exists, its fingerprint
// matches the given profile, and it has not expired. The second result is the
// entry's write time; ok is false on any kind of miss.
func (s *Store) Get(ctx context.Context, userID string, p profile.Profile) ([]jobs.Recommendation, time.Time, bool) {
	raw, found, err := s.backend.Get(ctx, Key(userID))
	if err != nil {
		telemetry.Warn("jobcache.read_failed", map[string]any{"user_id": userID, "error": err.Error()})
		metrics.IncCacheMiss()
		return nil, time.Time{}, false
	}
	if !found {
		metrics.IncCacheMiss()
		return nil, time.Time{}, false
	}

	var entry CachedJobSet
	if err := json.Unmarshal(raw, &entry); err != nil {
		// Corrupt slot: clear it so the next read doesn't re-parse garbage.
		telemetry.Warn("jobcache.corrupt_entry", map[string]any{"user_id": userID, "error": err.Error()})
		s.Invalidate(ctx, userID)
		metrics.IncCacheMiss()
		return nil, time.Time{}, false
	}

	if entry.ProfileFingerprint != profile.Fingerprint(p) {
		metrics.IncCacheMiss()
		return nil, time.Time{}, false
	}
	if IsStale(entry.CachedAt, entry.TTLMinutes, s.now()) {
		metrics.IncCacheMiss()
		metrics.IncCacheEviction()
		return nil, time.Time{}, false
	}

	metrics.IncCacheHit()
	return entry.Jobs, entry.CachedAt, true
}

// Set overwrites the user's cache slot with a freshly timestamped entry.
// Storage failures are swallowed: the cache is an optimization, so a write
// that doesn't persist must never surface as a user-visible error.
func (s *Store) Set(ctx context.Context, userID string, list []jobs.Recommendation, p profile.Profile, ttlMinutes int) {
	if ttlMinutes == 0 {
		ttlMinutes = DefaultTTLMinutes
	}
	entry := CachedJobSet{
		UserID:             userID,
		ProfileFingerprint: profile.Fingerprint(p),
		Jobs:               list,
		CachedAt:           s.now().UTC(),
		TTLMinutes:         ttlMinutes,
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		telemetry.Warn("jobcache.encode_failed", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	var ttl time.Duration
	if ttlMinutes > 0 {
		ttl = time.Duration(ttlMinutes) * time.Minute
	}
	if err := s.backend.Set(ctx, Key(userID), raw, ttl); err != nil {
		telemetry.Warn("jobcache.write_failed", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	metrics.IncCacheSet()
}

// Invalidate removes the user's cache slot so the next read misses
// regardless of freshness.
func (s *Store) Invalidate(ctx context.Context, userID string) {
	if err := s.backend.Delete(ctx, Key(userID)); err != nil {
		telemetry.Warn("jobcache.invalidate_failed", map[string]any{"user_id": userID, "error": err.Error()})
		return
	}
	metrics.IncCacheEviction()
}
