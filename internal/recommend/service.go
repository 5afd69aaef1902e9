package recommend

import (
	"context"
	"time"

	"careercompass-backend/internal/jobcache"
	"careercompass-backend/internal/jobs"
	"careercompass-backend/internal/profile"
	"careercompass-backend/internal/shared/metrics"
	"careercompass-backend/internal/shared/telemetry"
)

// Service orchestrates the cache-or-fetch flow: consult the cache, fall back
// to the provider on a miss, and write successful results back.
type Service struct {
	Cache      *jobcache.Store
	Provider   Client
	TTLMinutes int
}

// Result carries the recommendations plus where they came from.
type Result struct {
	Jobs     []jobs.Recommendation
	Cached   bool
	CachedAt time.Time
}

// Recommendations returns the job list for the given user and profile. With
// force set the cache read is skipped entirely, but a successful fetch still
// repopulates the cache. A provider failure is returned as-is and leaves any
// previously cached set untouched.
func (s *Service) Recommendations(ctx context.Context, userID string, p profile.Profile, force bool) (Result, error) {
	if !force {
		if cached, cachedAt, ok := s.Cache.Get(ctx, userID, p); ok {
			return Result{Jobs: cached, Cached: true, CachedAt: cachedAt}, nil
		}
	}

	start := time.Now()
	metrics.IncProviderFetch()
	list, err := s.Provider.FetchRecommendations(ctx, p)
	metrics.ObserveProviderFetchDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	if err != nil {
		metrics.IncProviderFetchFailed()
		telemetry.Error("recommend.fetch_failed", map[string]any{
			"user_id": userID,
			"forced":  force,
			"error":   err.Error(),
		})
		return Result{}, err
	}

	s.Cache.Set(ctx, userID, list, p, s.TTLMinutes)
	telemetry.Info("recommend.fetched", map[string]any{
		"user_id": userID,
		"forced":  force,
		"jobs":    len(list),
	})
	return Result{Jobs: list, Cached: false, CachedAt: time.Now().UTC()}, nil
}

// Refresh re-fetches for the user's stored profile, bypassing the cache.
func (s *Service) Refresh(ctx context.Context, userID string, p profile.Profile) (Result, error) {
	return s.Recommendations(ctx, userID, p, true)
}
