package recommend

import (
	"time"

	"careercompass-backend/internal/jobs"
)

type recommendationsRequest struct {
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	LastTwoJobs  []string `json:"lastTwoJobs"`
	Location     string   `json:"location"`
	ForceRefresh bool     `json:"forceRefresh"`
}

type recommendationsResponse struct {
	Jobs     []jobs.Recommendation `json:"jobs"`
	Cached   bool                  `json:"cached"`
	CachedAt *time.Time            `json:"cachedAt,omitempty"`
}

func toResponse(res Result) recommendationsResponse {
	out := recommendationsResponse{
		Jobs:   res.Jobs,
		Cached: res.Cached,
	}
	if out.Jobs == nil {
		out.Jobs = []jobs.Recommendation{}
	}
	if !res.CachedAt.IsZero() {
		at := res.CachedAt
		out.CachedAt = &at
	}
	return out
}
