package recommend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"careercompass-backend/internal/jobs"
	"careercompass-backend/internal/profile"
)

// ErrProviderUnavailable wraps transport and upstream failures so callers can
// map them to a recoverable, user-visible error.
var ErrProviderUnavailable = errors.New("job provider unavailable")

// Client fetches job recommendations from the upstream matching provider.
type Client interface {
	FetchRecommendations(ctx context.Context, p profile.Profile) ([]jobs.Recommendation, error)
}

// HTTPClient talks to the provider's job-recommendations endpoint. Transient
// failures are retried by the transport; anything that survives the retries
// is reported as ErrProviderUnavailable.
type HTTPClient struct {
	baseURL string
	apiKey  string
	inner   *http.Client
}

// NewHTTPClient constructs an HTTPClient with retrying transport.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) (*HTTPClient, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("JOB_PROVIDER_URL is required")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	r := retryablehttp.NewClient()
	r.RetryMax = 2
	r.Logger = nil
	r.HTTPClient.Timeout = timeout
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		inner:   r.StandardClient(),
	}, nil
}

type fetchRequest struct {
	Skills      []string `json:"skills"`
	Experience  string   `json:"experience"`
	LastTwoJobs []string `json:"lastTwoJobs"`
	Location    string   `json:"location,omitempty"`
}

type fetchResponse struct {
	Jobs json.RawMessage `json:"jobs"`
}

func (c *HTTPClient) FetchRecommendations(ctx context.Context, p profile.Profile) ([]jobs.Recommendation, error) {
	payload := fetchRequest{
		Skills:      p.Skills,
		Experience:  p.Experience,
		LastTwoJobs: topN(p.LastJobTitles, 2),
		Location:    p.Location,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/job-recommendations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.inner.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if len(decoded.Jobs) == 0 {
		return nil, fmt.Errorf("%w: response has no jobs field", ErrProviderUnavailable)
	}

	list, err := jobs.ParseList(decoded.Jobs)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// topN keeps the most recent titles; the list is ordered most recent first.
func topN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
