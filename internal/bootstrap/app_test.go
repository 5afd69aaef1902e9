package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"careercompass-backend/internal/bootstrap"
	"careercompass-backend/internal/shared/config"
)

type providerStub struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (p *providerStub) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.calls++
		fail := p.fail
		p.mu.Unlock()
		if fail {
			http.Error(w, "upstream down", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"jobs":[{"id":"j1","title":"Backend Engineer","company":"Acme","location":"Berlin","country":"DE","description":"Build services","applyUrl":"https://jobs.example/j1","source":"stub"}]}`))
	}
}

func (p *providerStub) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *providerStub) setFail(fail bool) {
	p.mu.Lock()
	p.fail = fail
	p.mu.Unlock()
}

func buildTestApp(t *testing.T, providerURL string) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:               "0",
		Env:                "dev",
		CORSAllowOrigin:    []string{"http://localhost:5173"},
		CacheBackend:       "memory",
		JobProviderURL:     providerURL,
		JobCacheTTLMinutes: 30,
	}
	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

type recommendationsBody struct {
	Jobs []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"jobs"`
	Cached bool `json:"cached"`
}

func postRecommendations(t *testing.T, router *gin.Engine, guestID, body string) (*httptest.ResponseRecorder, recommendationsBody) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-recommendations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", guestID)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	var decoded recommendationsBody
	if resp.Code == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			t.Fatalf("decode recommendations response: %v", err)
		}
	}
	return resp, decoded
}

func TestRecommendationsMissThenHit(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)
	body := `{"skills":["Go","SQL"],"experience":"5 years","lastTwoJobs":["Backend Engineer"],"location":"Berlin"}`

	resp, first := postRecommendations(t, app.Router, "miss-then-hit", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if first.Cached {
		t.Fatalf("expected first read to miss the cache")
	}
	if len(first.Jobs) != 1 || first.Jobs[0].ID != "j1" {
		t.Fatalf("unexpected jobs in first response: %+v", first.Jobs)
	}

	resp, second := postRecommendations(t, app.Router, "miss-then-hit", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !second.Cached {
		t.Fatalf("expected second read to be served from cache")
	}
	if stub.callCount() != 1 {
		t.Fatalf("expected a single provider call, got %d", stub.callCount())
	}
}

func TestRecommendationsReorderedSkillsStillHit(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)

	resp, _ := postRecommendations(t, app.Router, "reorder", `{"skills":["Go","SQL","Docker"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	resp, second := postRecommendations(t, app.Router, "reorder", `{"skills":["docker","sql","go"]}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !second.Cached {
		t.Fatalf("expected reordered skills to hit the same cache entry")
	}
	if stub.callCount() != 1 {
		t.Fatalf("expected a single provider call, got %d", stub.callCount())
	}
}

func TestForceRefreshBypassesCache(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)
	body := `{"skills":["Go"],"experience":"3 years"}`

	if resp, _ := postRecommendations(t, app.Router, "force", body); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	forced := `{"skills":["Go"],"experience":"3 years","forceRefresh":true}`
	resp, decoded := postRecommendations(t, app.Router, "force", forced)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if decoded.Cached {
		t.Fatalf("expected forced refresh to bypass the cache")
	}
	if stub.callCount() != 2 {
		t.Fatalf("expected two provider calls, got %d", stub.callCount())
	}

	// The forced fetch repopulated the cache.
	resp, after := postRecommendations(t, app.Router, "force", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !after.Cached {
		t.Fatalf("expected cache hit after forced refresh")
	}
}

func TestProviderFailureKeepsCachedEntry(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)
	body := `{"skills":["Go"]}`

	if resp, _ := postRecommendations(t, app.Router, "keep", body); resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	stub.setFail(true)
	forced := `{"skills":["Go"],"forceRefresh":true}`
	resp, _ := postRecommendations(t, app.Router, "keep", forced)
	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected status 502 when provider fails, got %d", resp.Code)
	}

	stub.setFail(false)
	resp, after := postRecommendations(t, app.Router, "keep", body)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if !after.Cached {
		t.Fatalf("expected the earlier entry to survive the failed refresh")
	}
	if len(after.Jobs) != 1 {
		t.Fatalf("expected cached jobs to be intact, got %+v", after.Jobs)
	}
}

func TestRefreshRequiresStoredProfile(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/job-recommendations/refresh", nil)
	req.Header.Set("X-Guest-Id", "no-profile")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 without a stored profile, got %d", resp.Code)
	}
}

func TestProfileUpsertInvalidatesCacheAndFeedsRefresh(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)
	guest := "profile-flow"
	body := `{"skills":["Go","Kubernetes"],"experience":"7 years","lastTwoJobs":["Platform Engineer","SRE"],"location":"Munich"}`

	// Save a profile.
	putReq := httptest.NewRequest(http.MethodPut, "/api/v1/user-profile", bytes.NewBufferString(body))
	putReq.Header.Set("Content-Type", "application/json")
	putReq.Header.Set("X-Guest-Id", guest)
	putResp := httptest.NewRecorder()
	app.Router.ServeHTTP(putResp, putReq)
	if putResp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on upsert, got %d: %s", putResp.Code, putResp.Body.String())
	}

	// Refresh uses the stored profile.
	refreshReq := httptest.NewRequest(http.MethodPost, "/api/v1/job-recommendations/refresh", nil)
	refreshReq.Header.Set("X-Guest-Id", guest)
	refreshResp := httptest.NewRecorder()
	app.Router.ServeHTTP(refreshResp, refreshReq)
	if refreshResp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on refresh, got %d: %s", refreshResp.Code, refreshResp.Body.String())
	}
	if stub.callCount() != 1 {
		t.Fatalf("expected one provider call after refresh, got %d", stub.callCount())
	}

	// GET profile includes the cached jobs written by the refresh.
	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/user-profile/guest:"+guest, nil)
	getReq.Header.Set("X-Guest-Id", guest)
	getResp := httptest.NewRecorder()
	app.Router.ServeHTTP(getResp, getReq)
	if getResp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on profile get, got %d", getResp.Code)
	}
	var profileBody struct {
		UserExists         bool `json:"user_exists"`
		JobRecommendations []struct {
			ID string `json:"id"`
		} `json:"job_recommendations"`
	}
	if err := json.NewDecoder(getResp.Body).Decode(&profileBody); err != nil {
		t.Fatalf("decode profile response: %v", err)
	}
	if !profileBody.UserExists {
		t.Fatalf("expected user_exists=true")
	}
	if len(profileBody.JobRecommendations) != 1 {
		t.Fatalf("expected cached jobs on the profile response, got %+v", profileBody.JobRecommendations)
	}

	// Updating the profile drops the cached set, so the next read re-fetches.
	updated := `{"skills":["Rust"],"experience":"7 years"}`
	putReq = httptest.NewRequest(http.MethodPut, "/api/v1/user-profile", bytes.NewBufferString(updated))
	putReq.Header.Set("Content-Type", "application/json")
	putReq.Header.Set("X-Guest-Id", guest)
	putResp = httptest.NewRecorder()
	app.Router.ServeHTTP(putResp, putReq)
	if putResp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on second upsert, got %d", putResp.Code)
	}

	resp, decoded := postRecommendations(t, app.Router, guest, `{"skills":["Rust"],"experience":"7 years"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}
	if decoded.Cached {
		t.Fatalf("expected cache miss after profile update")
	}
	if stub.callCount() != 2 {
		t.Fatalf("expected second provider call after profile update, got %d", stub.callCount())
	}
}

func TestHealthNeedsNoIdentity(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on health, got %d", resp.Code)
	}
}

func TestCacheStatsExposedInDev(t *testing.T) {
	stub := &providerStub{}
	upstream := httptest.NewServer(stub.handler())
	defer upstream.Close()

	app := buildTestApp(t, upstream.URL)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/job-recommendations/cache-stats", nil)
	req.Header.Set("X-Guest-Id", "stats")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 on cache stats, got %d: %s", resp.Code, resp.Body.String())
	}
}
