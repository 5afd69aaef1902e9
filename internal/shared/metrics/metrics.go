package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	cacheHitsTotal      atomic.Uint64
	cacheMissesTotal    atomic.Uint64
	cacheSetsTotal      atomic.Uint64
	cacheEvictionsTotal atomic.Uint64

	providerFetchTotal       atomic.Uint64
	providerFetchFailedTotal atomic.Uint64

	providerFetchDuration = newHistogram([]float64{50, 100, 250, 500, 1000, 2000, 5000, 10000, 30000})
)

// IncCacheHit increments the cache hit counter.
func IncCacheHit() {
	cacheHitsTotal.Add(1)
}

// IncCacheMiss increments the cache miss counter.
func IncCacheMiss() {
	cacheMissesTotal.Add(1)
}

// IncCacheSet increments the cache set counter.
func IncCacheSet() {
	cacheSetsTotal.Add(1)
}

// IncCacheEviction increments the eviction counter.
func IncCacheEviction() {
	cacheEvictionsTotal.Add(1)
}

// IncProviderFetch increments the provider fetch counter.
func IncProviderFetch() {
	providerFetchTotal.Add(1)
}

// IncProviderFetchFailed increments the failed provider fetch counter.
func IncProviderFetchFailed() {
	providerFetchFailedTotal.Add(1)
}

// ObserveProviderFetchDurationMs records an upstream fetch duration in milliseconds.
func ObserveProviderFetchDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	providerFetchDuration.Observe(value)
}

// Snapshot reports current counter values for the cache-stats endpoint.
type Snapshot struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Sets      uint64 `json:"sets"`
	Evictions uint64 `json:"evictions"`
}

// CacheSnapshot returns the current cache counters.
func CacheSnapshot() Snapshot {
	return Snapshot{
		Hits:      cacheHitsTotal.Load(),
		Misses:    cacheMissesTotal.Load(),
		Sets:      cacheSetsTotal.Load(),
		Evictions: cacheEvictionsTotal.Load(),
	}
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "jobcache_hits_total", "Total job cache hits", cacheHitsTotal.Load())
	writeCounter(&buf, "jobcache_misses_total", "Total job cache misses", cacheMissesTotal.Load())
	writeCounter(&buf, "jobcache_sets_total", "Total job cache writes", cacheSetsTotal.Load())
	writeCounter(&buf, "jobcache_evictions_total", "Total job cache evictions", cacheEvictionsTotal.Load())
	writeCounter(&buf, "provider_fetch_total", "Total upstream provider fetches", providerFetchTotal.Load())
	writeCounter(&buf, "provider_fetch_failed_total", "Total failed upstream provider fetches", providerFetchFailedTotal.Load())
	writeHistogram(&buf, "provider_fetch_duration_ms", "Upstream provider fetch duration in milliseconds", providerFetchDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
