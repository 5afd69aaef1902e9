package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port               string
	Env                string
	CORSAllowOrigin    []string
	DatabaseURL        string
	RedisURL           string
	CacheBackend       string
	JobProviderURL     string
	JobProviderAPIKey  string
	JobCacheTTLMinutes int
	CacheSweepSpec     string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	backend := normalizeCacheBackend(getEnv("CACHE_BACKEND", "memory"))
	if backend == "redis" && os.Getenv("REDIS_URL") == "" {
		log.Printf("CACHE_BACKEND=redis but REDIS_URL is unset, falling back to memory")
		backend = "memory"
	}

	return Config{
		Port:               getEnv("PORT", "8080"),
		Env:                env,
		CORSAllowOrigin:    splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:        dbURL,
		RedisURL:           getEnv("REDIS_URL", ""),
		CacheBackend:       backend,
		JobProviderURL:     getEnv("JOB_PROVIDER_URL", ""),
		JobProviderAPIKey:  getEnv("JOB_PROVIDER_API_KEY", ""),
		JobCacheTTLMinutes: getEnvInt("JOB_CACHE_TTL_MINUTES", 30),
		CacheSweepSpec:     getEnv("CACHE_SWEEP_SPEC", "@every 10m"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("%s must be an integer, got %q; using %d", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeCacheBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "redis":
		return "redis"
	default:
		return "memory"
	}
}
