package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"careercompass-backend/internal/recommend"
	"careercompass-backend/internal/shared/config"
	"careercompass-backend/internal/shared/metrics"
	"careercompass-backend/internal/shared/server/middleware"
	"careercompass-backend/internal/shared/server/respond"
	"careercompass-backend/internal/userprofile"
)

// Deps carries the handlers the router wires up.
type Deps struct {
	Recommend *recommend.Handler
	Profiles  *userprofile.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(rateLimitConfig()),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	deps.Recommend.RegisterRoutes(api)
	deps.Profiles.RegisterRoutes(api)
	if cfg.Env == "dev" || cfg.Env == "local" {
		deps.Recommend.RegisterDevRoutes(api)
	}

	return r
}

// Forced refreshes hit the upstream provider every time, so they get a much
// tighter rule than plain reads, which usually land on the cache.
func rateLimitConfig() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/job-recommendations/refresh" {
				return "REFRESH"
			}
			return "DEFAULT"
		},
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: 10, Burst: 30},
			"REFRESH": {Rate: 0.1, Burst: 3},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
