package recommend

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"careercompass-backend/internal/profile"
	"careercompass-backend/internal/shared/metrics"
	"careercompass-backend/internal/shared/server/middleware"
	"careercompass-backend/internal/shared/server/respond"
)

// ProfileSource resolves the stored matching profile for a user, used by the
// refresh action where the request carries no profile of its own.
type ProfileSource interface {
	MatchingProfile(ctx context.Context, userID string) (profile.Profile, error)
}

// ErrNoStoredProfile is returned by ProfileSource implementations when the
// user has no saved profile to refresh against.
var ErrNoStoredProfile = errors.New("no stored profile")

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	Profiles ProfileSource
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, profiles ProfileSource) *Handler {
	return &Handler{Svc: svc, Profiles: profiles}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/job-recommendations", h.recommendations)
	rg.POST("/job-recommendations/refresh", h.refresh)
	rg.DELETE("/job-recommendations/cache", h.invalidate)
}

// RegisterDevRoutes attaches dev-only routes.
func (h *Handler) RegisterDevRoutes(rg *gin.RouterGroup) {
	rg.GET("/job-recommendations/cache-stats", h.cacheStats)
}

func (h *Handler) recommendations(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req recommendationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	if len(req.Skills) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills are required", nil)
		return
	}

	p := profile.Profile{
		Skills:        req.Skills,
		Experience:    req.Experience,
		LastJobTitles: req.LastTwoJobs,
		Location:      req.Location,
	}

	res, err := h.Svc.Recommendations(c.Request.Context(), userID, p, req.ForceRefresh)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}
	if res.Cached {
		c.Set("cacheResult", "hit")
	} else {
		c.Set("cacheResult", "miss")
	}
	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) refresh(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	p, err := h.Profiles.MatchingProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNoStoredProfile) {
			respond.Error(c, http.StatusNotFound, "not_found", "no saved profile to refresh", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	res, err := h.Svc.Refresh(c.Request.Context(), userID, p)
	if err != nil {
		h.respondFetchError(c, err)
		return
	}
	c.Set("cacheResult", "refresh")
	respond.JSON(c, http.StatusOK, toResponse(res))
}

func (h *Handler) invalidate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	h.Svc.Cache.Invalidate(c.Request.Context(), userID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) cacheStats(c *gin.Context) {
	respond.JSON(c, http.StatusOK, metrics.CacheSnapshot())
}

func (h *Handler) respondFetchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	case errors.Is(err, ErrProviderUnavailable):
		respond.Error(c, http.StatusBadGateway, "provider_error", "job provider is unavailable, try again later", nil)
	default:
		respond.Error(c, http.StatusBadGateway, "provider_error", "failed to fetch job recommendations", nil)
	}
}
