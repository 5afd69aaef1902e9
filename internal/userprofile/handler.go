package userprofile

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"careercompass-backend/internal/jobs"
	"careercompass-backend/internal/profile"
	"careercompass-backend/internal/shared/server/middleware"
	"careercompass-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/user-profile/:userId", h.get)
	rg.PUT("/user-profile", h.upsert)
}

type profileResponse struct {
	UserExists         bool                  `json:"user_exists"`
	UserProfile        *UserProfile          `json:"user_profile"`
	JobRecommendations []jobs.Recommendation `json:"job_recommendations"`
	CVRecordID         string                `json:"cv_record_id,omitempty"`
	LastUpdated        *time.Time            `json:"last_updated,omitempty"`
	Message            string                `json:"message"`
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("userId")

	stored, err := h.Svc.Get(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.JSON(c, http.StatusOK, profileResponse{
				UserExists: false,
				Message:    "no profile found for user",
			})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch profile", nil)
		}
		return
	}

	resp := profileResponse{
		UserExists:  true,
		UserProfile: &stored,
		CVRecordID:  stored.CVRecordID,
		Message:     "profile found",
	}
	if !stored.UpdatedAt.IsZero() {
		at := stored.UpdatedAt
		resp.LastUpdated = &at
	}
	// Attach cached recommendations when the slot is still fresh for the
	// stored profile; a stale or missing slot just means an empty list here.
	if cached, _, ok := h.Svc.Cache.Get(c.Request.Context(), userID, stored.Matching()); ok {
		resp.JobRecommendations = cached
	} else {
		resp.JobRecommendations = []jobs.Recommendation{}
	}

	respond.JSON(c, http.StatusOK, resp)
}

type upsertRequest struct {
	Skills        []string `json:"skills"`
	Experience    string   `json:"experience"`
	LastJobTitles []string `json:"lastJobTitles"`
	Location      string   `json:"location"`
	CVRecordID    string   `json:"cvRecordId"`
}

func (h *Handler) upsert(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req upsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	p := profile.Profile{
		Skills:        req.Skills,
		Experience:    req.Experience,
		LastJobTitles: req.LastJobTitles,
		Location:      req.Location,
	}
	stored, err := h.Svc.Upsert(c.Request.Context(), userID, p, req.CVRecordID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save profile", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, stored)
}
