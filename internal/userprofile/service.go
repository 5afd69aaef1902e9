package userprofile

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"careercompass-backend/internal/jobcache"
	"careercompass-backend/internal/profile"
	"careercompass-backend/internal/recommend"
)

// ErrInvalidInput is returned when an upsert carries no usable profile data.
var ErrInvalidInput = errors.New("profile requires at least one skill")

// Service contains business logic for user profiles.
type Service struct {
	Repo  Repo
	Cache *jobcache.Store
}

// Upsert stores the user's matching profile and drops any cached job set for
// them, so the next recommendation read re-evaluates against the new profile.
func (s *Service) Upsert(ctx context.Context, userID string, p profile.Profile, cvRecordID string) (UserProfile, error) {
	if len(p.Skills) == 0 {
		return UserProfile{}, ErrInvalidInput
	}

	record := UserProfile{
		UserID:        userID,
		Skills:        p.Skills,
		Experience:    strings.TrimSpace(p.Experience),
		LastJobTitles: p.LastJobTitles,
		Location:      strings.TrimSpace(p.Location),
		CVRecordID:    strings.TrimSpace(cvRecordID),
	}

	existing, err := s.Repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		record.ID = existing.ID
		if record.CVRecordID == "" {
			record.CVRecordID = existing.CVRecordID
		}
	case errors.Is(err, ErrNotFound):
		record.ID = uuid.NewString()
	default:
		return UserProfile{}, err
	}

	if err := s.Repo.Upsert(ctx, record); err != nil {
		return UserProfile{}, err
	}

	s.Cache.Invalidate(ctx, userID)

	stored, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		return record, nil
	}
	return stored, nil
}

// Get returns the stored profile for a user.
func (s *Service) Get(ctx context.Context, userID string) (UserProfile, error) {
	return s.Repo.GetByUserID(ctx, userID)
}

// MatchingProfile implements recommend.ProfileSource.
func (s *Service) MatchingProfile(ctx context.Context, userID string) (profile.Profile, error) {
	stored, err := s.Repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return profile.Profile{}, recommend.ErrNoStoredProfile
		}
		return profile.Profile{}, err
	}
	return stored.Matching(), nil
}
