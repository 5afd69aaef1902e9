package userprofile

import (
	"time"

	"careercompass-backend/internal/profile"
)

// UserProfile is the persisted matching profile for one user, extracted from
// their most recently parsed CV.
type UserProfile struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Skills        []string  `json:"skills"`
	Experience    string    `json:"experience"`
	LastJobTitles []string  `json:"lastJobTitles"`
	Location      string    `json:"location,omitempty"`
	CVRecordID    string    `json:"cvRecordId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Matching returns the fingerprint-relevant subset of the profile.
func (u UserProfile) Matching() profile.Profile {
	return profile.Profile{
		Skills:        u.Skills,
		Experience:    u.Experience,
		LastJobTitles: u.LastJobTitles,
		Location:      u.Location,
	}
}
