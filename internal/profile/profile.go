package profile

// Profile holds the subset of a user's profile that drives job matching.
// Only these fields feed the fingerprint; cosmetic profile fields (name,
// picture, contact details) never invalidate cached recommendations.
type Profile struct {
	Skills        []string `json:"skills"`
	Experience    string   `json:"experience"`
	LastJobTitles []string `json:"lastJobTitles"`
	Location      string   `json:"location,omitempty"`
}

// IsEmpty reports whether the profile carries no matching signal at all.
func (p Profile) IsEmpty() bool {
	return len(p.Skills) == 0 && p.Experience == "" && len(p.LastJobTitles) == 0 && p.Location == ""
}
