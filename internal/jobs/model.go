package jobs

// Recommendation is a single job listing candidate returned by the upstream
// matching provider. The JSON field names match the provider contract and are
// passed through to the UI unchanged; `is_real_job` and `match_score` keep
// their snake_case wire names for frontend compatibility.
type Recommendation struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Country     string `json:"country"`
	Salary      string `json:"salary,omitempty"`
	Description string `json:"description"`
	ApplyURL    string `json:"applyUrl"`
	Source      string `json:"source"`
	PostedDate  string `json:"postedDate,omitempty"`
	DaysAgo     int    `json:"daysAgo,omitempty"`
	IsRealJob   *bool  `json:"is_real_job,omitempty"`
	MatchScore  *int   `json:"match_score,omitempty"`
}
