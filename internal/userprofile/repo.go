package userprofile

import "context"

var ErrNotFound = errNotFound{}

type errNotFound struct{}

func (errNotFound) Error() string { return "user profile not found" }

// Repo defines persistence operations for user profiles.
type Repo interface {
	Upsert(ctx context.Context, p UserProfile) error
	GetByUserID(ctx context.Context, userID string) (UserProfile, error)
}
