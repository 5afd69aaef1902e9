package userprofile

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]UserProfile
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{profiles: make(map[string]UserProfile)}
}

func (r *MemoryRepo) Upsert(ctx context.Context, p UserProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.profiles[p.UserID]
	now := time.Now().UTC()
	if !ok {
		p.CreatedAt = now
	} else {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	}
	p.UpdatedAt = now
	r.profiles[p.UserID] = p
	return nil
}

func (r *MemoryRepo) GetByUserID(ctx context.Context, userID string) (UserProfile, error) {
	if err := ctx.Err(); err != nil {
		return UserProfile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return UserProfile{}, ErrNotFound
	}
	return p, nil
}
