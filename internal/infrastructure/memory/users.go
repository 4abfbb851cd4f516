package memory

import (
	"context"
	"fmt"

	"github.com/chirp-api/internal/domain"
)

// UserRepo is a fixed in-memory user directory. It is filled once at
// construction and never written afterwards, so reads need no locking.
type UserRepo struct {
	byID map[string]domain.User
}

func NewUserRepo(users ...domain.User) *UserRepo {
	r := &UserRepo{byID: make(map[string]domain.User, len(users))}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *UserRepo) Get(_ context.Context, userID string) (*domain.User, error) {
	u, ok := r.byID[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	return &u, nil
}
