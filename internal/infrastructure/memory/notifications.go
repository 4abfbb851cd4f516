package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/chirp-api/internal/domain"
)

type entry struct {
	n   domain.Notification
	seq uint64
}

// NotificationRepo is an in-memory notification table indexed by id.
// A single RWMutex serializes writers, so two concurrent mark operations
// can no longer overwrite each other's result.
type NotificationRepo struct {
	mu      sync.RWMutex
	byID    map[string]*entry
	nextSeq uint64
}

func NewNotificationRepo(seed ...domain.Notification) *NotificationRepo {
	r := &NotificationRepo{byID: make(map[string]*entry, len(seed))}
	// Seed is given newest-first, as it would be displayed; insert oldest first
	// so insertion order matches creation order.
	for i := len(seed) - 1; i >= 0; i-- {
		r.insert(seed[i])
	}
	return r
}

func (r *NotificationRepo) insert(n domain.Notification) {
	r.nextSeq++
	r.byID[n.ID] = &entry{n: n.Clone(), seq: r.nextSeq}
}

func (r *NotificationRepo) Put(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[n.ID]; ok {
		return fmt.Errorf("notification %s already exists: %w", n.ID, domain.ErrConflict)
	}
	r.insert(*n)
	return nil
}

func (r *NotificationRepo) Get(_ context.Context, notificationID string) (*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[notificationID]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	n := e.n.Clone()
	return &n, nil
}

// ListByUser returns the user's notifications newest first. Equal timestamps
// fall back to insertion order, most recent insert first.
func (r *NotificationRepo) ListByUser(_ context.Context, userID string) ([]domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(userID), nil
}

func (r *NotificationRepo) listLocked(userID string) []domain.Notification {
	matched := make([]*entry, 0)
	for _, e := range r.byID {
		if e.n.UserID == userID {
			matched = append(matched, e)
		}
	}
	slices.SortFunc(matched, func(a, b *entry) int {
		if c := b.n.Timestamp.Compare(a.n.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})
	out := make([]domain.Notification, len(matched))
	for i, e := range matched {
		out[i] = e.n.Clone()
	}
	return out
}

func (r *NotificationRepo) MarkAsRead(_ context.Context, notificationID string) (*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.byID[notificationID]
	if !ok {
		return nil, fmt.Errorf("notification %s: %w", notificationID, domain.ErrNotFound)
	}
	e.n.Read = true
	n := e.n.Clone()
	return &n, nil
}

// MarkAllAsRead flags every notification of userID as read and returns them
// in listing order. A user with no notifications yields an empty slice.
func (r *NotificationRepo) MarkAllAsRead(_ context.Context, userID string) ([]domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byID {
		if e.n.UserID == userID {
			e.n.Read = true
		}
	}
	return r.listLocked(userID), nil
}

// Len reports the total number of stored notifications across all users.
func (r *NotificationRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
