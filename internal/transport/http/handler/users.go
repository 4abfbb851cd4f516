package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/chirp-api/internal/application/notification"
	"github.com/chirp-api/internal/domain"
)

type userLookup interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
}

// UserHandler exposes the demo identity.
type UserHandler struct {
	svc   notification.Service
	users userLookup
}

// NewUserHandler builds the handler. users may be nil, in which case only the
// id of the current user is known.
func NewUserHandler(svc notification.Service, users userLookup) *UserHandler {
	return &UserHandler{svc: svc, users: users}
}

// Current returns the demo user's directory entry, or a bare user carrying only
// the id when the directory has none.
func (h *UserHandler) Current(w http.ResponseWriter, r *http.Request) {
	userID := h.svc.CurrentUserID()
	if h.users == nil {
		writeJSON(w, http.StatusOK, domain.User{ID: userID})
		return
	}
	u, err := h.users.Get(r.Context(), userID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, u)
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusOK, domain.User{ID: userID})
	default:
		slog.ErrorContext(r.Context(), "error fetching current user", "user_id", userID, "err", err)
		writeError(w, http.StatusInternalServerError, "failed to load current user")
	}
}
