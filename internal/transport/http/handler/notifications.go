package handler

import (
	"encoding/json"
	"net/http"

	"github.com/chirp-api/internal/application/notification"
	"github.com/chirp-api/internal/domain"
	"github.com/go-chi/chi/v5"
)

// NotificationHandler handles notification endpoints. Response bodies are the
// service envelopes as-is; the status code mirrors their outcome.
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.List(r.Context(), chi.URLParam(r, "userID"))
	writeJSON(w, listStatus(resp), resp)
}

func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, itemStatus(resp), resp)
}

// Send creates a notification. An empty userId targets the current demo user.
func (h *NotificationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" {
		req.UserID = h.svc.CurrentUserID()
	}
	resp := h.svc.Send(r.Context(), req)
	status := http.StatusCreated
	if !resp.Success {
		status = http.StatusInternalServerError
	}
	writeJSON(w, status, resp)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.MarkAsRead(r.Context(), chi.URLParam(r, "id"))
	writeJSON(w, itemStatus(resp), resp)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	resp := h.svc.MarkAllAsRead(r.Context(), chi.URLParam(r, "userID"))
	writeJSON(w, listStatus(resp), resp)
}

func itemStatus(resp domain.NotificationResponse) int {
	switch {
	case resp.Success:
		return http.StatusOK
	case resp.Message == notification.MsgNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func listStatus(resp domain.NotificationsResponse) int {
	if resp.Success {
		return http.StatusOK
	}
	return http.StatusInternalServerError
}
