package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/toyxona/toycard/internal/api/middleware"
	"github.com/toyxona/toycard/internal/store"
)

// ReceivedHandler manages the caller's received-invitations list.
type ReceivedHandler struct {
	store  store.Store
	logger *slog.Logger
}

// NewReceivedHandler creates a new received-invitations handler.
func NewReceivedHandler(st store.Store, logger *slog.Logger) *ReceivedHandler {
	return &ReceivedHandler{
		store:  st,
		logger: logger,
	}
}

// AppendReceivedRequest represents the request body for remembering a
// received invitation.
type AppendReceivedRequest struct {
	InvitationID string `json:"invitation_id"`
}

// Append handles POST /v1/received - remembers a received invitation.
// Appending the same identifier twice is a no-op.
func (h *ReceivedHandler) Append(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	var req AppendReceivedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if req.InvitationID == "" {
		WriteBadRequest(w, "invitation_id is required")
		return
	}

	if err := h.store.Received().Append(r.Context(), userID, req.InvitationID); err != nil {
		h.logger.Error("failed to append received invitation", "error", err)
		WriteInternalError(w, "failed to remember invitation")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// List handles GET /v1/received - lists remembered invitation IDs.
func (h *ReceivedHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	ids, err := h.store.Received().List(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list received invitations", "error", err)
		WriteInternalError(w, "failed to list received invitations")
		return
	}
	if ids == nil {
		ids = []string{}
	}

	WriteJSON(w, http.StatusOK, map[string][]string{"invitation_ids": ids})
}
