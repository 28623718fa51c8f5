package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/toyxona/toycard/internal/api/middleware"
	"github.com/toyxona/toycard/internal/store"
)

// PreferencesHandler handles per-user interface preference requests.
type PreferencesHandler struct {
	store  store.Store
	logger *slog.Logger
}

// NewPreferencesHandler creates a new preferences handler.
func NewPreferencesHandler(st store.Store, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		store:  st,
		logger: logger,
	}
}

// Get handles GET /v1/preferences - returns every preference stored
// for the caller.
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	prefs, err := h.store.Preferences().GetAll(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to load preferences", "error", err)
		WriteInternalError(w, "failed to load preferences")
		return
	}
	if prefs == nil {
		prefs = map[string]string{}
	}

	WriteJSON(w, http.StatusOK, prefs)
}

// Put handles PUT /v1/preferences - stores the given key-value pairs.
// All entries are applied within one transaction, so a partial write
// never becomes visible.
func (h *PreferencesHandler) Put(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}
	if len(req) == 0 {
		WriteBadRequest(w, "no preferences provided")
		return
	}
	for key := range req {
		if key == "" {
			WriteBadRequest(w, "preference key must not be empty")
			return
		}
	}

	err := h.store.WithTx(r.Context(), func(s store.Store) error {
		for key, value := range req {
			if err := s.Preferences().Set(r.Context(), userID, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		h.logger.Error("failed to store preferences", "error", err)
		WriteInternalError(w, "failed to store preferences")
		return
	}

	WriteJSON(w, http.StatusOK, req)
}
