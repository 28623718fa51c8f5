package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/toyxona/toycard/internal/store"
)

// UsersHandler handles user HTTP requests.
type UsersHandler struct {
	store  store.Store
	logger *slog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(st store.Store, logger *slog.Logger) *UsersHandler {
	return &UsersHandler{
		store:  st,
		logger: logger,
	}
}

// GetByTelegramID handles GET /v1/users/by-telegram-id/{telegramID}.
func (h *UsersHandler) GetByTelegramID(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "telegramID")
	telegramID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteBadRequest(w, "invalid telegram ID")
		return
	}

	user, err := h.store.Users().GetByTelegramID(r.Context(), telegramID)
	if err != nil {
		h.logger.Error("failed to get user", "error", err, "telegram_id", telegramID)
		WriteInternalError(w, "failed to get user")
		return
	}
	if user == nil {
		WriteNotFound(w, "user not found")
		return
	}

	WriteJSON(w, http.StatusOK, user)
}
