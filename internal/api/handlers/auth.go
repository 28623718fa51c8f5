package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/toyxona/toycard/internal/auth"
	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/internal/store"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	store       store.Store
	authService *auth.Service
	botToken    string
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(st store.Store, authSvc *auth.Service, botToken string, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		store:       st,
		authService: authSvc,
		botToken:    botToken,
		logger:      logger,
	}
}

// AuthRequest represents the request body for the init-token exchange.
type AuthRequest struct {
	InitData string `json:"init_data"`
}

// AuthResponse carries the issued bearer token and the account it
// belongs to.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Exchange handles POST /auth - exchanges a platform-issued init token
// for a bearer token, creating the user account on first sight.
func (h *AuthHandler) Exchange(w http.ResponseWriter, r *http.Request) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	if req.InitData == "" {
		WriteBadRequest(w, "init_data is required")
		return
	}

	identity, err := auth.VerifyInitData(req.InitData, h.botToken)
	if err != nil {
		h.logger.Debug("init data verification failed", "error", err)
		WriteUnauthorized(w, "invalid init data")
		return
	}

	user, err := h.store.Users().UpsertByTelegramID(r.Context(), &models.User{
		TelegramID:  identity.ID,
		DisplayName: identity.DisplayName(),
		AvatarURL:   identity.PhotoURL,
	})
	if err != nil {
		h.logger.Error("failed to upsert user", "error", err)
		WriteInternalError(w, "failed to create user")
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.TelegramID)
	if err != nil {
		h.logger.Error("failed to generate token", "error", err)
		WriteInternalError(w, "failed to generate token")
		return
	}

	WriteJSON(w, http.StatusOK, &AuthResponse{Token: token, User: user})
}
