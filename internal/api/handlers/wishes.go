package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/internal/notify"
	"github.com/toyxona/toycard/internal/store"
)

// WishesHandler handles guest wish HTTP requests.
type WishesHandler struct {
	store    store.Store
	notifier *notify.Notifier
	logger   *slog.Logger

	upgrader websocket.Upgrader

	// Live feed subscribers, keyed by invitation ID.
	mu   sync.Mutex
	subs map[string]map[*websocket.Conn]struct{}
}

// NewWishesHandler creates a new wishes handler.
func NewWishesHandler(st store.Store, notifier *notify.Notifier, logger *slog.Logger) *WishesHandler {
	return &WishesHandler{
		store:    st,
		notifier: notifier,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cards are shared publicly; the feed is read-only.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		subs: make(map[string]map[*websocket.Conn]struct{}),
	}
}

// List handles GET /invitations/{invitationID}/wishes (public).
func (h *WishesHandler) List(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "invitationID")
	if invitationID == "" {
		WriteBadRequest(w, "invitation ID required")
		return
	}

	wishes, err := h.store.Wishes().ListByInvitation(r.Context(), invitationID)
	if err != nil {
		h.logger.Error("failed to list wishes", "error", err, "invitation_id", invitationID)
		WriteInternalError(w, "failed to list wishes")
		return
	}
	if wishes == nil {
		wishes = []*models.Wish{}
	}

	WriteJSON(w, http.StatusOK, wishes)
}

// CreateWishRequest represents the request body for posting a wish.
type CreateWishRequest struct {
	InvitationID string `json:"invitation_id"`
	Author       string `json:"author"`
	Text         string `json:"text"`
}

// Create handles POST /wishes (public - guests are not authenticated).
func (h *WishesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	req.Author = strings.TrimSpace(req.Author)
	req.Text = strings.TrimSpace(req.Text)

	if req.InvitationID == "" {
		WriteBadRequest(w, "invitation_id is required")
		return
	}
	if req.Author == "" {
		WriteBadRequest(w, "author is required")
		return
	}
	if req.Text == "" {
		WriteBadRequest(w, "text is required")
		return
	}

	inv, err := h.store.Invitations().Get(r.Context(), req.InvitationID)
	if err != nil {
		h.logger.Error("failed to get invitation for wish", "error", err)
		WriteInternalError(w, "failed to create wish")
		return
	}
	if inv == nil {
		WriteNotFound(w, "invitation not found")
		return
	}

	wish := &models.Wish{
		InvitationID: req.InvitationID,
		Author:       req.Author,
		Text:         req.Text,
	}
	if err := h.store.Wishes().Create(r.Context(), wish); err != nil {
		h.logger.Error("failed to create wish", "error", err)
		WriteInternalError(w, "failed to create wish")
		return
	}

	h.broadcast(wish)

	if owner, err := h.store.Users().GetByID(r.Context(), inv.OwnerID); err == nil {
		h.notifier.WishReceived(owner, wish)
	}

	WriteJSON(w, http.StatusCreated, wish)
}

// Stream handles GET /invitations/{invitationID}/wishes/ws - a live
// wish feed over websocket. Each new wish for the invitation is pushed
// as one JSON message.
func (h *WishesHandler) Stream(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "invitationID")
	if invitationID == "" {
		WriteBadRequest(w, "invitation ID required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	h.subscribe(invitationID, conn)
	defer h.unsubscribe(invitationID, conn)

	// Drain the connection until the client goes away; the feed is
	// push-only.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *WishesHandler) subscribe(invitationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[invitationID] == nil {
		h.subs[invitationID] = make(map[*websocket.Conn]struct{})
	}
	h.subs[invitationID][conn] = struct{}{}
}

func (h *WishesHandler) unsubscribe(invitationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs[invitationID], conn)
	if len(h.subs[invitationID]) == 0 {
		delete(h.subs, invitationID)
	}
	conn.Close()
}

func (h *WishesHandler) broadcast(wish *models.Wish) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.subs[wish.InvitationID] {
		if err := conn.WriteJSON(wish); err != nil {
			h.logger.Debug("dropping wish feed subscriber", "error", err)
			delete(h.subs[wish.InvitationID], conn)
			conn.Close()
		}
	}
}
