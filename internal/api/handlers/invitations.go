package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/toyxona/toycard/internal/api/middleware"
	"github.com/toyxona/toycard/internal/card"
	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/internal/store"
	"github.com/toyxona/toycard/internal/uploads"
)

// InvitationsHandler handles invitation HTTP requests.
type InvitationsHandler struct {
	store    store.Store
	signer   *uploads.Signer
	registry *card.Registry
	logger   *slog.Logger
}

// NewInvitationsHandler creates a new invitations handler.
func NewInvitationsHandler(st store.Store, signer *uploads.Signer, registry *card.Registry, logger *slog.Logger) *InvitationsHandler {
	return &InvitationsHandler{
		store:    st,
		signer:   signer,
		registry: registry,
		logger:   logger,
	}
}

// InvitationWire is the invitation representation on the wire: the
// date and time travel as one combined timestamp, and the background
// music travels as its wire enumeration member.
type InvitationWire struct {
	ID              string `json:"id,omitempty"`
	GroomName       string `json:"groom_name"`
	GroomLastname   string `json:"groom_lastname"`
	BrideName       string `json:"bride_name"`
	BrideLastname   string `json:"bride_lastname"`
	Date            string `json:"date"`
	Location        string `json:"location"`
	Hall            string `json:"hall"`
	Text            string `json:"text"`
	BackgroundMusic string `json:"background_music"`
	MusicID         string `json:"music_id,omitempty"`
	Template        string `json:"template"`
	GroomPictureURL string `json:"groom_picture_url,omitempty"`
	BridePictureURL string `json:"bride_picture_url,omitempty"`
}

// InitInvitationRequest represents the request body for creating or
// updating an invitation.
type InitInvitationRequest struct {
	// InvitationID selects an existing record to update. Absent for
	// first saves; the backend assigns identity.
	InvitationID string `json:"invitation_id,omitempty"`

	GroomName     string `json:"groom_name"`
	GroomLastname string `json:"groom_lastname"`
	BrideName     string `json:"bride_name"`
	BrideLastname string `json:"bride_lastname"`
	// Date is the combined timestamp (date + time composed in UTC).
	Date     string `json:"date"`
	Location string `json:"location"`
	Hall     string `json:"hall"`
	Text     string `json:"text"`
	// Message is a legacy alias for Text still sent by older clients.
	Message string `json:"message,omitempty"`
	// BackgroundMusic and Template are wire enumeration members; any
	// unrecognized value falls back to the first member.
	BackgroundMusic string `json:"background_music"`
	Template        string `json:"template"`
	// MusicID and TemplateID optionally carry the full catalog
	// identifiers so the selected variants survive the two-member wire
	// enumerations.
	MusicID    string `json:"music_id,omitempty"`
	TemplateID string `json:"template_id,omitempty"`
}

// InitInvitationResponse carries the assigned identifier and the
// pre-signed portrait upload targets.
type InitInvitationResponse struct {
	ID                 string `json:"id"`
	GroomPictureUpload string `json:"groom_picture_upload_url,omitempty"`
	BridePictureUpload string `json:"bride_picture_upload_url,omitempty"`
}

// Init handles POST /v1/invitations/init - creates or updates an invitation.
func (h *InvitationsHandler) Init(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	var req InitInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "invalid request body")
		return
	}

	text := req.Text
	if text == "" {
		text = req.Message
	}

	date, clock := models.SplitDateTime(req.Date)

	inv := &models.Invitation{
		OwnerID:         userID,
		GroomName:       req.GroomName,
		GroomLastname:   req.GroomLastname,
		BrideName:       req.BrideName,
		BrideLastname:   req.BrideLastname,
		Date:            date,
		Time:            clock,
		Location:        req.Location,
		Hall:            req.Hall,
		Text:            text,
		BackgroundMusic: musicFromWire(req.MusicID, req.BackgroundMusic),
		Template:        h.templateFromWire(req.TemplateID, req.Template),
	}

	if req.InvitationID != "" {
		existing, err := h.store.Invitations().Get(r.Context(), req.InvitationID)
		if err != nil {
			h.logger.Error("failed to load invitation for update", "error", err)
			WriteInternalError(w, "failed to save invitation")
			return
		}
		if existing == nil || existing.OwnerID != userID {
			WriteNotFound(w, "invitation not found")
			return
		}

		inv.ID = existing.ID
		inv.CreatedAt = existing.CreatedAt
		if err := h.store.Invitations().Update(r.Context(), inv); err != nil {
			h.logger.Error("failed to update invitation", "error", err, "invitation_id", inv.ID)
			WriteInternalError(w, "failed to save invitation")
			return
		}
	} else {
		if err := h.store.Invitations().Create(r.Context(), inv); err != nil {
			h.logger.Error("failed to create invitation", "error", err)
			WriteInternalError(w, "failed to save invitation")
			return
		}
	}

	resp := &InitInvitationResponse{ID: inv.ID}
	if h.signer != nil {
		for _, target := range h.signer.Targets(inv.ID) {
			switch target.Slot {
			case uploads.SlotGroom:
				resp.GroomPictureUpload = target.URL
			case uploads.SlotBride:
				resp.BridePictureUpload = target.URL
			}
		}
	}

	WriteJSON(w, http.StatusCreated, resp)
}

// musicFromWire picks the stored soundtrack: the explicit track
// identifier when it is known, otherwise a representative of the wire
// enumeration member.
func musicFromWire(musicID, wire string) string {
	if models.IsMusicTrack(musicID) {
		return musicID
	}
	return models.MusicFromWire(wire)
}

// templateFromWire picks the stored catalog identifier: the explicit
// catalog id when it is known, otherwise a representative of the wire
// enumeration member.
func (h *InvitationsHandler) templateFromWire(templateID, wire string) string {
	if templateID != "" {
		if cfg := h.registry.Resolve(templateID); cfg.ID == templateID {
			return templateID
		}
	}
	if wire == models.WireTemplateModern {
		return "floral_breeze"
	}
	return card.DefaultTemplateID
}

// Get handles GET /invitations/{id} - fetches one invitation (public).
func (h *InvitationsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invitationID")
	if id == "" {
		WriteBadRequest(w, "invitation ID required")
		return
	}

	inv, err := h.store.Invitations().Get(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get invitation", "error", err, "invitation_id", id)
		WriteInternalError(w, "failed to get invitation")
		return
	}
	if inv == nil {
		WriteNotFound(w, "invitation not found")
		return
	}

	WriteJSON(w, http.StatusOK, toWire(inv))
}

// SelfListResponse is the paginated wrapper for owner listings.
type SelfListResponse struct {
	Content []*InvitationWire `json:"content"`
	Total   int               `json:"total"`
}

// ListSelf handles GET /v1/invitations/self - lists the caller's invitations.
func (h *InvitationsHandler) ListSelf(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	invitations, err := h.store.Invitations().ListByOwner(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list invitations", "error", err)
		WriteInternalError(w, "failed to list invitations")
		return
	}

	content := make([]*InvitationWire, 0, len(invitations))
	for _, inv := range invitations {
		content = append(content, toWire(inv))
	}

	WriteJSON(w, http.StatusOK, &SelfListResponse{Content: content, Total: len(content)})
}

// CountSelf handles GET /v1/invitations/self/count.
func (h *InvitationsHandler) CountSelf(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteUnauthorized(w, "unauthorized")
		return
	}

	count, err := h.store.Invitations().CountByOwner(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to count invitations", "error", err)
		WriteInternalError(w, "failed to count invitations")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}

// Card handles GET /invitations/{id}/card - serves the rendered HTML
// card (public, this is what share links resolve to). An optional
// ?template= query overrides the stored template for previews.
func (h *InvitationsHandler) Card(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "invitationID")
	if id == "" {
		WriteBadRequest(w, "invitation ID required")
		return
	}

	inv, err := h.store.Invitations().Get(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get invitation", "error", err, "invitation_id", id)
		WriteInternalError(w, "failed to get invitation")
		return
	}
	if inv == nil {
		WriteNotFound(w, "invitation not found")
		return
	}

	templateID := inv.Template
	if override := r.URL.Query().Get("template"); override != "" {
		templateID = override
	}

	rendered, err := card.RenderWithRegistry(card.Data{
		GroomName:       inv.GroomName,
		GroomLastname:   inv.GroomLastname,
		BrideName:       inv.BrideName,
		BrideLastname:   inv.BrideLastname,
		Date:            inv.Date,
		Time:            inv.Time,
		Location:        inv.Location,
		Hall:            inv.Hall,
		Text:            inv.Text,
		GroomPictureURL: inv.GroomPictureURL,
		BridePictureURL: inv.BridePictureURL,
	}, templateID, h.registry)
	if err != nil {
		h.logger.Error("failed to render card", "error", err, "invitation_id", id)
		WriteInternalError(w, "failed to render card")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := rendered.Capture(w); err != nil {
		h.logger.Error("failed to write card", "error", err, "invitation_id", id)
	}
}

// Templates handles GET /templates - returns the template catalog.
func (h *InvitationsHandler) Templates(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.registry.List())
}

func toWire(inv *models.Invitation) *InvitationWire {
	return &InvitationWire{
		ID:              inv.ID,
		GroomName:       inv.GroomName,
		GroomLastname:   inv.GroomLastname,
		BrideName:       inv.BrideName,
		BrideLastname:   inv.BrideLastname,
		Date:            models.CombineDateTime(inv.Date, inv.Time),
		Location:        inv.Location,
		Hall:            inv.Hall,
		Text:            inv.Text,
		BackgroundMusic: models.NormalizeMusic(inv.BackgroundMusic),
		MusicID:         inv.BackgroundMusic,
		Template:        inv.Template,
		GroomPictureURL: inv.GroomPictureURL,
		BridePictureURL: inv.BridePictureURL,
	}
}
