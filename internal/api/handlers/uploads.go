package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/toyxona/toycard/internal/store"
	"github.com/toyxona/toycard/internal/uploads"
)

// UploadsHandler accepts pre-signed portrait uploads and serves the
// stored media.
type UploadsHandler struct {
	store  store.Store
	signer *uploads.Signer
	blobs  *uploads.Store
	logger *slog.Logger
}

// NewUploadsHandler creates a new uploads handler.
func NewUploadsHandler(st store.Store, signer *uploads.Signer, blobs *uploads.Store, logger *slog.Logger) *UploadsHandler {
	return &UploadsHandler{
		store:  st,
		signer: signer,
		blobs:  blobs,
		logger: logger,
	}
}

// Put handles PUT /uploads/{token} - accepts raw image bytes at a
// pre-signed target. The token is self-authorizing; no bearer token is
// required.
func (h *UploadsHandler) Put(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	claim, err := h.signer.Verify(token)
	if err != nil {
		if err == uploads.ErrTokenExpired {
			WriteError(w, http.StatusForbidden, "token_expired", "upload target has expired")
			return
		}
		WriteError(w, http.StatusForbidden, "token_invalid", "upload target is invalid")
		return
	}

	if err := h.blobs.Put(claim.InvitationID, claim.Slot, r.Body); err != nil {
		h.logger.Error("failed to store upload", "error", err, "invitation_id", claim.InvitationID)
		WriteInternalError(w, "failed to store upload")
		return
	}

	publicURL := h.signer.PublicURL(claim.InvitationID, claim.Slot)
	if err := h.store.Invitations().SetPicture(r.Context(), claim.InvitationID, claim.Slot, publicURL); err != nil {
		h.logger.Error("failed to record portrait URL", "error", err, "invitation_id", claim.InvitationID)
		WriteInternalError(w, "failed to record upload")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"url": publicURL})
}

// Serve handles GET /media/{invitationID}/{slot} - serves a stored
// portrait (public).
func (h *UploadsHandler) Serve(w http.ResponseWriter, r *http.Request) {
	invitationID := chi.URLParam(r, "invitationID")
	slot := chi.URLParam(r, "slot")

	path, err := h.blobs.Path(invitationID, slot)
	if err != nil {
		WriteNotFound(w, "portrait not found")
		return
	}

	http.ServeFile(w, r, path)
}
