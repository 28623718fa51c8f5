// Package viewer implements the invitation viewing session: loading a
// card with its wishes, switching templates, exporting an image, and
// posting guest wishes.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/toyxona/toycard/internal/card"
	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/web/api"
	"github.com/toyxona/toycard/web/draft"
)

// ErrNotLoaded is returned by operations that need a loaded invitation.
var ErrNotLoaded = errors.New("no invitation loaded")

// Viewer drives one invitation viewing session.
type Viewer struct {
	client   *api.Client
	store    *draft.Store
	registry *card.Registry
	logger   *slog.Logger

	invitation *models.Invitation
	wishes     []api.Wish
	wishErr    error
}

// New creates a viewer. The registry may be nil, in which case the
// built-in template catalog is used.
func New(client *api.Client, store *draft.Store, registry *card.Registry, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Viewer{
		client:   client,
		store:    store,
		registry: registry,
		logger:   logger,
	}
}

// Invitation returns the loaded invitation, nil before Load.
func (v *Viewer) Invitation() *models.Invitation {
	return v.invitation
}

// Wishes returns the loaded wish list, newest first.
func (v *Viewer) Wishes() []api.Wish {
	return v.wishes
}

// WishError returns the wish fetch failure from the last Load, if any.
func (v *Viewer) WishError() error {
	return v.wishErr
}

// Load fetches the invitation and its wishes. The two fetches fail
// independently: a wish failure leaves the card fully viewable and is
// kept aside for the caller to surface.
func (v *Viewer) Load(ctx context.Context, id string) error {
	inv, err := v.store.LoadByIdentifier(ctx, id)
	if err != nil {
		return err
	}
	v.invitation = inv

	wishes, err := v.client.ListWishes(ctx, id)
	if err != nil {
		v.logger.Warn("failed to load wishes", "error", err, "invitation_id", id)
		v.wishErr = err
		v.wishes = nil
		return nil
	}
	v.wishErr = nil
	v.wishes = wishes
	return nil
}

// ChangeTemplate switches the card template and immediately persists
// the whole record. Every switch is a full save; there is no debounce.
func (v *Viewer) ChangeTemplate(ctx context.Context, templateID string) error {
	if v.invitation == nil {
		return ErrNotLoaded
	}

	previous := v.invitation.Template
	v.invitation.Template = templateID

	updated := *v.invitation
	if _, err := v.store.Save(ctx, &updated); err != nil {
		v.invitation.Template = previous
		return fmt.Errorf("failed to persist template change: %w", err)
	}
	return nil
}

// ExportImage renders the card into an external capture handle. A
// failed export never disturbs the viewing session; it is logged and
// swallowed.
func (v *Viewer) ExportImage(w io.Writer) {
	if v.invitation == nil {
		v.logger.Warn("image export requested before load")
		return
	}

	rendered, err := v.render()
	if err != nil {
		v.logger.Error("image export failed", "error", err, "invitation_id", v.invitation.ID)
		return
	}
	if err := rendered.Capture(w); err != nil {
		v.logger.Error("image export failed", "error", err, "invitation_id", v.invitation.ID)
	}
}

// SubmitWish validates and posts a guest wish, then prepends the
// server-confirmed record to the list. Validation failures never reach
// the network.
func (v *Viewer) SubmitWish(ctx context.Context, author, text string) (*api.Wish, error) {
	if v.invitation == nil {
		return nil, ErrNotLoaded
	}

	author = strings.TrimSpace(author)
	text = strings.TrimSpace(text)
	if author == "" {
		return nil, errors.New("author is required")
	}
	if text == "" {
		return nil, errors.New("text is required")
	}

	wish, err := v.client.PostWish(ctx, v.invitation.ID, author, text)
	if err != nil {
		return nil, fmt.Errorf("failed to post wish: %w", err)
	}

	v.wishes = append([]api.Wish{*wish}, v.wishes...)
	return wish, nil
}

func (v *Viewer) render() (*card.Card, error) {
	data := card.Data{
		GroomName:       v.invitation.GroomName,
		GroomLastname:   v.invitation.GroomLastname,
		BrideName:       v.invitation.BrideName,
		BrideLastname:   v.invitation.BrideLastname,
		Date:            v.invitation.Date,
		Time:            v.invitation.Time,
		Location:        v.invitation.Location,
		Hall:            v.invitation.Hall,
		Text:            v.invitation.Text,
		GroomPictureURL: v.invitation.GroomPictureURL,
		BridePictureURL: v.invitation.BridePictureURL,
	}
	reg := v.registry
	if reg == nil {
		reg = card.DefaultRegistry()
	}
	return card.RenderWithRegistry(data, v.invitation.Template, reg)
}
