// Package draft holds the client-side invitation editing state: one
// mutable record per editing session plus the save/load plumbing
// around it.
package draft

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/web/api"
	"github.com/toyxona/toycard/web/localstore"
)

// ErrBusy is returned when a save is requested while another save is
// still in flight.
var ErrBusy = errors.New("save already in progress")

// Store owns the invitation being edited. Each editing session creates
// its own Store; there is no shared singleton, so two concurrent
// sessions never clobber each other's draft.
type Store struct {
	client *api.Client
	local  localstore.KV
	logger *slog.Logger

	mu      sync.Mutex
	draft   *models.Invitation
	busy    bool
	lastErr error
}

// NewStore creates an editing session with a fresh default draft.
func NewStore(client *api.Client, local localstore.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		local:  local,
		logger: logger,
		draft:  models.NewDraft(),
	}
}

// Draft returns a copy of the current draft.
func (s *Store) Draft() models.Invitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.draft
}

// Busy reports whether a save is currently in flight.
func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// LastError returns the most recent save or load failure. The slot
// holds one error; each new attempt overwrites it.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// UpdateFields merges every non-zero field of partial into the draft.
// No validation happens here; wizard steps validate before advancing.
func (s *Store) UpdateFields(partial models.Invitation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft.Merge(partial)
}

// ResetToDefaults discards the draft and starts over.
func (s *Store) ResetToDefaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = models.NewDraft()
	s.lastErr = nil
}

// Save persists the draft and returns the identifier assigned by the
// backend. When override is non-nil it is saved instead of the session
// draft (the viewer uses this for whole-record updates). Only one save
// runs at a time; a second call while busy fails fast with ErrBusy.
func (s *Store) Save(ctx context.Context, override *models.Invitation) (*api.SaveResult, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	record := *s.draft
	if override != nil {
		record = *override
	}
	s.mu.Unlock()

	result, err := s.client.SaveInvitation(ctx, &record)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	s.lastErr = err
	if err != nil {
		return nil, err
	}

	// Adopt the assigned identity so the next save is an update.
	if override == nil {
		s.draft.ID = result.ID
	}
	return result, nil
}

// LoadByIdentifier fetches a stored invitation and replaces the draft
// with it.
func (s *Store) LoadByIdentifier(ctx context.Context, id string) (*models.Invitation, error) {
	if id == "" {
		return nil, errors.New("invitation identifier is empty")
	}

	inv, err := s.client.GetInvitation(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	if err != nil {
		return nil, fmt.Errorf("failed to load invitation %s: %w", id, err)
	}

	inv.ID = id
	s.draft = inv
	copied := *inv
	return &copied, nil
}

// RememberReceivedInvitation records an invitation the user opened via
// a share link. Remembering the same identifier twice is a no-op.
func (s *Store) RememberReceivedInvitation(ctx context.Context, id string) error {
	if id == "" {
		return errors.New("invitation identifier is empty")
	}

	if err := s.local.AppendUnique(ctx, localstore.KeyReceivedInvitations, id); err != nil {
		return fmt.Errorf("failed to remember invitation: %w", err)
	}

	// Best-effort server-side copy; the local list is authoritative for
	// the device.
	if err := s.client.RememberReceived(ctx, id); err != nil {
		s.logger.Debug("failed to sync received invitation", "error", err, "invitation_id", id)
	}
	return nil
}

// Upload pushes portrait bytes to a pre-signed target returned by Save.
func (s *Store) Upload(ctx context.Context, targetURL string, data []byte) error {
	return s.client.UploadImage(ctx, targetURL, data)
}

// ReceivedInvitations lists the identifiers remembered on this device.
func (s *Store) ReceivedInvitations(ctx context.Context) ([]string, error) {
	return s.local.List(ctx, localstore.KeyReceivedInvitations)
}
