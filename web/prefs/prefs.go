// Package prefs keeps the user's interface preferences: the device
// store is authoritative, and values are mirrored to the account
// best-effort so a fresh device can pick them up.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/toyxona/toycard/web/api"
	"github.com/toyxona/toycard/web/localstore"
)

// syncedKeys are the preferences mirrored to the account.
var syncedKeys = []string{localstore.KeyLanguage, localstore.KeyTheme}

// Store reads and writes interface preferences.
type Store struct {
	client *api.Client
	local  localstore.KV
	logger *slog.Logger
}

// New creates a preference store over the device KV and the API client.
func New(client *api.Client, local localstore.KV, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		local:  local,
		logger: logger,
	}
}

// Language returns the stored interface language, empty when unset.
func (s *Store) Language(ctx context.Context) (string, error) {
	return s.local.Get(ctx, localstore.KeyLanguage)
}

// SetLanguage stores the interface language.
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	return s.set(ctx, localstore.KeyLanguage, lang)
}

// Theme returns the stored interface theme, empty when unset.
func (s *Store) Theme(ctx context.Context) (string, error) {
	return s.local.Get(ctx, localstore.KeyTheme)
}

// SetTheme stores the interface theme.
func (s *Store) SetTheme(ctx context.Context, theme string) error {
	return s.set(ctx, localstore.KeyTheme, theme)
}

func (s *Store) set(ctx context.Context, key, value string) error {
	if value == "" {
		return errors.New("preference value is empty")
	}

	if err := s.local.Set(ctx, key, value); err != nil {
		return fmt.Errorf("failed to store preference: %w", err)
	}

	// Best-effort account copy; the device value is authoritative.
	if err := s.client.SavePreferences(ctx, map[string]string{key: value}); err != nil {
		s.logger.Debug("failed to sync preference", "error", err, "key", key)
	}
	return nil
}

// Restore pulls account preferences onto the device. Keys the device
// already holds a value for are left alone.
func (s *Store) Restore(ctx context.Context) error {
	remote, err := s.client.Preferences(ctx)
	if err != nil {
		return fmt.Errorf("failed to load account preferences: %w", err)
	}

	for _, key := range syncedKeys {
		current, err := s.local.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to read preference: %w", err)
		}
		if current != "" || remote[key] == "" {
			continue
		}
		if err := s.local.Set(ctx, key, remote[key]); err != nil {
			return fmt.Errorf("failed to store preference: %w", err)
		}
	}
	return nil
}
