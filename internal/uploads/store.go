package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// maxUploadSize bounds a single portrait upload.
const maxUploadSize = 10 << 20 // 10 MiB

// Store persists uploaded portrait bytes on disk, one file per
// invitation slot.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put writes the portrait bytes for one invitation slot, replacing any
// previous upload for the same slot.
func (s *Store) Put(invitationID, slot string, r io.Reader) error {
	dir := filepath.Join(s.dir, invitationID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating invitation media dir: %w", err)
	}

	path := filepath.Join(dir, slot)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating media file: %w", err)
	}

	if _, err := io.Copy(f, io.LimitReader(r, maxUploadSize)); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing media file: %w", err)
	}

	return f.Close()
}

// Path returns the on-disk path for a stored portrait, or an error if
// it does not exist.
func (s *Store) Path(invitationID, slot string) (string, error) {
	path := filepath.Join(s.dir, invitationID, slot)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("portrait not found: %w", err)
	}
	return path, nil
}
