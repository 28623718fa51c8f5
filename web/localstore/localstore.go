// Package localstore provides the device-local key/value storage the
// client keeps outside the backend: the received-invitations list and
// interface preferences.
package localstore

import (
	"context"
	"sync"
)

// Well-known keys.
const (
	KeyReceivedInvitations = "received_invitations"
	KeyLanguage            = "language"
	KeyTheme               = "theme"
)

// KV is device-local key/value storage. List values are stored under
// the same key space; AppendUnique treats the key as a string list and
// is a no-op when the value is already present.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	AppendUnique(ctx context.Context, key, value string) error
	List(ctx context.Context, key string) ([]string, error)
	Close() error
}

// Memory is an in-memory KV used in tests and as a fallback when no
// database path is configured.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
	lists  map[string][]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string]string),
		lists:  make(map[string][]string),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) AppendUnique(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.lists[key] {
		if v == value {
			return nil
		}
	}
	m.lists[key] = append(m.lists[key], value)
	return nil
}

func (m *Memory) List(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.lists[key]))
	copy(out, m.lists[key])
	return out, nil
}

func (m *Memory) Close() error {
	return nil
}
