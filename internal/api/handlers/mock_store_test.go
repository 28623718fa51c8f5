package handlers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/toyxona/toycard/internal/models"
	"github.com/toyxona/toycard/internal/store"
)

// mockStore implements store.Store in memory for handler tests.
type mockStore struct {
	mu sync.Mutex

	nextID      int
	invitations map[string]*models.Invitation
	wishes      map[string][]*models.Wish
	users       map[string]*models.User
	received    map[string][]string
	preferences map[string]map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{
		nextID:      42,
		invitations: make(map[string]*models.Invitation),
		wishes:      make(map[string][]*models.Wish),
		users:       make(map[string]*models.User),
		received:    make(map[string][]string),
		preferences: make(map[string]map[string]string),
	}
}

func (m *mockStore) assignID() string {
	id := fmt.Sprintf("%d", m.nextID)
	m.nextID++
	return id
}

func (m *mockStore) Invitations() store.InvitationStore { return &mockInvitationStore{m} }
func (m *mockStore) Wishes() store.WishStore            { return &mockWishStore{m} }
func (m *mockStore) Users() store.UserStore             { return &mockUserStore{m} }
func (m *mockStore) Received() store.ReceivedStore      { return &mockReceivedStore{m} }
func (m *mockStore) Preferences() store.PreferenceStore { return &mockPreferenceStore{m} }

func (m *mockStore) WithTx(ctx context.Context, fn func(store.Store) error) error {
	return fn(m)
}

func (m *mockStore) Ping(ctx context.Context) error { return nil }
func (m *mockStore) Close() error                   { return nil }

type mockInvitationStore struct{ s *mockStore }

func (st *mockInvitationStore) Create(ctx context.Context, inv *models.Invitation) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	inv.ID = st.s.assignID()
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	copied := *inv
	st.s.invitations[inv.ID] = &copied
	return nil
}

func (st *mockInvitationStore) Get(ctx context.Context, id string) (*models.Invitation, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	inv, ok := st.s.invitations[id]
	if !ok {
		return nil, nil
	}
	copied := *inv
	return &copied, nil
}

func (st *mockInvitationStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Invitation, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	var out []*models.Invitation
	for _, inv := range st.s.invitations {
		if inv.OwnerID == ownerID {
			copied := *inv
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (st *mockInvitationStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	list, _ := st.ListByOwner(ctx, ownerID)
	return len(list), nil
}

func (st *mockInvitationStore) Update(ctx context.Context, inv *models.Invitation) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	existing, ok := st.s.invitations[inv.ID]
	if !ok {
		return fmt.Errorf("invitation %s not found", inv.ID)
	}
	// Portrait URLs are owned by the upload path, same as the database
	// Update statement.
	inv.GroomPictureURL = existing.GroomPictureURL
	inv.BridePictureURL = existing.BridePictureURL
	inv.UpdatedAt = time.Now()
	copied := *inv
	st.s.invitations[inv.ID] = &copied
	return nil
}

func (st *mockInvitationStore) SetPicture(ctx context.Context, id, slot, pictureURL string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	inv, ok := st.s.invitations[id]
	if !ok {
		return fmt.Errorf("invitation %s not found", id)
	}
	if slot == "groom" {
		inv.GroomPictureURL = pictureURL
	} else {
		inv.BridePictureURL = pictureURL
	}
	return nil
}

type mockWishStore struct{ s *mockStore }

func (st *mockWishStore) Create(ctx context.Context, wish *models.Wish) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	wish.ID = st.s.assignID()
	wish.CreatedAt = time.Now()
	copied := *wish
	// Newest first, matching the database ordering.
	st.s.wishes[wish.InvitationID] = append([]*models.Wish{&copied}, st.s.wishes[wish.InvitationID]...)
	return nil
}

func (st *mockWishStore) ListByInvitation(ctx context.Context, invitationID string) ([]*models.Wish, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	out := make([]*models.Wish, len(st.s.wishes[invitationID]))
	copy(out, st.s.wishes[invitationID])
	return out, nil
}

type mockUserStore struct{ s *mockStore }

func (st *mockUserStore) UpsertByTelegramID(ctx context.Context, user *models.User) (*models.User, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for _, existing := range st.s.users {
		if existing.TelegramID == user.TelegramID {
			existing.DisplayName = user.DisplayName
			existing.AvatarURL = user.AvatarURL
			copied := *existing
			return &copied, nil
		}
	}
	user.ID = st.s.assignID()
	if user.AccountType == "" {
		user.AccountType = models.AccountFree
	}
	user.CreatedAt = time.Now()
	copied := *user
	st.s.users[user.ID] = &copied
	out := *user
	return &out, nil
}

func (st *mockUserStore) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for _, user := range st.s.users {
		if user.TelegramID == telegramID {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (st *mockUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	user, ok := st.s.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

type mockReceivedStore struct{ s *mockStore }

func (st *mockReceivedStore) Append(ctx context.Context, userID, invitationID string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	for _, id := range st.s.received[userID] {
		if id == invitationID {
			return nil
		}
	}
	st.s.received[userID] = append(st.s.received[userID], invitationID)
	return nil
}

func (st *mockReceivedStore) List(ctx context.Context, userID string) ([]string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	out := make([]string, len(st.s.received[userID]))
	copy(out, st.s.received[userID])
	return out, nil
}

type mockPreferenceStore struct{ s *mockStore }

func (st *mockPreferenceStore) Get(ctx context.Context, userID, key string) (string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	return st.s.preferences[userID][key], nil
}

func (st *mockPreferenceStore) Set(ctx context.Context, userID, key, value string) error {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	if st.s.preferences[userID] == nil {
		st.s.preferences[userID] = make(map[string]string)
	}
	st.s.preferences[userID][key] = value
	return nil
}

func (st *mockPreferenceStore) GetAll(ctx context.Context, userID string) (map[string]string, error) {
	st.s.mu.Lock()
	defer st.s.mu.Unlock()
	out := make(map[string]string, len(st.s.preferences[userID]))
	for k, v := range st.s.preferences[userID] {
		out[k] = v
	}
	return out, nil
}
