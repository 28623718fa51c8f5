// Package api provides a client for communicating with the invitation API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/toyxona/toycard/internal/models"
)

// ErrUnauthorized is returned when the backend rejects the bearer
// token. The client forgets its token so the caller can re-authenticate.
var ErrUnauthorized = errors.New("unauthorized")

// Client is an API client for the invitation service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a new API client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetToken installs the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, empty when unauthenticated.
func (c *Client) Token() string {
	return c.token
}

// User represents a user account from the API.
type User struct {
	ID          string    `json:"id"`
	TelegramID  int64     `json:"telegram_id"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	AccountType string    `json:"account_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Wish represents a guest wish from the API.
type Wish struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitation_id"`
	Author       string    `json:"author"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}

// invitationWire mirrors the invitation representation on the wire:
// one combined timestamp and backend enumeration members.
type invitationWire struct {
	ID              string `json:"id,omitempty"`
	InvitationID    string `json:"invitation_id,omitempty"`
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
	TemplateID      string `json:"template_id,omitempty"`
	GroomPictureURL string `json:"groom_picture_url,omitempty"`
	BridePictureURL string `json:"bride_picture_url,omitempty"`
}

// SaveResult carries the identifier assigned by the backend and the
// pre-signed portrait upload targets.
type SaveResult struct {
	ID                 string `json:"id"`
	GroomPictureUpload string `json:"groom_picture_upload_url,omitempty"`
	BridePictureUpload string `json:"bride_picture_upload_url,omitempty"`
}

// Authenticate exchanges Telegram init data for a bearer token. On
// success the token is installed on the client.
func (c *Client) Authenticate(ctx context.Context, initData string) (*User, error) {
	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	err := c.do(ctx, http.MethodPost, "/auth", map[string]string{"init_data": initData}, &resp)
	if err != nil {
		return nil, err
	}
	c.token = resp.Token
	return resp.User, nil
}

// SaveInvitation persists the record. The identifier never travels in
// the record itself: it is sent separately as the update key, and the
// backend answers with the identifier to use from then on. Date and
// time are composed into one timestamp; music and template are mapped
// to their backend enumeration members, with the full catalog
// identifier carried alongside.
func (c *Client) SaveInvitation(ctx context.Context, inv *models.Invitation) (*SaveResult, error) {
	payload := &invitationWire{
		InvitationID:    inv.ID,
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
		Template:        models.NormalizeTemplate(inv.Template),
		TemplateID:      inv.Template,
	}

	var result SaveResult
	if err := c.do(ctx, http.MethodPost, "/v1/invitations/init", payload, &result); err != nil {
		return nil, err
	}
	if result.ID == "" {
		return nil, errors.New("save response carried no identifier")
	}
	return &result, nil
}

// GetInvitation fetches one invitation and splits its combined
// timestamp back into separate date and time fields.
func (c *Client) GetInvitation(ctx context.Context, id string) (*models.Invitation, error) {
	var wire invitationWire
	if err := c.do(ctx, http.MethodGet, "/invitations/"+id, nil, &wire); err != nil {
		return nil, err
	}
	return wire.toModel(), nil
}

// ListSelf fetches the caller's invitations. Both a bare list and a
// paginated {content: [...]} wrapper are accepted.
func (c *Client) ListSelf(ctx context.Context) ([]*models.Invitation, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, "/v1/invitations/self", nil, &raw); err != nil {
		return nil, err
	}

	var wires []invitationWire
	if err := json.Unmarshal(raw, &wires); err != nil {
		var wrapper struct {
			Content []invitationWire `json:"content"`
		}
		if err := json.Unmarshal(raw, &wrapper); err != nil {
			return nil, fmt.Errorf("decoding invitation list: %w", err)
		}
		wires = wrapper.Content
	}

	invitations := make([]*models.Invitation, 0, len(wires))
	for i := range wires {
		invitations = append(invitations, wires[i].toModel())
	}
	return invitations, nil
}

// CountSelf fetches the number of invitations owned by the caller.
func (c *Client) CountSelf(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/invitations/self/count", nil, &resp)
	return resp.Count, err
}

// GetUserByTelegramID fetches a user account by Telegram account ID.
func (c *Client) GetUserByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/users/by-telegram-id/%d", telegramID), nil, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// HealthCheck probes the backend liveness endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health-check", nil, nil)
}

// ListWishes fetches the wishes posted to an invitation.
func (c *Client) ListWishes(ctx context.Context, invitationID string) ([]Wish, error) {
	var wishes []Wish
	err := c.do(ctx, http.MethodGet, "/invitations/"+invitationID+"/wishes", nil, &wishes)
	return wishes, err
}

// PostWish posts a guest wish and returns the stored record.
func (c *Client) PostWish(ctx context.Context, invitationID, author, text string) (*Wish, error) {
	payload := map[string]string{
		"invitation_id": invitationID,
		"author":        author,
		"text":          text,
	}
	var wish Wish
	if err := c.do(ctx, http.MethodPost, "/wishes", payload, &wish); err != nil {
		return nil, err
	}
	return &wish, nil
}

// Preferences fetches the caller's stored interface preferences.
func (c *Client) Preferences(ctx context.Context) (map[string]string, error) {
	prefs := make(map[string]string)
	if err := c.do(ctx, http.MethodGet, "/v1/preferences", nil, &prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

// SavePreferences stores interface preferences on the caller's account.
func (c *Client) SavePreferences(ctx context.Context, prefs map[string]string) error {
	return c.do(ctx, http.MethodPut, "/v1/preferences", prefs, nil)
}

// RememberReceived records an invitation on the caller's received list.
func (c *Client) RememberReceived(ctx context.Context, invitationID string) error {
	return c.do(ctx, http.MethodPost, "/v1/received", map[string]string{"invitation_id": invitationID}, nil)
}

// ListReceived fetches the caller's received-invitation identifiers.
func (c *Client) ListReceived(ctx context.Context) ([]string, error) {
	var resp struct {
		InvitationIDs []string `json:"invitation_ids"`
	}
	err := c.do(ctx, http.MethodGet, "/v1/received", nil, &resp)
	return resp.InvitationIDs, err
}

// UploadImage pushes raw image bytes to a pre-signed upload target.
// The target URL is absolute and self-authorizing.
func (c *Client) UploadImage(ctx context.Context, targetURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, targetURL, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.errorFrom(resp)
	}
	return nil
}

func (w *invitationWire) toModel() *models.Invitation {
	date, clock := models.SplitDateTime(w.Date)
	template := w.TemplateID
	if template == "" {
		template = w.Template
	}
	music := w.MusicID
	if !models.IsMusicTrack(music) {
		music = models.MusicFromWire(w.BackgroundMusic)
	}
	return &models.Invitation{
		ID:              w.ID,
		GroomName:       w.GroomName,
		GroomLastname:   w.GroomLastname,
		BrideName:       w.BrideName,
		BrideLastname:   w.BrideLastname,
		Date:            date,
		Time:            clock,
		Location:        w.Location,
		Hall:            w.Hall,
		Text:            w.Text,
		BackgroundMusic: music,
		Template:        template,
		GroomPictureURL: w.GroomPictureURL,
		BridePictureURL: w.BridePictureURL,
	}
}

// do performs a request against the API and unmarshals the response.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
		// Older deployments read the token from this header.
		req.Header.Set("X-Auth-Token", c.token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.token = ""
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}

	if result == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorFrom extracts the backend error message, falling back to a
// generic status-derived message when the body is not the standard
// error shape.
func (c *Client) errorFrom(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	var apiErr struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("%s", apiErr.Message)
	}
	return fmt.Errorf("server error %d", resp.StatusCode)
}
