// Package uploads issues and verifies pre-signed portrait upload
// targets and stores the uploaded bytes on disk.
package uploads

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Portrait slots an invitation can carry.
const (
	SlotGroom = "groom"
	SlotBride = "bride"
)

// Signer errors.
var (
	ErrTokenInvalid = errors.New("upload token is invalid")
	ErrTokenExpired = errors.New("upload token has expired")
)

// Target is a pre-signed upload destination handed to the client after
// a save. The client PUTs raw image bytes to URL before the token
// expires; no additional request shaping is required.
type Target struct {
	Slot string `json:"slot"`
	URL  string `json:"url"`
}

// Claim identifies what a verified upload token grants access to.
type Claim struct {
	InvitationID string
	Slot         string
}

// Signer mints and verifies upload tokens. Tokens are self-contained:
// invitation ID, slot and expiry are covered by an HMAC-SHA256
// signature, so verification needs no storage round-trip.
type Signer struct {
	key     []byte
	baseURL string
	ttl     time.Duration
}

// NewSigner creates a Signer. baseURL is the externally reachable
// server URL used to compose target URLs.
func NewSigner(key []byte, baseURL string, ttl time.Duration) *Signer {
	return &Signer{
		key:     key,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
	}
}

// Sign mints a pre-signed target for one portrait slot.
func (s *Signer) Sign(invitationID, slot string) Target {
	exp := time.Now().Add(s.ttl).Unix()
	payload := invitationID + ":" + slot + ":" + strconv.FormatInt(exp, 10)
	token := base64.RawURLEncoding.EncodeToString([]byte(payload + ":" + s.sign(payload)))

	return Target{
		Slot: slot,
		URL:  s.baseURL + "/uploads/" + token,
	}
}

// Verify checks an upload token and returns its claim.
func (s *Signer) Verify(token string) (*Claim, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 4 {
		return nil, ErrTokenInvalid
	}
	invitationID, slot, expStr, sig := parts[0], parts[1], parts[2], parts[3]

	payload := invitationID + ":" + slot + ":" + expStr
	if !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return nil, ErrTokenInvalid
	}

	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if time.Now().Unix() > exp {
		return nil, ErrTokenExpired
	}

	if slot != SlotGroom && slot != SlotBride {
		return nil, ErrTokenInvalid
	}

	return &Claim{InvitationID: invitationID, Slot: slot}, nil
}

func (s *Signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Targets mints the groom and bride targets for an invitation.
func (s *Signer) Targets(invitationID string) []Target {
	return []Target{
		s.Sign(invitationID, SlotGroom),
		s.Sign(invitationID, SlotBride),
	}
}

// PublicURL composes the public media URL for a stored portrait.
func (s *Signer) PublicURL(invitationID, slot string) string {
	return fmt.Sprintf("%s/media/%s/%s", s.baseURL, invitationID, slot)
}
