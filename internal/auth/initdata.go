package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

// Init-data verification errors.
var (
	ErrInitDataInvalid = errors.New("init data signature mismatch")
	ErrInitDataExpired = errors.New("init data is too old")
)

// InitDataUser is the user identity embedded in a platform init token.
type InitDataUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
}

// DisplayName joins the first and last name the way they are shown in
// the app.
func (u *InitDataUser) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

// initDataMaxAge bounds how old an init token may be before it is
// rejected.
const initDataMaxAge = 24 * time.Hour

// VerifyInitData validates a Telegram WebApp init token against the
// bot token and returns the embedded user. The signature scheme is the
// documented one: the hash field is HMAC-SHA256 over the sorted
// key=value lines, keyed with HMAC-SHA256("WebAppData", botToken).
func VerifyInitData(raw, botToken string) (*InitDataUser, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing init data: %w", err)
	}

	gotHash := values.Get("hash")
	if gotHash == "" {
		return nil, ErrInitDataInvalid
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	wantHash := hex.EncodeToString(mac.Sum(nil))

	if subtle.ConstantTimeCompare([]byte(gotHash), []byte(wantHash)) != 1 {
		return nil, ErrInitDataInvalid
	}

	if initDataMaxAge > 0 {
		if authDate := values.Get("auth_date"); authDate != "" {
			var unix int64
			if _, err := fmt.Sscanf(authDate, "%d", &unix); err == nil {
				if time.Since(time.Unix(unix, 0)) > initDataMaxAge {
					return nil, ErrInitDataExpired
				}
			}
		}
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return nil, ErrInitDataInvalid
	}

	var user InitDataUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("parsing init data user: %w", err)
	}
	if user.ID == 0 {
		return nil, ErrInitDataInvalid
	}

	return &user, nil
}

// SignInitData produces a valid init token for the given user and bot
// token. It exists for tests and local development tooling.
func SignInitData(user InitDataUser, botToken string, authDate time.Time) (string, error) {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return "", fmt.Errorf("marshaling init data user: %w", err)
	}

	values := url.Values{}
	values.Set("user", string(userJSON))
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode(), nil
}
