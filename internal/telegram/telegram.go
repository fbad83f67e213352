// Package telegram verifies the launch parameters a Telegram Mini App passes to the client
package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrMissingHash is returned when the init data has no hash parameter
var ErrMissingHash = errors.New("missing hash")

// ErrInvalidHash is returned when the signature does not match
var ErrInvalidHash = errors.New("invalid hash")

// ErrMissingUser is returned when the init data does not describe a user
var ErrMissingUser = errors.New("missing user")

// ErrExpired is returned when auth_date is older than the allowed age
var ErrExpired = errors.New("init data is expired")

// User is the Telegram user described by the init data
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	PhotoURL  string `json:"photo_url"`
}

// UserID returns the ID as a string
func (u User) UserID() string {
	return strconv.FormatInt(u.ID, 10)
}

// DisplayName returns the user's full name, falling back to the username
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}

	return name
}

// Validator validates init data signed for a bot
type Validator struct {
	BotToken string

	// MaxAge rejects init data older than this, zero disables the check
	MaxAge time.Duration

	now func() time.Time
}

// NewValidator returns a new validator for the bot token
func NewValidator(botToken string, maxAge time.Duration) *Validator {
	return &Validator{
		BotToken: botToken,
		MaxAge:   maxAge,
		now:      time.Now,
	}
}

// Validate checks the init data signature and returns the user
func (v *Validator) Validate(initData string) (User, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return User{}, fmt.Errorf("could not parse init data: %w", err)
	}

	hash := values.Get("hash")
	if hash == "" {
		return User{}, ErrMissingHash
	}

	expected := Sign(values, v.BotToken)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(hash))) {
		return User{}, ErrInvalidHash
	}

	if v.MaxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return User{}, fmt.Errorf("invalid auth_date: %w", err)
		}

		now := time.Now
		if v.now != nil {
			now = v.now
		}

		if now().Sub(time.Unix(authDate, 0)) > v.MaxAge {
			return User{}, ErrExpired
		}
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return User{}, ErrMissingUser
	}

	var user User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		return User{}, fmt.Errorf("could not parse user: %w", err)
	}

	if user.ID == 0 {
		return User{}, ErrMissingUser
	}

	return user, nil
}

// Sign computes the hex hash Telegram attaches to init data
// The hash parameter itself is excluded from the check string
func Sign(values url.Values, botToken string) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}

		keys = append(keys, key)
	}

	sort.Strings(keys)

	lines := make([]string, len(keys))
	for i, key := range keys {
		lines[i] = key + "=" + values.Get(key)
	}

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	_, _ = secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	_, _ = mac.Write([]byte(strings.Join(lines, "\n")))

	return hex.EncodeToString(mac.Sum(nil))
}
