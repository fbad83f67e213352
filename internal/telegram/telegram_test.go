package telegram

import (
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "123456:test-token"

func initData(authDate time.Time, user string) url.Values {
	values := url.Values{}
	values.Set("auth_date", strconv.FormatInt(authDate.Unix(), 10))
	values.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	if user != "" {
		values.Set("user", user)
	}

	values.Set("hash", Sign(values, botToken))
	return values
}

func TestValidator_Validate(t *testing.T) {
	a := assert.New(t)

	now := time.Unix(1700000000, 0)
	v := NewValidator(botToken, time.Hour)
	v.now = func() time.Time { return now }

	values := initData(now.Add(-time.Minute), `{"id":279058397,"first_name":"Vlad","last_name":"","username":"vdkfrost","photo_url":"https://t.me/i/userpic/320/a.svg"}`)

	user, err := v.Validate(values.Encode())
	require.NoError(t, err)
	a.Equal(int64(279058397), user.ID)
	a.Equal("279058397", user.UserID())
	a.Equal("Vlad", user.DisplayName())
	a.Equal("https://t.me/i/userpic/320/a.svg", user.PhotoURL)
}

func TestValidator_Validate_errors(t *testing.T) {
	a := assert.New(t)

	now := time.Unix(1700000000, 0)
	v := NewValidator(botToken, time.Hour)
	v.now = func() time.Time { return now }

	_, err := v.Validate("auth_date=1&user=%7B%7D")
	a.Equal(ErrMissingHash, err)

	values := initData(now, `{"id":1,"first_name":"A"}`)
	values.Set("query_id", "tampered")
	_, err = v.Validate(values.Encode())
	a.Equal(ErrInvalidHash, err)

	values = initData(now, `{"id":1,"first_name":"A"}`)
	_, err = NewValidator("other:token", 0).Validate(values.Encode())
	a.Equal(ErrInvalidHash, err)

	values = initData(now.Add(-2*time.Hour), `{"id":1,"first_name":"A"}`)
	_, err = v.Validate(values.Encode())
	a.Equal(ErrExpired, err)

	values = initData(now, "")
	_, err = v.Validate(values.Encode())
	a.Equal(ErrMissingUser, err)

	values = initData(now, `{"first_name":"A"}`)
	_, err = v.Validate(values.Encode())
	a.Equal(ErrMissingUser, err)
}

func TestUser_DisplayName(t *testing.T) {
	a := assert.New(t)
	a.Equal("Ada Lovelace", User{FirstName: "Ada", LastName: "Lovelace"}.DisplayName())
	a.Equal("ada", User{Username: "ada"}.DisplayName())
	a.Equal("", User{}.DisplayName())
}
