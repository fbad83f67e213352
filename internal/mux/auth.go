package mux

import (
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"holdem-server/internal/jwt"
	"holdem-server/internal/telegram"
	"holdem-server/internal/util"
	"holdem-server/pkg/model"
)

type authTelegramPayload struct {
	InitData string `json:"initData"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (m *Mux) postAuthTelegram() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload authTelegramPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.InitData == "" {
			writeJSONError(w, http.StatusBadRequest, errors.New("missing initData"))
			return
		}

		tgUser, err := m.validator.Validate(payload.InitData)
		if err != nil {
			logrus.WithError(err).WithField("remoteAddr", remoteAddr(r)).Info("rejected telegram login")
			if errors.Is(err, telegram.ErrInvalidHash) || errors.Is(err, telegram.ErrExpired) {
				writeJSONError(w, http.StatusUnauthorized, err)
				return
			}

			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		name := tgUser.DisplayName()
		if name == "" {
			name = util.GetRandomName()
		}

		user, err := m.users.UpsertUser(r.Context(), tgUser.UserID(), name, tgUser.PhotoURL)
		if err != nil {
			writeModelError(w, err)
			return
		}

		token, err := jwt.Sign(user.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, authResponse{
			Token: token,
			User:  user,
		})
	}
}

func (m *Mux) getMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, r.Context().Value(ctxUserKey).(*model.User))
	}
}
