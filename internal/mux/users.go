package mux

import (
	"net/http"

	"github.com/gorilla/mux"

	"holdem-server/pkg/model"
)

type rewardPayload struct {
	Amount int64 `json:"amount"`
}

type rolePayload struct {
	Role model.Role `json:"role"`
}

// note: this requires admin auth
func (m *Mux) getUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		users, err := m.users.GetUsers(r.Context(), start, rows)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// note: this requires admin auth
func (m *Mux) postUserReward() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload rewardPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		user, err := m.users.Reward(r.Context(), mux.Vars(r)["id"], payload.Amount)
		if err != nil {
			writeModelError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// note: this requires admin auth, moderators are refused
func (m *Mux) postUserRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !r.Context().Value(ctxUserKey).(*model.User).IsAdmin() {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		var payload rolePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		user, err := m.users.SetRole(r.Context(), mux.Vars(r)["id"], payload.Role)
		if err != nil {
			if err == model.ErrAdminRoleImmutable {
				writeJSONError(w, http.StatusForbidden, err)
				return
			}

			writeModelError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
