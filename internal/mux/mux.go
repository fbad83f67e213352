package mux

import (
	"context"
	"net/http"
	"strings"
	"time"

	gmux "github.com/gorilla/mux"

	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/telegram"
	"holdem-server/pkg/holdem"
	"holdem-server/pkg/model"
	"holdem-server/pkg/room"
)

type ctxKey int

const (
	ctxUserKey ctxKey = iota
)

// initDataMaxAge is how old a Telegram login may be
const initDataMaxAge = 24 * time.Hour

// Users looks up and changes user records
type Users interface {
	UpsertUser(ctx context.Context, id, name, photoURL string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUsers(ctx context.Context, offset int64, limit int) ([]*model.User, error)
	Reward(ctx context.Context, id string, amount int64) (*model.User, error)
	SetRole(ctx context.Context, id string, role model.Role) (*model.User, error)
}

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version   string
	users     Users
	validator *telegram.Validator
	pitBoss   *room.PitBoss

	// store for testing purposes
	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

// TableOptions returns the table options from the configuration
func TableOptions(cfg config.Config) holdem.Options {
	return holdem.Options{
		MaxSeats:      cfg.Table.MaxSeats,
		SmallBlind:    cfg.Table.SmallBlind,
		BigBlind:      cfg.Table.BigBlind,
		EarlyEndDelay: cfg.Table.EarlyEndDelay,
		ShowdownDelay: cfg.Table.ShowdownDelay,
	}
}

// NewMux returns a new HTTP mux
func NewMux(version string, users Users, wallet room.Store) (*Mux, error) {
	cfg := config.Instance()

	pitBoss, err := room.NewPitBoss(TableOptions(cfg), wallet, cfg.Table.DefaultBuyIn)
	if err != nil {
		return nil, err
	}

	pitBoss.StartShift()

	this := &Mux{
		Router:    gmux.NewRouter(),
		version:   version,
		users:     users,
		validator: telegram.NewValidator(cfg.Telegram.BotToken, initDataMaxAge),
		pitBoss:   pitBoss,
	}

	this.authRouter = this.Router.NewRoute().Subrouter()
	this.authRouter.Use(this.authMiddleware)

	this.adminRouter = this.authRouter.NewRoute().Subrouter()
	this.adminRouter.Use(this.adminMiddleware)

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/auth/telegram").Handler(this.postAuthTelegram())
	}

	// requires bearer authorization
	{
		r := this.authRouter
		r.Methods(http.MethodGet).Path("/me").Handler(this.getMe())
		r.Methods(http.MethodGet).Path("/table/{room:[A-Za-z0-9_-]{1,64}}/ws").Handler(this.getTableRoomWS())
	}

	// requires admin access
	// depends on authMiddleware
	{
		r := this.adminRouter
		r.Methods(http.MethodGet).Path("/users").Handler(this.getUsers())
		r.Methods(http.MethodPost).Path("/users/{id}/reward").Handler(this.postUserReward())
		r.Methods(http.MethodPost).Path("/users/{id}/role").Handler(this.postUserRole())
	}

	return this, nil
}

func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		id, err := jwt.ValidUserID(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		user, err := m.users.GetUserByID(r.Context(), id)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxUserKey, user)
		w.Header().Set("Holdem-UserID", user.ID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// adminMiddleware requires authMiddleware to execute first
// Moderators may use the admin routes, but only an admin may change roles
func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(ctxUserKey).(*model.User)
		if user.Role != model.RoleAdmin && user.Role != model.RoleModerator {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
