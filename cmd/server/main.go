package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/mux"
	"holdem-server/pkg/db"
	"holdem-server/pkg/model"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	jwt.LoadSecret()

	cfg := config.Instance()
	if cfg.Telegram.BotToken == "" {
		logrus.Fatal("missing telegram bot token in configuration")
	}

	// run the db migrations
	db.Migrate()

	// no table survives a restart, so return any chips left on one
	if n, err := model.ReturnTableStacks(context.Background()); err != nil {
		logrus.WithError(err).Fatal("could not return table stacks")
	} else if n > 0 {
		logrus.WithField("users", n).Info("returned table stacks")
	}

	m, err := mux.NewMux(Version, model.Directory{
		StartingBalance: cfg.StartingBalance,
		AdminID:         cfg.Telegram.AdminID,
	}, model.Wallet{})
	if err != nil {
		logrus.WithError(err).Fatal("could not create mux")
	}

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(m)),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
