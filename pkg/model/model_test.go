package model

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"

	"holdem-server/internal/config"
	"holdem-server/internal/util"
	"holdem-server/pkg/db"
)

var cbg = context.Background()

var setupOnce sync.Once

// requireDB skips the test unless PG_DSN points at a postgres database
func requireDB(t *testing.T) {
	t.Helper()

	dsn := os.Getenv("PG_DSN")
	if dsn == "" {
		t.Skip("PG_DSN is not set")
	}

	setupOnce.Do(func() {
		restore := util.SetEnv("HOLDEM_PG_DSN", dsn)
		defer restore()

		if err := config.Load(); err != nil {
			panic(err)
		}

		db.LoadInstance()
		if err := db.MigrateFrom(db.Instance(), "../../sql"); err != nil {
			panic(err)
		}
	})
}

func user(t *testing.T, balance int64) *User {
	t.Helper()

	u, err := UpsertUser(cbg, uuid.New().String(), util.GetRandomName(), "", balance, "")
	if err != nil {
		t.Fatal(err)
	}

	return u
}
