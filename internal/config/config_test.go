package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"holdem-server/internal/util"
)

func TestInstance(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/config.yaml")()
	defer util.SetEnv("HOLDEM_JWT_SECRET", "from-env")()

	a := assert.New(t)
	config = Config{}
	cfg := Instance()
	a.Equal("postgres://holdem@db:5432/holdem?sslmode=disable", cfg.PGDSN)
	a.Equal("debug", cfg.Log.Level)
	a.Equal("from-env", cfg.JWT.Secret)
	a.Equal(time.Hour, cfg.JWT.TTL)
	a.Equal("file-token", cfg.Telegram.BotToken)
	a.Equal(25, cfg.Table.SmallBlind)
	a.Equal(50, cfg.Table.BigBlind)

	// untouched values keep their defaults
	a.Equal(10, cfg.Table.MaxSeats)
	a.Equal(7*time.Second, cfg.Table.ShowdownDelay)

	// ensure that it's only loaded once
	_ = os.Setenv("HOLDEM_JWT_SECRET", "changed")
	// ensure we aren't using a pointer
	cfg.JWT.Secret = "bad"
	cfg = Instance()
	a.Equal("from-env", cfg.JWT.Secret)
}

func TestLoad_missingFile(t *testing.T) {
	defer util.SetEnv("HOLDEM_CONFIG_FILE", "testdata/does-not-exist.yaml")()
	defer util.SetEnv("HOLDEM_TABLE_BIG_BLIND", "40")()

	a := assert.New(t)
	a.NoError(Load())

	cfg := Instance()
	a.Equal(DefaultConfig().PGDSN, cfg.PGDSN)
	a.Equal(40, cfg.Table.BigBlind)
	a.Equal(1000, cfg.Table.DefaultBuyIn)
}
