package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"holdem-server/internal/util"
)

// Config provides configuration for the hold'em server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	Log            struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log"`
	JWT struct {
		Secret string        `yaml:"secret"`
		TTL    time.Duration `yaml:"ttl"`
	} `yaml:"jwt"`
	Telegram struct {
		BotToken string `yaml:"botToken" envconfig:"bot_token"`
		// AdminID is the Telegram user id that is always an admin
		AdminID string `yaml:"adminId" envconfig:"admin_id"`
	} `yaml:"telegram"`
	Table struct {
		MaxSeats      int           `yaml:"maxSeats" envconfig:"max_seats"`
		SmallBlind    int           `yaml:"smallBlind" envconfig:"small_blind"`
		BigBlind      int           `yaml:"bigBlind" envconfig:"big_blind"`
		DefaultBuyIn  int           `yaml:"defaultBuyIn" envconfig:"default_buy_in"`
		EarlyEndDelay time.Duration `yaml:"earlyEndDelay" envconfig:"early_end_delay"`
		ShowdownDelay time.Duration `yaml:"showdownDelay" envconfig:"showdown_delay"`
	} `yaml:"table"`
	// StartingBalance is the play money a new user receives
	StartingBalance int64 `yaml:"startingBalance" envconfig:"starting_balance"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	var cfg Config
	cfg.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	cfg.MigrationsPath = "./sql"
	cfg.Log.Level = "info"
	cfg.JWT.TTL = 24 * time.Hour
	cfg.Table.MaxSeats = 10
	cfg.Table.SmallBlind = 10
	cfg.Table.BigBlind = 20
	cfg.Table.DefaultBuyIn = 1000
	cfg.Table.EarlyEndDelay = 5 * time.Second
	cfg.Table.ShowdownDelay = 7 * time.Second
	cfg.StartingBalance = 10000

	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// Values come from the defaults, then the YAML file, then the environment
func Load() error {
	// a missing .env is fine
	_ = godotenv.Load(util.Getenv("HOLDEM_ENV_FILE", ".env"))

	cfg := DefaultConfig()

	configFile := util.Getenv("HOLDEM_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	} else {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("holdem", &cfg); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}
