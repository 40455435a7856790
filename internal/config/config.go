// Package config loads process configuration from the environment and flags.
package config

import (
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

// Config is shared by every binary; each one reads the fields it needs.
type Config struct {
	Addr       string `env:"MINIGAMES_ADDR" envDefault:":5000"`
	Store      string `env:"MINIGAMES_STORE" envDefault:"memory"`
	DBPath     string `env:"MINIGAMES_DB_PATH" envDefault:"minigames.db"`
	Seed       int64  `env:"MINIGAMES_SEED"`
	CaveScript string `env:"MINIGAMES_CAVE_SCRIPT"`
	Telemetry  bool   `env:"MINIGAMES_TELEMETRY"`
	MaxRounds  int    `env:"MINIGAMES_MAX_ROUNDS" envDefault:"100"`
	Lang       string `env:"MINIGAMES_LANG"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Parse loads environment defaults and then applies command-line flags.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "record store: memory or sqlite")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (store=sqlite)")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 picks one")
	fs.StringVar(&cfg.CaveScript, "cave-script", cfg.CaveScript, "YAML file overriding the cave texts")
	fs.BoolVar(&cfg.Telemetry, "telemetry", cfg.Telemetry, "export traces over OTLP/HTTP")
	fs.IntVar(&cfg.MaxRounds, "max-rounds", cfg.MaxRounds, "round limit for duels run to conclusion")
	fs.StringVar(&cfg.Lang, "lang", cfg.Lang, "narration language (en, zh)")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that the env and flag parsers cannot.
func (c Config) Validate() error {
	switch c.Store {
	case StoreMemory:
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("db path is required for the sqlite store")
		}
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("max rounds must be positive, got %d", c.MaxRounds)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
