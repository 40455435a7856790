package config

import (
	"flag"
	"strings"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Parse(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != ":5000" {
		t.Fatalf("expected default addr :5000, got %q", cfg.Addr)
	}
	if cfg.Store != StoreMemory {
		t.Fatalf("expected memory store, got %q", cfg.Store)
	}
	if cfg.MaxRounds != 100 {
		t.Fatalf("expected 100 max rounds, got %d", cfg.MaxRounds)
	}
}

func TestParseEnvThenFlags(t *testing.T) {
	t.Setenv("MINIGAMES_ADDR", ":7000")
	t.Setenv("MINIGAMES_SEED", "42")
	t.Setenv("MINIGAMES_STORE", "sqlite")

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg, err := Parse(fs, []string{"-addr", "127.0.0.1:9999"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Addr != "127.0.0.1:9999" {
		t.Fatalf("expected flag override, got %q", cfg.Addr)
	}
	if cfg.Seed != 42 {
		t.Fatalf("expected seed 42 from env, got %d", cfg.Seed)
	}
	if cfg.Store != StoreSQLite {
		t.Fatalf("expected sqlite store from env, got %q", cfg.Store)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("MINIGAMES_SEED", "not-an-int")

	var cfg Config
	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Store: StoreMemory, MaxRounds: 1}, false},
		{"sqlite", Config{Store: StoreSQLite, DBPath: "x.db", MaxRounds: 1}, false},
		{"sqlite without path", Config{Store: StoreSQLite, MaxRounds: 1}, true},
		{"unknown store", Config{Store: "redis", MaxRounds: 1}, true},
		{"zero rounds", Config{Store: StoreMemory}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
