// Package app assembles the service shared by every binary from a Config.
package app

import (
	"fmt"
	"log"

	"minigames/internal/api"
	"minigames/internal/cave"
	"minigames/internal/combat"
	"minigames/internal/config"
	"minigames/internal/random"
	"minigames/internal/session"
)

// Record kinds in the SQLite store.
const (
	kindCharacter = "character"
	kindCaveGame  = "cave_game"
)

// Open builds the service described by cfg. The returned close function
// releases the store and is safe to call when Open fails.
func Open(cfg config.Config) (*api.Service, func() error, error) {
	noop := func() error { return nil }

	machine, err := Machine(cfg.CaveScript)
	if err != nil {
		return nil, noop, err
	}

	rng, seed, err := random.FromConfig(cfg.Seed)
	if err != nil {
		return nil, noop, err
	}
	log.Printf("random seed %d", seed)

	switch cfg.Store {
	case config.StoreSQLite:
		db, err := session.OpenDB(cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		svc := api.NewService(
			session.NewSQLiteStore[combat.Combatant](db, kindCharacter),
			session.NewSQLiteStore[cave.Game](db, kindCaveGame),
			machine,
			rng,
		)
		return svc, db.Close, nil
	case config.StoreMemory, "":
		svc := api.NewService(
			session.NewMemoryStore[combat.Combatant](),
			session.NewMemoryStore[cave.Game](),
			machine,
			rng,
		)
		return svc, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// Machine returns a cave machine for the script at path, or the built-in
// script when path is empty.
func Machine(path string) (*cave.Machine, error) {
	if path == "" {
		return cave.NewMachine(nil), nil
	}
	script, err := cave.LoadScript(path)
	if err != nil {
		return nil, err
	}
	return cave.NewMachine(script), nil
}
