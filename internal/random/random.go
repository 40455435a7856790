// Package random provides seed generation and seeded pseudo-random sources.
//
// Seeds come from crypto/rand; the sources themselves are deterministic PCG
// generators so a recorded seed replays the same battles.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// New returns a PCG-backed generator for seed.
func New(seed int64) *rand.Rand {
	// #nosec G404 -- game rolls, not secrets
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

// FromConfig returns a generator for seed, drawing a fresh seed when seed is 0.
// The seed actually used is returned so callers can log it for replay.
func FromConfig(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		s, err := NewSeed()
		if err != nil {
			return nil, 0, err
		}
		seed = s
	}
	return New(seed), seed, nil
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
