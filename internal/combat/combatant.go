// Package combat resolves turn-based duels between two combatants.
//
// Everything here is synchronous and free of I/O. Randomness is always drawn
// from a caller-supplied Rand so tests can fix the sequence. Callers that share
// a Combatant between goroutines must serialize access themselves.
package combat

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidVariant is returned when a character archetype is not recognized.
var ErrInvalidVariant = errors.New("invalid character class")

// Rand is the random source used for initiative and damage rolls.
// *math/rand/v2.Rand satisfies it.
type Rand interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
}

// Variant is the closed set of attack behaviors.
type Variant int

const (
	// VariantOrdinary is the fallback behavior with no special outcome.
	VariantOrdinary Variant = iota
	// VariantWarrior can land critical hits.
	VariantWarrior
	// VariantMage can cast power spells.
	VariantMage
)

// String returns the wire name of the variant.
func (v Variant) String() string {
	switch v {
	case VariantWarrior:
		return "warrior"
	case VariantMage:
		return "mage"
	default:
		return "ordinary"
	}
}

// MarshalText encodes the variant by name.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a stored variant. Unlike ParseVariant it accepts
// "ordinary" so any persisted snapshot can be rehydrated.
func (v *Variant) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	if s == VariantOrdinary.String() {
		*v = VariantOrdinary
		return nil
	}
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// ParseVariant maps a class name to a creatable variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "warrior":
		return VariantWarrior, nil
	case "mage":
		return VariantMage, nil
	default:
		return VariantOrdinary, fmt.Errorf("%w: %q", ErrInvalidVariant, s)
	}
}

type archetype struct {
	maxHP      int
	baseDamage int
}

var archetypes = map[Variant]archetype{
	VariantWarrior: {maxHP: 120, baseDamage: 25},
	VariantMage:    {maxHP: 80, baseDamage: 35},
}

// Combatant is one duelist. HP stays within [0, MaxHP].
type Combatant struct {
	Name       string
	Variant    Variant
	HP         int
	MaxHP      int
	BaseDamage int
}

// NewCombatant creates a combatant at full health.
func NewCombatant(name string, v Variant) (*Combatant, error) {
	a, ok := archetypes[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidVariant, v)
	}
	return &Combatant{
		Name:       name,
		Variant:    v,
		HP:         a.maxHP,
		MaxHP:      a.maxHP,
		BaseDamage: a.baseDamage,
	}, nil
}

// Create parses class and creates a combatant in one step.
func Create(name, class string) (*Combatant, error) {
	v, err := ParseVariant(class)
	if err != nil {
		return nil, err
	}
	return NewCombatant(name, v)
}

// Alive reports whether the combatant has any HP left.
func (c *Combatant) Alive() bool {
	return c.HP > 0
}

// ApplyDamage subtracts amount from HP, stopping at zero, and returns amount.
// Negative amounts are ignored.
func (c *Combatant) ApplyDamage(amount int) int {
	if amount < 0 {
		return 0
	}
	c.HP -= amount
	if c.HP < 0 {
		c.HP = 0
	}
	return amount
}
