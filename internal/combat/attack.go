package combat

const (
	warriorCriticalChance = 0.30
	mageSpellChance       = 0.20
)

// Attack rolls an attack against target and applies the damage.
// Nothing happens when either side is already dead.
func (c *Combatant) Attack(rng Rand, target *Combatant) (damage int, special bool) {
	if target == nil || !c.Alive() || !target.Alive() {
		return 0, false
	}
	return resolveAttack(c.Variant, c, target, rng)
}

// SpecialChance is the probability that v rolls its special outcome.
func SpecialChance(v Variant) float64 {
	switch v {
	case VariantWarrior:
		return warriorCriticalChance
	case VariantMage:
		return mageSpellChance
	default:
		return 0
	}
}

// DamageRange returns the inclusive damage bounds for v at base damage.
func DamageRange(v Variant, base int, special bool) (lo, hi int) {
	switch {
	case v == VariantWarrior && special:
		return base + 10, base + 20
	case v == VariantMage && special:
		return base + 15, base + 25
	case v == VariantMage:
		return base - 3, base + 7
	default:
		return base - 5, base + 5
	}
}

func resolveAttack(v Variant, attacker, defender *Combatant, rng Rand) (int, bool) {
	special := false
	if chance := SpecialChance(v); chance > 0 {
		special = rng.Float64() < chance
	}
	lo, hi := DamageRange(v, attacker.BaseDamage, special)
	dealt := defender.ApplyDamage(between(rng, lo, hi))
	return dealt, special
}

func between(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
