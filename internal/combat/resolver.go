package combat

import (
	"golang.org/x/text/message"

	"minigames/internal/narrate"
)

var english = narrate.Printer(narrate.Default())

// Event is one narrated attack inside an exchange.
type Event struct {
	Actor   string
	Target  string
	Variant Variant // the actor's
	Damage  int
	Special bool
	Counter bool
}

// Kind classifies the event for narration.
func (e Event) Kind() narrate.Kind {
	switch {
	case e.Special && e.Variant == VariantMage:
		return narrate.KindSpell
	case e.Special:
		return narrate.KindCritical
	case e.Counter:
		return narrate.KindCounter
	default:
		return narrate.KindHit
	}
}

// Narrate renders the event with p.
func (e Event) Narrate(p *message.Printer) string {
	return narrate.Line(p, e.Kind(), e.Actor, e.Target, e.Damage)
}

// String renders the event in English.
func (e Event) String() string {
	return e.Narrate(english)
}

// Report is the outcome of a single exchange.
type Report struct {
	Events        []Event
	A             Combatant
	B             Combatant
	FirstAttacker string
	Winner        *string // nil while both combatants stand
}

// Log renders every event with p, in order.
func (r Report) Log(p *message.Printer) []string {
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Narrate(p))
	}
	return out
}

// ResolveExchange runs one exchange between a and b: a coin flip for
// initiative, one attack, and a counter-attack if both still stand.
// Both combatants are mutated; the report carries snapshots of them.
func ResolveExchange(rng Rand, a, b *Combatant) Report {
	attacker, defender := a, b
	if rng.IntN(2) == 1 {
		attacker, defender = b, a
	}

	rep := Report{FirstAttacker: attacker.Name}
	if attacker.Alive() && defender.Alive() {
		rep.Events = append(rep.Events, strike(rng, attacker, defender, false))
	}
	if attacker.Alive() && defender.Alive() {
		rep.Events = append(rep.Events, strike(rng, defender, attacker, true))
	}

	rep.A, rep.B = *a, *b
	rep.Winner = winner(a, b)
	return rep
}

func strike(rng Rand, actor, target *Combatant, counter bool) Event {
	damage, special := actor.Attack(rng, target)
	return Event{
		Actor:   actor.Name,
		Target:  target.Name,
		Variant: actor.Variant,
		Damage:  damage,
		Special: special,
		Counter: counter,
	}
}

func winner(a, b *Combatant) *string {
	switch {
	case !a.Alive() && b.Alive():
		name := b.Name
		return &name
	case a.Alive() && !b.Alive():
		name := a.Name
		return &name
	default:
		return nil
	}
}
