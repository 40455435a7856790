package printout

import (
	"bytes"
	"testing"

	"minigames/internal/combat"
)

func mustCreate(t *testing.T, name, class string) *combat.Combatant {
	t.Helper()
	c, err := combat.Create(name, class)
	if err != nil {
		t.Fatalf("Create(%q, %q): %v", name, class, err)
	}
	return c
}

func assertPDF(t *testing.T, b []byte) {
	t.Helper()
	if len(b) < 100 {
		t.Errorf("PDF too short: %d bytes", len(b))
	}
	if !bytes.HasPrefix(b, []byte("%PDF")) {
		t.Error("output is not a PDF (missing %PDF header)")
	}
}

func TestCharacterSheet(t *testing.T) {
	for _, class := range []string{"warrior", "mage"} {
		t.Run(class, func(t *testing.T) {
			b, err := CharacterSheet(*mustCreate(t, "Éowyn", class))
			if err != nil {
				t.Fatalf("CharacterSheet: %v", err)
			}
			assertPDF(t, b)
		})
	}
}

func TestCharacterSheet_Fallen(t *testing.T) {
	c := mustCreate(t, "Boromir", "warrior")
	c.ApplyDamage(500)
	b, err := CharacterSheet(*c)
	if err != nil {
		t.Fatalf("CharacterSheet: %v", err)
	}
	assertPDF(t, b)
}

type fixedRand struct{}

func (fixedRand) IntN(int) int     { return 0 }
func (fixedRand) Float64() float64 { return 0.99 }

func TestDuel(t *testing.T) {
	a := mustCreate(t, "Arthur", "warrior")
	b := mustCreate(t, "Merlin", "mage")
	startA, startB := *a, *b

	var rounds []combat.Report
	for i := 0; i < 10; i++ {
		rep := combat.ResolveExchange(fixedRand{}, a, b)
		rounds = append(rounds, rep)
		if rep.Winner != nil {
			break
		}
	}
	out, err := Duel("", startA, startB, rounds)
	if err != nil {
		t.Fatalf("Duel: %v", err)
	}
	assertPDF(t, out)
}

func TestDuel_ManyRoundsPaginates(t *testing.T) {
	a := mustCreate(t, "A", "warrior")
	b := mustCreate(t, "B", "warrior")
	rep := combat.Report{
		Events: []combat.Event{{Actor: "A", Target: "B", Damage: 1}, {Actor: "B", Target: "A", Damage: 1, Counter: true}},
		A:      *a,
		B:      *b,
	}
	rounds := make([]combat.Report, 80)
	for i := range rounds {
		rounds[i] = rep
	}
	single, err := Duel("short", *a, *b, rounds[:1])
	if err != nil {
		t.Fatalf("Duel: %v", err)
	}
	long, err := Duel("long", *a, *b, rounds)
	if err != nil {
		t.Fatalf("Duel: %v", err)
	}
	assertPDF(t, long)
	if len(long) <= len(single) {
		t.Errorf("80-round record (%d bytes) not larger than 1-round record (%d bytes)", len(long), len(single))
	}
}

func TestAttackLines(t *testing.T) {
	mage := mustCreate(t, "Merlin", "mage")
	lines := attackLines(*mage)
	want := []string{"Attack: 32-42 damage", "Power spell: 50-60 damage, 20% chance"}
	if len(lines) != len(want) {
		t.Fatalf("attackLines = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
