package combat

import "testing"

// scriptedRand replays fixed draws. IntN values are returned as-is and must
// already lie in [0, n).
type scriptedRand struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func (s *scriptedRand) IntN(n int) int {
	s.t.Helper()
	if len(s.ints) == 0 {
		s.t.Fatalf("scriptedRand: no IntN(%d) draw left", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scriptedRand: IntN(%d) scripted %d out of range", n, v)
	}
	return v
}

func (s *scriptedRand) Float64() float64 {
	s.t.Helper()
	if len(s.floats) == 0 {
		s.t.Fatal("scriptedRand: no Float64 draw left")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func mustCreate(t *testing.T, name string, v Variant) *Combatant {
	t.Helper()
	c, err := NewCombatant(name, v)
	if err != nil {
		t.Fatalf("NewCombatant(%q, %v): %v", name, v, err)
	}
	return c
}

func dummy() *Combatant {
	return &Combatant{Name: "dummy", HP: 1 << 30, MaxHP: 1 << 30}
}
