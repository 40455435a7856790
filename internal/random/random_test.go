package random

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestNewDiffersBySeed(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 50; i++ {
		if a.IntN(1<<30) == b.IntN(1<<30) {
			same++
		}
	}
	if same == 50 {
		t.Fatal("expected different sequences for different seeds")
	}
}

func TestFromConfig(t *testing.T) {
	_, seed, err := FromConfig(7)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if seed != 7 {
		t.Fatalf("expected seed 7, got %d", seed)
	}

	_, seed, err = FromConfig(0)
	if err != nil {
		t.Fatalf("FromConfig(0): %v", err)
	}
	if seed == 0 {
		t.Fatal("expected a generated non-zero seed")
	}
}
