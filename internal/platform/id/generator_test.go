package id

import (
	"strings"
	"testing"
)

func TestRandomGenerator(t *testing.T) {
	gen := NewRandomGenerator("p_")
	a, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID error: %v", err)
	}
	b, _ := gen.NewID()

	if !strings.HasPrefix(a, "p_") || len(a) != 2+32 {
		t.Fatalf("unexpected id %q", a)
	}
	if a == b {
		t.Fatalf("expected distinct ids")
	}
}

func TestSequenceGenerator(t *testing.T) {
	gen := NewSequenceGenerator("game")
	first, _ := gen.NewID()
	second, _ := gen.NewID()
	if first != "game-1" || second != "game-2" {
		t.Fatalf("got %q %q", first, second)
	}
}
