package model

import "testing"

func sq(t *testing.T, notation string) Position {
	t.Helper()
	p, err := ParseSquare(notation)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", notation, err)
	}
	return p
}

// setup builds an empty board of variant with the given pieces placed.
func setup(t *testing.T, variant Variant, pieces map[string]Symbol) *BoardState {
	t.Helper()
	b := EmptyBoard(variant)
	for notation, s := range pieces {
		b.Place(sq(t, notation), s)
	}
	return b
}

func squares(t *testing.T, notations ...string) []Position {
	t.Helper()
	out := make([]Position, len(notations))
	for i, n := range notations {
		out[i] = sq(t, n)
	}
	return normalizeMoves(out)
}

func samePositions(a, b []Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
