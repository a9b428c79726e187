package model

import (
	"fmt"
	"strings"
)

// ParseSquare maps algebraic notation such as "e2" to a board position.
// The file letter is case-insensitive; anything off the 8x8 board is rejected.
func ParseSquare(notation string) (Position, error) {
	if len(notation) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	file := strings.ToLower(notation[:1])[0]
	rank := notation[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidNotation, notation)
	}
	return Position{X: int(file - 'a'), Y: 8 - int(rank-'0')}, nil
}

func (p Position) Notation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) String() string {
	if !boundaryCheck(p) {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.Notation()
}

func notations(ps []Position) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Notation()
	}
	return out
}
