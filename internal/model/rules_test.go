package model

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestGenerateMoves(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		pieces  map[string]Symbol
		from    string
		want    []string
	}{
		{
			name:    "rook open board",
			variant: Chess,
			pieces:  map[string]Symbol{"d4": 'R'},
			from:    "d4",
			want:    []string{"d8", "d7", "d6", "d5", "a4", "b4", "c4", "e4", "f4", "g4", "h4", "d3", "d2", "d1"},
		},
		{
			name:    "rook stops at own piece and captures opponent",
			variant: Chess,
			pieces:  map[string]Symbol{"d4": 'R', "d6": 'P', "f4": 'p', "b4": 'p'},
			from:    "d4",
			want:    []string{"d5", "b4", "c4", "e4", "f4", "d3", "d2", "d1"},
		},
		{
			name:    "bishop corner",
			variant: Chess,
			pieces:  map[string]Symbol{"a1": 'B', "d4": 'p'},
			from:    "a1",
			want:    []string{"d4", "c3", "b2"},
		},
		{
			name:    "queen boxed in",
			variant: Chess,
			pieces:  map[string]Symbol{"a1": 'Q', "a2": 'P', "b1": 'P', "b2": 'p'},
			from:    "a1",
			want:    []string{"b2"},
		},
		{
			name:    "king edge",
			variant: Chess,
			pieces:  map[string]Symbol{"h1": 'K', "g2": 'P', "h2": 'r'},
			from:    "h1",
			want:    []string{"h2", "g1"},
		},
		{
			name:    "knight jumps over neighbours",
			variant: Chess,
			pieces:  map[string]Symbol{"b1": 'H', "a2": 'P', "b2": 'P', "c2": 'P', "d2": 'P', "c3": 'p'},
			from:    "b1",
			want:    []string{"a3", "c3"},
		},
		{
			name:    "white pawn start rank",
			variant: Chess,
			pieces:  map[string]Symbol{"e2": 'P', "d3": 'p', "f3": 'P'},
			from:    "e2",
			want:    []string{"e4", "d3", "e3"},
		},
		{
			name:    "pawn double step blocked",
			variant: Chess,
			pieces:  map[string]Symbol{"e2": 'P', "e3": 'p'},
			from:    "e2",
			want:    []string{},
		},
		{
			name:    "pawn off start rank",
			variant: Chess,
			pieces:  map[string]Symbol{"e3": 'P'},
			from:    "e3",
			want:    []string{"e4"},
		},
		{
			name:    "black pawn moves down",
			variant: Chess,
			pieces:  map[string]Symbol{"c7": 'p', "b6": 'P', "c5": 'P'},
			from:    "c7",
			want:    []string{"b6", "c6"},
		},
		{
			name:    "wizard knight plus king",
			variant: Chess,
			pieces:  map[string]Symbol{"a1": 'W', "a2": 'P'},
			from:    "a1",
			want:    []string{"b3", "b2", "c2", "b1"},
		},
		{
			name:    "dragon slides blocked but jumps",
			variant: Chess,
			pieces:  map[string]Symbol{"a1": 'D', "a2": 'P', "b1": 'P'},
			from:    "a1",
			want:    []string{"b3", "c2"},
		},
		{
			name:    "archer shot over own piece",
			variant: Chess,
			pieces:  map[string]Symbol{"c1": 'A', "b2": 'P', "d2": 'P', "e3": 'p', "a3": 'P'},
			from:    "c1",
			want:    []string{"e3"},
		},
		{
			name:    "white man",
			variant: Checkers,
			pieces:  map[string]Symbol{"c3": 'W', "b4": 'W'},
			from:    "c3",
			want:    []string{"d4"},
		},
		{
			name:    "white man jump",
			variant: Checkers,
			pieces:  map[string]Symbol{"c3": 'W', "d4": 'b', "b4": 'b', "a5": 'b'},
			from:    "c3",
			want:    []string{"e5"},
		},
		{
			name:    "black man moves down",
			variant: Checkers,
			pieces:  map[string]Symbol{"d6": 'b', "c5": 'W'},
			from:    "d6",
			want:    []string{"e5", "b4"},
		},
		{
			name:    "checker king ray with capture",
			variant: Checkers,
			pieces:  map[string]Symbol{"a1": 'K', "d4": 'b'},
			from:    "a1",
			want:    []string{"b2", "c3", "e5"},
		},
		{
			name:    "checker king two in a row",
			variant: Checkers,
			pieces:  map[string]Symbol{"a1": 'K', "d4": 'b', "e5": 'b'},
			from:    "a1",
			want:    []string{"b2", "c3"},
		},
		{
			name:    "checker king own piece",
			variant: Checkers,
			pieces:  map[string]Symbol{"c3": 'K', "d4": 'W', "b2": 'b'},
			from:    "c3",
			want:    []string{"a1", "b4", "a5", "d2", "e1"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t, tt.variant, tt.pieces)
			got := b.GenerateMoves(sq(t, tt.from))
			want := squares(t, tt.want...)
			if !samePositions(got, want) {
				t.Errorf("GenerateMoves(%s) = %v, want %v", tt.from, got, want)
			}
		})
	}
}

func TestIsLegal(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		pieces  map[string]Symbol
		from    string
		to      string
		want    bool
	}{
		{"rook through piece", Chess, map[string]Symbol{"d4": 'R', "d6": 'p'}, "d4", "d7", false},
		{"rook captures", Chess, map[string]Symbol{"d4": 'R', "d6": 'p'}, "d4", "d6", true},
		{"rook diagonal", Chess, map[string]Symbol{"d4": 'R'}, "d4", "e5", false},
		{"rook own piece", Chess, map[string]Symbol{"d4": 'R', "d6": 'P'}, "d4", "d6", false},
		{"bishop straight", Chess, map[string]Symbol{"d4": 'B'}, "d4", "d5", false},
		{"queen knight shape", Chess, map[string]Symbol{"d4": 'Q'}, "d4", "e6", false},
		{"same square", Chess, map[string]Symbol{"d4": 'Q'}, "d4", "d4", false},
		{"empty source", Chess, nil, "d4", "d5", false},
		{"pawn straight capture", Chess, map[string]Symbol{"e2": 'P', "e3": 'p'}, "e2", "e3", false},
		{"pawn diagonal quiet", Chess, map[string]Symbol{"e2": 'P'}, "e2", "d3", false},
		{"pawn backwards", Chess, map[string]Symbol{"e4": 'P'}, "e4", "e3", false},
		{"dragon jumps over blocker", Chess, map[string]Symbol{"d4": 'D', "d5": 'P'}, "d4", "e6", true},
		{"dragon slides through blocker", Chess, map[string]Symbol{"d4": 'D', "d5": 'P'}, "d4", "d7", false},
		{"archer shot needs opponent", Chess, map[string]Symbol{"c1": 'A', "d2": 'P'}, "c1", "e3", false},
		{"archer shot at own piece", Chess, map[string]Symbol{"c1": 'A', "e3": 'P'}, "c1", "e3", false},
		{"archer shot ignores blocker", Chess, map[string]Symbol{"c1": 'A', "d2": 'p', "e3": 'p'}, "c1", "e3", true},
		{"archer slide blocked", Chess, map[string]Symbol{"c1": 'A', "d2": 'p'}, "c1", "f4", false},
		{"man backwards", Checkers, map[string]Symbol{"c3": 'W'}, "c3", "b2", false},
		{"man jump own piece", Checkers, map[string]Symbol{"c3": 'W', "d4": 'W'}, "c3", "e5", false},
		{"man jump onto piece", Checkers, map[string]Symbol{"c3": 'W', "d4": 'b', "e5": 'b'}, "c3", "e5", false},
		{"man jump empty midpoint", Checkers, map[string]Symbol{"c3": 'W'}, "c3", "e5", false},
		{"man straight", Checkers, map[string]Symbol{"c3": 'W'}, "c3", "c4", false},
		{"king long capture", Checkers, map[string]Symbol{"a1": 'K', "d4": 'b'}, "a1", "e5", true},
		{"king lands far beyond capture", Checkers, map[string]Symbol{"a1": 'K', "d4": 'b'}, "a1", "f6", false},
		{"king over own piece", Checkers, map[string]Symbol{"a1": 'K', "c3": 'W'}, "a1", "d4", false},
		{"king over two", Checkers, map[string]Symbol{"a1": 'K', "c3": 'b', "e5": 'b'}, "a1", "f6", false},
		{"king not diagonal", Checkers, map[string]Symbol{"a1": 'K'}, "a1", "a4", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := setup(t, tt.variant, tt.pieces)
			if got := b.IsLegal(sq(t, tt.from), sq(t, tt.to)); got != tt.want {
				t.Errorf("IsLegal(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func randomBoard(r *rand.Rand, variant Variant, alphabet string, density float64) *BoardState {
	b := EmptyBoard(variant)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if r.Float64() < density {
				b.Board[y][x] = Symbol(alphabet[r.IntN(len(alphabet))])
			}
		}
	}
	return b
}

var consistencyCases = []struct {
	variant  Variant
	alphabet string
}{
	{Chess, "phbrqkwdaPHBRQKWDA"},
	{Checkers, "WbKk"},
}

// Every destination accepted by IsLegal must be generated and vice versa.
func TestLegalMatchesGenerated(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, tc := range consistencyCases {
		t.Run(string(tc.variant), func(t *testing.T) {
			for i := 0; i < 300; i++ {
				b := randomBoard(r, tc.variant, tc.alphabet, 0.1+r.Float64()*0.5)
				for y := 0; y < 8; y++ {
					for x := 0; x < 8; x++ {
						from := Position{X: x, Y: y}
						if b.At(from).IsEmpty() {
							continue
						}
						generated := b.GenerateMoves(from)
						for ty := 0; ty < 8; ty++ {
							for tx := 0; tx < 8; tx++ {
								to := Position{X: tx, Y: ty}
								legal := b.IsLegal(from, to)
								if legal != slices.Contains(generated, to) {
									t.Fatalf("%s %s->%s: IsLegal=%v generated=%v\n%s",
										b.At(from), from, to, legal, generated, b)
								}
							}
						}
					}
				}
			}
		})
	}
}

func TestGenerateMovesEmptySquare(t *testing.T) {
	b, _ := NewBoardState(Chess)
	if moves := b.GenerateMoves(sq(t, "e4")); len(moves) != 0 {
		t.Errorf("GenerateMoves on empty square = %v", moves)
	}
}
