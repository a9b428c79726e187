package model

import (
	"errors"
	"testing"
)

func TestNewBoardLayouts(t *testing.T) {
	chess, err := NewBoardState(Chess)
	if err != nil {
		t.Fatal(err)
	}
	wantChess := []string{
		"rwaqkawr",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"RWAQKAWR",
	}
	for i, row := range chess.Rows() {
		if row != wantChess[i] {
			t.Errorf("chess row %d = %q, want %q", i, row, wantChess[i])
		}
	}

	checkers, err := NewBoardState(Checkers)
	if err != nil {
		t.Fatal(err)
	}
	wantCheckers := []string{
		".b.b.b.b",
		"b.b.b.b.",
		".b.b.b.b",
		"........",
		"........",
		"W.W.W.W.",
		".W.W.W.W",
		"W.W.W.W.",
	}
	for i, row := range checkers.Rows() {
		if row != wantCheckers[i] {
			t.Errorf("checkers row %d = %q, want %q", i, row, wantCheckers[i])
		}
	}

	if _, err := NewBoardState("go"); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("NewBoardState(go) error = %v, want ErrUnknownVariant", err)
	}
}

func TestSymbolDecoding(t *testing.T) {
	tests := []struct {
		s       Symbol
		variant Variant
		typ     PieceType
		color   PlayerColor
	}{
		{'P', Chess, Pawn, PlayerColorWhite},
		{'h', Chess, Knight, PlayerColorBlack},
		{'W', Chess, Wizard, PlayerColorWhite},
		{'d', Chess, Dragon, PlayerColorBlack},
		{'A', Chess, Archer, PlayerColorWhite},
		{'W', Checkers, Man, PlayerColorWhite},
		{'b', Checkers, Man, PlayerColorBlack},
		{'K', Checkers, CheckerKing, PlayerColorWhite},
		{'k', Checkers, CheckerKing, PlayerColorBlack},
		{'x', Chess, NoPiece, PlayerColorBlack},
		{Empty, Chess, NoPiece, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.variant)+"/"+tt.s.String(), func(t *testing.T) {
			if got := tt.s.Type(tt.variant); got != tt.typ {
				t.Errorf("Type = %q, want %q", got, tt.typ)
			}
			if got := tt.s.Color(); got != tt.color {
				t.Errorf("Color = %q, want %q", got, tt.color)
			}
		})
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in   string
		want Variant
		err  bool
	}{
		{"", Chess, false},
		{"chess", Chess, false},
		{" Checkers ", Checkers, false},
		{"shogi", "", true},
	}
	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.err || got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b, _ := NewBoardState(Chess)
	if _, err := b.ApplyMove(PlayerColorWhite, sq(t, "e2"), sq(t, "e4")); err != nil {
		t.Fatal(err)
	}
	clone := b.Clone()
	clone.Undo()

	if b.At(sq(t, "e4")) != 'P' {
		t.Error("undo on clone changed the source board")
	}
	if !b.CanUndo() || b.CanRedo() {
		t.Error("undo on clone changed the source history")
	}
}
