package model

import (
	"strings"
	"unicode"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"

	Wizard PieceType = "wizard"
	Dragon PieceType = "dragon"
	Archer PieceType = "archer"

	Man         PieceType = "man"
	CheckerKing PieceType = "checkerKing"

	NoPiece PieceType = ""
)

type Variant string

const (
	Chess    Variant = "chess"
	Checkers Variant = "checkers"
)

func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case Chess, "":
		return Chess, nil
	case Checkers:
		return Checkers, nil
	}
	return "", ErrUnknownVariant
}

// Symbol is a single board cell. Letter case carries the owner: upper case
// is white, lower case is black.
type Symbol byte

const Empty Symbol = '.'

var chessSymbols = map[byte]PieceType{
	'p': Pawn,
	'h': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
	'k': King,
	'w': Wizard,
	'd': Dragon,
	'a': Archer,
}

func (s Symbol) IsEmpty() bool {
	return s == Empty || s == 0
}

func (s Symbol) Color() PlayerColor {
	switch {
	case s.IsEmpty():
		return ""
	case unicode.IsUpper(rune(s)):
		return PlayerColorWhite
	default:
		return PlayerColorBlack
	}
}

// Type resolves the piece kind for the given variant. The same letter can
// mean different pieces in chess and checkers.
func (s Symbol) Type(v Variant) PieceType {
	if s.IsEmpty() {
		return NoPiece
	}
	lower := byte(unicode.ToLower(rune(s)))
	if v == Checkers {
		if lower == 'k' {
			return CheckerKing
		}
		return Man
	}
	if pt, ok := chessSymbols[lower]; ok {
		return pt
	}
	return NoPiece
}

func (s Symbol) String() string {
	if s == 0 {
		return string(Empty)
	}
	return string(rune(s))
}

func (s Symbol) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Symbol) UnmarshalText(text []byte) error {
	if len(text) != 1 {
		return ErrInvalidSymbol
	}
	*s = Symbol(text[0])
	return nil
}

// checkers symbols
const (
	whiteMan  Symbol = 'W'
	blackMan  Symbol = 'b'
	whiteKing Symbol = 'K'
	blackKing Symbol = 'k'
)

func kingFor(c PlayerColor) Symbol {
	if c == PlayerColorWhite {
		return whiteKing
	}
	return blackKing
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) sub(d Position) Position {
	return Position{X: p.X - d.X, Y: p.Y - d.Y}
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

// BoardState owns the grid and the move log. Only the executor and the
// history methods mutate it.
type BoardState struct {
	Variant Variant
	Board   [8][8]Symbol
	history []Ply
	redo    []Ply
}

const chessLayout = `rwaqkawr
pppppppp
........
........
........
........
PPPPPPPP
RWAQKAWR`

func NewBoardState(variant Variant) (*BoardState, error) {
	switch variant {
	case Chess:
		return newChessBoard(), nil
	case Checkers:
		return newCheckersBoard(), nil
	}
	return nil, ErrUnknownVariant
}

func newChessBoard() *BoardState {
	board := &BoardState{Variant: Chess}
	for y, line := range strings.Split(chessLayout, "\n") {
		for x := 0; x < 8; x++ {
			board.Board[y][x] = Symbol(line[x])
		}
	}
	return board
}

func newCheckersBoard() *BoardState {
	board := &BoardState{Variant: Checkers}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			board.Board[y][x] = Empty
			if (x+y)%2 == 0 {
				continue
			}
			if y < 3 {
				board.Board[y][x] = blackMan
			} else if y > 4 {
				board.Board[y][x] = whiteMan
			}
		}
	}
	return board
}

// EmptyBoard returns a board of the given variant with no pieces, for
// setting up positions by hand.
func EmptyBoard(variant Variant) *BoardState {
	board := &BoardState{Variant: variant}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			board.Board[y][x] = Empty
		}
	}
	return board
}

func (b *BoardState) At(p Position) Symbol {
	return b.Board[p.Y][p.X]
}

// Place puts a symbol on a square without recording history. It is meant
// for building positions before play starts.
func (b *BoardState) Place(p Position, s Symbol) {
	b.set(p, s)
}

func (b *BoardState) set(p Position, s Symbol) {
	b.Board[p.Y][p.X] = s
}

func (b *BoardState) isEmpty(p Position) bool {
	return b.At(p).IsEmpty()
}

func (b *BoardState) isOpponent(p Position, color PlayerColor) bool {
	s := b.At(p)
	return !s.IsEmpty() && s.Color() != color
}

// canLand reports whether a piece of color may end on p: the square is
// empty or holds an opponent.
func (b *BoardState) canLand(p Position, color PlayerColor) bool {
	s := b.At(p)
	return s.IsEmpty() || s.Color() != color
}

func (b *BoardState) History() []Ply {
	return append([]Ply(nil), b.history...)
}

func (b *BoardState) CanUndo() bool {
	return len(b.history) > 0
}

func (b *BoardState) CanRedo() bool {
	return len(b.redo) > 0
}

func (b *BoardState) LastPly() (Ply, bool) {
	if len(b.history) == 0 {
		return Ply{}, false
	}
	return b.history[len(b.history)-1], true
}

// Clone returns an independent copy, including both history stacks.
func (b *BoardState) Clone() *BoardState {
	clone := *b
	clone.history = append([]Ply(nil), b.history...)
	clone.redo = append([]Ply(nil), b.redo...)
	return &clone
}

// Rows renders the grid top rank first, one string per row.
func (b *BoardState) Rows() []string {
	rows := make([]string, 8)
	for y := 0; y < 8; y++ {
		var sb strings.Builder
		for x := 0; x < 8; x++ {
			sb.WriteString(b.Board[y][x].String())
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b *BoardState) String() string {
	return strings.Join(b.Rows(), "\n")
}
