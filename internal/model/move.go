package model

import "fmt"

// Ply is one applied move. CapturedPiece is whatever left the board: the
// prior occupant of To for a displacement, or the jumped piece on
// CaptureSquare for a checkers jump.
type Ply struct {
	Piece         Symbol    `json:"piece"`
	Placed        Symbol    `json:"placed"`
	From          Position  `json:"from"`
	To            Position  `json:"to"`
	CapturedPiece Symbol    `json:"capturedPiece"`
	CaptureSquare *Position `json:"captureSquare"`
	Jump          bool      `json:"jump"`
	Notation      string    `json:"notation"`
}

// Promoted reports whether the piece changed on arrival.
func (p Ply) Promoted() bool {
	return p.Placed != p.Piece
}

func (p Ply) Captured() bool {
	return !p.CapturedPiece.IsEmpty()
}

// Line renders the ply in the saved-game format, e.g. "Pe2e4".
func (p Ply) Line() string {
	return fmt.Sprintf("%s%s%s", p.Piece, p.From.Notation(), p.To.Notation())
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
