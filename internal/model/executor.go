package model

import "fmt"

// ApplyMove validates and plays a move for owner. Nothing on the board
// changes unless the returned error is nil.
func (b *BoardState) ApplyMove(owner PlayerColor, from, to Position) (Ply, error) {
	if !boundaryCheck(from) || !boundaryCheck(to) {
		return Ply{}, fmt.Errorf("%w: %s to %s is off the board", ErrIllegalMove, from, to)
	}
	piece := b.At(from)
	if piece.IsEmpty() {
		return Ply{}, fmt.Errorf("%w: %s", ErrNoPieceAtSource, from.Notation())
	}
	if piece.Color() != owner {
		return Ply{}, fmt.Errorf("%w: %s on %s", ErrWrongOwner, piece, from.Notation())
	}
	if !b.IsLegal(from, to) {
		return Ply{}, fmt.Errorf("%w: %s%s%s", ErrIllegalMove, piece, from.Notation(), to.Notation())
	}
	ply := b.apply(from, to)
	b.history = append(b.history, ply)
	b.redo = nil
	return ply, nil
}

// apply moves the piece and builds the record. It trusts its input.
func (b *BoardState) apply(from, to Position) Ply {
	piece := b.At(from)
	ply := Ply{
		Piece:  piece,
		Placed: piece,
		From:   from,
		To:     to,
	}
	if sq, ok := b.jumpedSquare(from, to); ok {
		ply.Jump = true
		ply.CaptureSquare = &sq
		ply.CapturedPiece = b.At(sq)
		b.set(sq, Empty)
	} else {
		ply.CapturedPiece = b.At(to)
		if !ply.CapturedPiece.IsEmpty() {
			ply.CaptureSquare = &to
		}
	}
	ply.Placed = b.promotion(piece, to)
	b.set(to, ply.Placed)
	b.set(from, Empty)
	ply.Notation = ply.Line()
	return ply
}

// jumpedSquare finds the piece a checkers move passes over. A diagonal of
// two or more rows captures the piece standing right before the landing
// square; legality already guarantees it is an opponent.
func (b *BoardState) jumpedSquare(from, to Position) (Position, bool) {
	if b.Variant != Checkers {
		return Position{}, false
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) != abs(dy) || abs(dy) < 2 {
		return Position{}, false
	}
	sq := Position{X: to.X - sign(dx), Y: to.Y - sign(dy)}
	if b.isEmpty(sq) {
		return Position{}, false
	}
	return sq, true
}

// promotion crowns a checkers man that reaches the far rank.
// Chess pawns stay pawns.
func (b *BoardState) promotion(piece Symbol, to Position) Symbol {
	if b.Variant != Checkers || piece.Type(Checkers) != Man {
		return piece
	}
	if to.Y != promotionRow(piece.Color()) {
		return piece
	}
	return kingFor(piece.Color())
}
