package model

// Undo takes back the last move. It returns false when there is nothing to
// undo. The moved piece goes back as it was before any promotion.
func (b *BoardState) Undo() bool {
	if len(b.history) == 0 {
		return false
	}
	ply := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	if ply.Jump {
		b.set(*ply.CaptureSquare, ply.CapturedPiece)
		b.set(ply.To, Empty)
	} else {
		b.set(ply.To, ply.CapturedPiece)
	}
	b.set(ply.From, ply.Piece)

	b.redo = append(b.redo, ply)
	return true
}

// Redo replays the most recently undone move. It returns false when the
// redo buffer is empty, which is always the case after a fresh move.
func (b *BoardState) Redo() bool {
	if len(b.redo) == 0 {
		return false
	}
	ply := b.redo[len(b.redo)-1]
	b.redo = b.redo[:len(b.redo)-1]

	if ply.Jump {
		b.set(*ply.CaptureSquare, Empty)
	}
	b.set(ply.To, ply.Placed)
	b.set(ply.From, Empty)

	b.history = append(b.history, ply)
	return true
}
