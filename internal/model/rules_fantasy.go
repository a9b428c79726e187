package model

// Wizard: knight jumps plus single king steps. Neither part slides, so
// nothing blocks it.
func genWizard(b *BoardState, from Position, color PlayerColor) []Position {
	return append(genKnight(b, from, color), genKing(b, from, color)...)
}

func legalWizard(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalKnight(b, from, to, color) || legalKing(b, from, to, color)
}

// Dragon: rook slides, blocked as usual, plus knight jumps over anything.
func genDragon(b *BoardState, from Position, color PlayerColor) []Position {
	return append(genRook(b, from, color), genKnight(b, from, color)...)
}

func legalDragon(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalRook(b, from, to, color) || legalKnight(b, from, to, color)
}

var archerShots = []Position{{X: 2, Y: 2}, {X: 2, Y: -2}, {X: -2, Y: 2}, {X: -2, Y: -2}}

// Archer: bishop slides, plus a shot at an opponent exactly two diagonal
// squares away. The shot ignores whatever stands in between.
func genArcher(b *BoardState, from Position, color PlayerColor) []Position {
	moves := genBishop(b, from, color)
	for _, shot := range archerShots {
		target := from.add(shot)
		if boundaryCheck(target) && b.isOpponent(target, color) {
			moves = append(moves, target)
		}
	}
	return moves
}

func legalArcher(b *BoardState, from, to Position, color PlayerColor) bool {
	if legalBishop(b, from, to, color) {
		return true
	}
	return containsDir(archerShots, to.sub(from)) && b.isOpponent(to, color)
}
