package model

func pawnStartRow(color PlayerColor) int {
	if color == PlayerColorWhite {
		return 6
	}
	return 1
}

func genPawn(b *BoardState, from Position, color PlayerColor) []Position {
	pawnMoves := []Position{}
	dir := forward(color)
	// Check move forward 1
	one := Position{X: from.X, Y: from.Y + dir}
	if boundaryCheck(one) && b.isEmpty(one) {
		pawnMoves = append(pawnMoves, one)
		// Check move forward 2 from the starting rank
		two := Position{X: from.X, Y: from.Y + 2*dir}
		if from.Y == pawnStartRow(color) && b.isEmpty(two) {
			pawnMoves = append(pawnMoves, two)
		}
	}
	// Diagonal captures, no en passant
	for _, dx := range []int{-1, 1} {
		target := Position{X: from.X + dx, Y: from.Y + dir}
		if boundaryCheck(target) && b.isOpponent(target, color) {
			pawnMoves = append(pawnMoves, target)
		}
	}
	return pawnMoves
}

func legalPawn(b *BoardState, from, to Position, color PlayerColor) bool {
	dir := forward(color)
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == 0 && dy == dir:
		return b.isEmpty(to)
	case dx == 0 && dy == 2*dir:
		return from.Y == pawnStartRow(color) &&
			b.isEmpty(Position{X: from.X, Y: from.Y + dir}) &&
			b.isEmpty(to)
	case abs(dx) == 1 && dy == dir:
		return b.isOpponent(to, color)
	}
	return false
}

func genKnight(b *BoardState, from Position, color PlayerColor) []Position {
	return genSteps(b, from, color, knightDirs)
}

func legalKnight(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalStep(b, from, to, color, knightDirs)
}

func genBishop(b *BoardState, from Position, color PlayerColor) []Position {
	return genSlides(b, from, color, bishopDirs)
}

func legalBishop(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalSlide(b, from, to, color, bishopDirs)
}

func genRook(b *BoardState, from Position, color PlayerColor) []Position {
	return genSlides(b, from, color, rookDirs)
}

func legalRook(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalSlide(b, from, to, color, rookDirs)
}

func genQueen(b *BoardState, from Position, color PlayerColor) []Position {
	return append(genBishop(b, from, color), genRook(b, from, color)...)
}

func legalQueen(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalRook(b, from, to, color) || legalBishop(b, from, to, color)
}

func genKing(b *BoardState, from Position, color PlayerColor) []Position {
	return genSteps(b, from, color, kingDirs)
}

func legalKing(b *BoardState, from, to Position, color PlayerColor) bool {
	return legalStep(b, from, to, color, kingDirs)
}
