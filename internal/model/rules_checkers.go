package model

// promotionRow is the farthest rank for a side; a man landing there is crowned.
func promotionRow(color PlayerColor) int {
	if color == PlayerColorWhite {
		return 0
	}
	return 7
}

func genMan(b *BoardState, from Position, color PlayerColor) []Position {
	moves := []Position{}
	dir := forward(color)
	for _, dx := range []int{-1, 1} {
		target := Position{X: from.X + dx, Y: from.Y + dir}
		if boundaryCheck(target) && b.isEmpty(target) {
			moves = append(moves, target)
		}
	}
	for _, dx := range []int{-2, 2} {
		target := Position{X: from.X + dx, Y: from.Y + 2*dir}
		mid := Position{X: from.X + dx/2, Y: from.Y + dir}
		if boundaryCheck(target) && b.isOpponent(mid, color) && b.isEmpty(target) {
			moves = append(moves, target)
		}
	}
	return moves
}

func legalMan(b *BoardState, from, to Position, color PlayerColor) bool {
	dir := forward(color)
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case abs(dx) == 1 && dy == dir:
		return b.isEmpty(to)
	case abs(dx) == 2 && dy == 2*dir:
		mid := Position{X: from.X + dx/2, Y: from.Y + dir}
		return b.isOpponent(mid, color) && b.isEmpty(to)
	}
	return false
}

// genCheckerKing slides along each diagonal over empty squares. The first
// piece met ends the ray; if it is an opponent, the empty square right
// behind it is a capture landing.
func genCheckerKing(b *BoardState, from Position, color PlayerColor) []Position {
	moves := []Position{}
	for _, dir := range bishopDirs {
		target := from.add(dir)
		for boundaryCheck(target) {
			if b.isEmpty(target) {
				moves = append(moves, target)
				target = target.add(dir)
				continue
			}
			if b.isOpponent(target, color) {
				beyond := target.add(dir)
				if boundaryCheck(beyond) && b.isEmpty(beyond) {
					moves = append(moves, beyond)
				}
			}
			break
		}
	}
	return moves
}

func legalCheckerKing(b *BoardState, from, to Position, color PlayerColor) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	if abs(dx) != abs(dy) || dx == 0 {
		return false
	}
	if !b.isEmpty(to) {
		return false
	}
	step := Position{X: sign(dx), Y: sign(dy)}
	var captured *Position
	for cur := from.add(step); cur != to; cur = cur.add(step) {
		if b.isEmpty(cur) {
			continue
		}
		if captured != nil || !b.isOpponent(cur, color) {
			return false
		}
		sq := cur
		captured = &sq
	}
	// a jumped piece must sit right before the landing square
	return captured == nil || *captured == to.sub(step)
}
