package model

import "slices"

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

// pieceRule is the movement logic for one piece type. legal and generate
// must agree: to is in generate(...) exactly when legal(..., to, ...) holds.
type pieceRule struct {
	legal    func(b *BoardState, from, to Position, color PlayerColor) bool
	generate func(b *BoardState, from Position, color PlayerColor) []Position
}

var pieceRules = map[PieceType]pieceRule{
	Pawn:        {legal: legalPawn, generate: genPawn},
	Knight:      {legal: legalKnight, generate: genKnight},
	Bishop:      {legal: legalBishop, generate: genBishop},
	Rook:        {legal: legalRook, generate: genRook},
	Queen:       {legal: legalQueen, generate: genQueen},
	King:        {legal: legalKing, generate: genKing},
	Wizard:      {legal: legalWizard, generate: genWizard},
	Dragon:      {legal: legalDragon, generate: genDragon},
	Archer:      {legal: legalArcher, generate: genArcher},
	Man:         {legal: legalMan, generate: genMan},
	CheckerKing: {legal: legalCheckerKing, generate: genCheckerKing},
}

// IsLegal checks the geometry, blocking and occupancy rules for the piece
// standing on from. The owner is read from the board, not supplied.
func (b *BoardState) IsLegal(from, to Position) bool {
	if !boundaryCheck(from) || !boundaryCheck(to) || from == to {
		return false
	}
	piece := b.At(from)
	rule, ok := pieceRules[piece.Type(b.Variant)]
	if !ok {
		return false
	}
	return rule.legal(b, from, to, piece.Color())
}

// GenerateMoves lists every destination the piece on from can reach, sorted
// rank 8 first. An empty square yields no moves.
func (b *BoardState) GenerateMoves(from Position) []Position {
	if !boundaryCheck(from) {
		return nil
	}
	piece := b.At(from)
	rule, ok := pieceRules[piece.Type(b.Variant)]
	if !ok {
		return nil
	}
	return normalizeMoves(rule.generate(b, from, piece.Color()))
}

func normalizeMoves(moves []Position) []Position {
	slices.SortFunc(moves, func(a, b Position) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return slices.Compact(moves)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// forward is the row direction a side advances in: white moves up the board.
func forward(color PlayerColor) int {
	if color == PlayerColorWhite {
		return -1
	}
	return 1
}

func containsDir(dirs []Position, d Position) bool {
	for _, dir := range dirs {
		if dir == d {
			return true
		}
	}
	return false
}

// genSteps is the shared generator for pieces that jump to fixed offsets.
func genSteps(b *BoardState, from Position, color PlayerColor, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		targetPos := from.add(dir)
		if boundaryCheck(targetPos) && b.canLand(targetPos, color) {
			moves = append(moves, targetPos)
		}
	}
	return moves
}

func legalStep(b *BoardState, from, to Position, color PlayerColor, dirs []Position) bool {
	return containsDir(dirs, to.sub(from)) && b.canLand(to, color)
}

// genSlides walks each ray until the edge or the first occupied square,
// which is included only when it holds an opponent.
func genSlides(b *BoardState, from Position, color PlayerColor, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		targetPos := from.add(dir)
		for boundaryCheck(targetPos) {
			if b.isEmpty(targetPos) {
				moves = append(moves, targetPos)
			} else if b.isOpponent(targetPos, color) {
				moves = append(moves, targetPos)
				break
			} else {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return moves
}

func legalSlide(b *BoardState, from, to Position, color PlayerColor, dirs []Position) bool {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx != 0 && dy != 0 && abs(dx) != abs(dy) {
		return false
	}
	step := Position{X: sign(dx), Y: sign(dy)}
	if !containsDir(dirs, step) {
		return false
	}
	for cur := from.add(step); cur != to; cur = cur.add(step) {
		if !b.isEmpty(cur) {
			return false
		}
	}
	return b.canLand(to, color)
}
