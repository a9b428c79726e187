package model

import "slices"

// AttackersOf lists the squares of every piece not owned by defender whose
// generated moves include target. Results are ordered rank 8 first.
func (b *BoardState) AttackersOf(target Position, defender PlayerColor) []Position {
	attackers := []Position{}
	if !boundaryCheck(target) {
		return attackers
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			from := Position{X: x, Y: y}
			piece := b.At(from)
			if piece.IsEmpty() || piece.Color() == defender {
				continue
			}
			if slices.Contains(b.GenerateMoves(from), target) {
				attackers = append(attackers, from)
			}
		}
	}
	return attackers
}
