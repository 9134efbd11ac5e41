package model

import "golang.org/x/exp/slices"

// IsSquareAttacked reports whether a piece of color by could capture on pos
// with its next move. Whose turn it is does not matter.
func IsSquareAttacked(board *BoardState, pos Position, by Color) (bool, error) {
	if err := checkBounds(pos); err != nil {
		return false, err
	}
	return isSquareAttacked(board, pos, by), nil
}

func isSquareAttacked(board *BoardState, pos Position, by Color) bool {
	if rayHits(board, pos, by, rookDirs, Rook, Queen) {
		return true
	}
	if rayHits(board, pos, by, bishopDirs, Bishop, Queen) {
		return true
	}
	if stepHits(board, pos, by, knightDirs, Knight) {
		return true
	}
	if stepHits(board, pos, by, kingDirs, King) {
		return true
	}
	// an attacking pawn stands one row behind pos, seen from its direction of travel
	dy := -by.forward()
	for _, dx := range []int{-1, 1} {
		target := Position{X: pos.X + dx, Y: pos.Y + dy}
		if !target.InBounds() {
			continue
		}
		if occupant := board.pieceAt(target); occupant != nil && occupant.Color == by && occupant.Type == Pawn {
			return true
		}
	}
	return false
}

// rayHits walks each direction until the first occupied square and reports
// whether that square holds one of kinds owned by by.
func rayHits(board *BoardState, pos Position, by Color, dirs []Position, kinds ...PieceType) bool {
	for _, dir := range dirs {
		for target := pos.add(dir); target.InBounds(); target = target.add(dir) {
			occupant := board.pieceAt(target)
			if occupant == nil {
				continue
			}
			if occupant.Color == by && slices.Contains(kinds, occupant.Type) {
				return true
			}
			break
		}
	}
	return false
}

func stepHits(board *BoardState, pos Position, by Color, offsets []Position, kind PieceType) bool {
	for _, offset := range offsets {
		target := pos.add(offset)
		if !target.InBounds() {
			continue
		}
		if occupant := board.pieceAt(target); occupant != nil && occupant.Color == by && occupant.Type == kind {
			return true
		}
	}
	return false
}

// IsKingInCheck reports whether color's king is attacked. A side without a
// king is never in check.
func IsKingInCheck(board *BoardState, color Color) (bool, error) {
	kingPos, found, err := board.FindKing(color)
	if err != nil || !found {
		return false, err
	}
	return isSquareAttacked(board, kingPos, color.Opponent()), nil
}
