package model

var (
	rookDirs   = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	bishopDirs = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	queenDirs  = append(append([]Position{}, rookDirs...), bishopDirs...)
	kingDirs   = queenDirs
	knightDirs = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
)

// PseudoMoves returns the squares the piece on pos could move to by its own
// movement rules, without looking at whether its king ends up attacked.
// An empty square yields no moves.
func PseudoMoves(board *BoardState, pos Position) ([]Position, error) {
	piece, err := board.Get(pos)
	if err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, nil
	}
	return pseudoMoves(board, piece, pos), nil
}

func pseudoMoves(board *BoardState, piece *Piece, pos Position) []Position {
	switch piece.Type {
	case Pawn:
		return pawnMoves(board, piece, pos)
	case Knight:
		return stepMoves(board, piece, pos, knightDirs)
	case Bishop:
		return slideMoves(board, piece, pos, bishopDirs)
	case Rook:
		return slideMoves(board, piece, pos, rookDirs)
	case Queen:
		return slideMoves(board, piece, pos, queenDirs)
	case King:
		return stepMoves(board, piece, pos, kingDirs)
	default:
		return nil
	}
}

// slideMoves casts one ray per direction. Each ray stops at the first occupied
// square, which is included only when it holds an enemy piece.
func slideMoves(board *BoardState, piece *Piece, pos Position, dirs []Position) []Position {
	moves := []Position{}
	for _, dir := range dirs {
		for target := pos.add(dir); target.InBounds(); target = target.add(dir) {
			occupant := board.pieceAt(target)
			if occupant == nil {
				moves = append(moves, target)
				continue
			}
			if occupant.Color != piece.Color {
				moves = append(moves, target)
			}
			break
		}
	}
	return moves
}

func stepMoves(board *BoardState, piece *Piece, pos Position, offsets []Position) []Position {
	moves := []Position{}
	for _, offset := range offsets {
		target := pos.add(offset)
		if !target.InBounds() {
			continue
		}
		if occupant := board.pieceAt(target); occupant == nil || occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}

func pawnMoves(board *BoardState, piece *Piece, pos Position) []Position {
	moves := []Position{}
	dy := piece.Color.forward()

	one := Position{X: pos.X, Y: pos.Y + dy}
	if one.InBounds() && board.pieceAt(one) == nil {
		moves = append(moves, one)
		// the double step needs the square it passes over to be empty as well
		two := Position{X: pos.X, Y: pos.Y + 2*dy}
		if pos.Y == piece.Color.pawnStartRow() && two.InBounds() && board.pieceAt(two) == nil {
			moves = append(moves, two)
		}
	}

	for _, dx := range []int{-1, 1} {
		target := Position{X: pos.X + dx, Y: pos.Y + dy}
		if !target.InBounds() {
			continue
		}
		if occupant := board.pieceAt(target); occupant != nil && occupant.Color != piece.Color {
			moves = append(moves, target)
		}
	}
	return moves
}
