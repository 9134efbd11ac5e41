package model

// LegalMoves returns the pseudo-moves of the piece on pos that do not leave
// its own king attacked. The board is left exactly as it was found.
func LegalMoves(board *BoardState, pos Position) ([]Position, error) {
	piece, err := board.Get(pos)
	if err != nil {
		return nil, err
	}
	if piece == nil {
		return nil, nil
	}
	return filterLegalMoves(board, piece, pos, pseudoMoves(board, piece, pos))
}

func filterLegalMoves(board *BoardState, piece *Piece, from Position, pseudo []Position) ([]Position, error) {
	legalMoves := []Position{}
	for _, to := range pseudo {
		if occupant := board.pieceAt(to); occupant != nil && occupant.Color == piece.Color {
			continue
		}
		inCheck, err := leavesKingInCheck(board, piece.Color, Move{From: from, To: to})
		if err != nil {
			return nil, err
		}
		if !inCheck {
			legalMoves = append(legalMoves, to)
		}
	}
	return legalMoves, nil
}

// leavesKingInCheck plays move on board, tests color's king and takes the move
// back again before returning, whatever the outcome.
func leavesKingInCheck(board *BoardState, color Color, move Move) (bool, error) {
	captured, err := board.Apply(move)
	if err != nil {
		return false, err
	}
	defer board.Undo(move, captured)

	// located after the move so a king move is tested on its new square
	return IsKingInCheck(board, color)
}

// LegalMovesForColor lists every legal move available to color.
func LegalMovesForColor(board *BoardState, color Color) ([]Move, error) {
	legalMoves := []Move{}
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			piece := board.Board[y][x]
			if piece == nil || piece.Color != color {
				continue
			}
			from := Pos(y, x)
			destinations, err := filterLegalMoves(board, piece, from, pseudoMoves(board, piece, from))
			if err != nil {
				return nil, err
			}
			for _, to := range destinations {
				legalMoves = append(legalMoves, Move{From: from, To: to})
			}
		}
	}
	return legalMoves, nil
}
