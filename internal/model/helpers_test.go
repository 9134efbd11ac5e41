package model

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// sortPositions lets cmp compare destination lists as sets.
var sortPositions = cmpopts.SortSlices(func(a, b Position) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
})

func assertSameSquares(t *testing.T, got, want []Position) {
	t.Helper()
	if diff := cmp.Diff(want, got, sortPositions, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("squares mismatch (-want +got):\n%s", diff)
	}
}

func wp(kind PieceType) *Piece { return &Piece{Type: kind, Color: White} }
func bp(kind PieceType) *Piece { return &Piece{Type: kind, Color: Black} }

// boardWith builds an otherwise empty board.
func boardWith(t *testing.T, pieces map[Position]*Piece) *BoardState {
	t.Helper()
	board := NewEmptyBoard()
	for pos, piece := range pieces {
		if err := board.Place(pos, piece); err != nil {
			t.Fatalf("Place(%s): %v", pos, err)
		}
	}
	return board
}

// snapshot records which piece pointer sits on every square.
func snapshot(board *BoardState) [boardSize][boardSize]*Piece {
	return board.Board
}

func assertUnchanged(t *testing.T, board *BoardState, before [boardSize][boardSize]*Piece) {
	t.Helper()
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			if board.Board[y][x] != before[y][x] {
				t.Fatalf("square %s changed: got %v, want %v", Pos(y, x), board.Board[y][x], before[y][x])
			}
		}
	}
}

// randomBoards returns n positions with one king per side and a handful of
// other pieces scattered around. Pawns stay off the back rows.
func randomBoards(n int) []*BoardState {
	rng := rand.New(rand.NewSource(42))
	kinds := []PieceType{Pawn, Pawn, Pawn, Knight, Bishop, Rook, Queen}
	boards := make([]*BoardState, 0, n)
	for len(boards) < n {
		board := NewEmptyBoard()
		free := func() Position {
			for {
				pos := Pos(rng.Intn(boardSize), rng.Intn(boardSize))
				if board.pieceAt(pos) == nil {
					return pos
				}
			}
		}
		wk := free()
		board.Board[wk.Y][wk.X] = wp(King)
		bk := free()
		board.Board[bk.Y][bk.X] = bp(King)
		extra := 4 + rng.Intn(10)
		for i := 0; i < extra; i++ {
			kind := kinds[rng.Intn(len(kinds))]
			pos := free()
			if kind == Pawn && (pos.Y == 0 || pos.Y == boardSize-1) {
				continue
			}
			color := White
			if rng.Intn(2) == 1 {
				color = Black
			}
			board.Board[pos.Y][pos.X] = &Piece{Type: kind, Color: color}
		}
		boards = append(boards, board)
	}
	return boards
}
