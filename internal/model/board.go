package model

import "fmt"

const boardSize = 8

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// forward is the row delta a pawn of this color advances by.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

// pawnStartRow is the row pawns of this color begin on.
func (c Color) pawnStartRow() int {
	if c == White {
		return 6
	}
	return 1
}

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

func (p PieceType) letter() byte {
	switch p {
	case King:
		return 'k'
	case Queen:
		return 'q'
	case Rook:
		return 'r'
	case Bishop:
		return 'b'
	case Knight:
		return 'n'
	case Pawn:
		return 'p'
	}
	return '?'
}

type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

// ImageKey names the sprite the presentation layer draws for this piece,
// e.g. "wp" for a white pawn or "bn" for a black knight.
func (p Piece) ImageKey() string {
	return string([]byte{p.Color[0], p.Type.letter()})
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pos builds a Position from a row and a column.
func Pos(row, col int) Position {
	return Position{X: col, Y: row}
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < boardSize && p.Y >= 0 && p.Y < boardSize
}

func (p Position) add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Y, p.X)
}

type BoardState struct {
	Board [boardSize][boardSize]*Piece `json:"board"`
}

func checkBounds(p Position) error {
	if !p.InBounds() {
		return fmt.Errorf("square %s: %w", p, ErrOutOfBounds)
	}
	return nil
}

// NewEmptyBoard returns a board with no pieces on it.
func NewEmptyBoard() *BoardState {
	return &BoardState{}
}

func NewBoard() *BoardState {
	board := &BoardState{}
	backRank := [boardSize]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for x := 0; x < boardSize; x++ {
		board.Board[0][x] = &Piece{Type: backRank[x], Color: Black}
		board.Board[1][x] = &Piece{Type: Pawn, Color: Black}
		board.Board[6][x] = &Piece{Type: Pawn, Color: White}
		board.Board[7][x] = &Piece{Type: backRank[x], Color: White}
	}
	return board
}

// Get returns the piece on pos, or nil when the square is empty.
func (b *BoardState) Get(pos Position) (*Piece, error) {
	if err := checkBounds(pos); err != nil {
		return nil, err
	}
	return b.Board[pos.Y][pos.X], nil
}

// pieceAt reads a square that the caller has already bounds checked.
func (b *BoardState) pieceAt(pos Position) *Piece {
	return b.Board[pos.Y][pos.X]
}

// Place puts piece on pos, replacing any occupant. A nil piece empties the square.
func (b *BoardState) Place(pos Position, piece *Piece) error {
	if err := checkBounds(pos); err != nil {
		return err
	}
	b.Board[pos.Y][pos.X] = piece
	return nil
}

func (b *BoardState) Clear() {
	b.Board = [boardSize][boardSize]*Piece{}
}

// Apply moves whatever stands on move.From to move.To and returns the piece it
// replaced there, so the caller can hand it back to Undo.
func (b *BoardState) Apply(move Move) (*Piece, error) {
	if err := checkBounds(move.From); err != nil {
		return nil, err
	}
	if err := checkBounds(move.To); err != nil {
		return nil, err
	}
	captured := b.Board[move.To.Y][move.To.X]
	b.Board[move.To.Y][move.To.X] = b.Board[move.From.Y][move.From.X]
	b.Board[move.From.Y][move.From.X] = nil
	return captured, nil
}

// Undo reverses Apply. Both squares must be the ones Apply was called with.
func (b *BoardState) Undo(move Move, captured *Piece) {
	b.Board[move.From.Y][move.From.X] = b.Board[move.To.Y][move.To.X]
	b.Board[move.To.Y][move.To.X] = captured
}

// Clone copies the board including the pieces, so the copy shares nothing
// with b.
func (b *BoardState) Clone() *BoardState {
	clone := &BoardState{}
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			if piece := b.Board[y][x]; piece != nil {
				cp := *piece
				clone.Board[y][x] = &cp
			}
		}
	}
	return clone
}

// FindKing scans for color's king. found is false when the side has no king,
// which happens in partial positions.
func (b *BoardState) FindKing(color Color) (pos Position, found bool, err error) {
	for y := 0; y < boardSize; y++ {
		for x := 0; x < boardSize; x++ {
			piece := b.Board[y][x]
			if piece == nil || piece.Type != King || piece.Color != color {
				continue
			}
			if found {
				return Position{}, false, fmt.Errorf("second %s king at %s: %w", color, Pos(y, x), ErrInvariantViolation)
			}
			pos, found = Pos(y, x), true
		}
	}
	return pos, found, nil
}
