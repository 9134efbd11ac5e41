package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Setup is a position to start a game from.
type Setup struct {
	Board          *BoardState
	ToMove         Color
	FullMoveNumber int
}

func StartingSetup() Setup {
	return Setup{Board: NewBoard(), ToMove: White, FullMoveNumber: 1}
}

// ParseFEN reads the placement, side to move and move number of a FEN record.
// Castling and en passant fields are accepted but ignored.
func ParseFEN(fen string) (setup Setup, err error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return Setup{}, fmt.Errorf("%q: want at least placement and side to move: %w", fen, ErrInvalidFEN)
	}
	if err := validatePlacement(fields[0]); err != nil {
		return Setup{}, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return Setup{}, fmt.Errorf("side to move %q: %w", fields[1], ErrInvalidFEN)
	}
	fullMove := 1
	if len(fields) >= 6 {
		n, err := strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return Setup{}, fmt.Errorf("full move number %q: %w", fields[5], ErrInvalidFEN)
		}
		fullMove = n
	}

	// ParseFen panics on some malformed records instead of reporting them
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%q: %v: %w", fen, r, ErrInvalidFEN)
		}
	}()
	// the engine knows nothing about castling or en passant rights
	parsed := dragontoothmg.ParseFen(strings.Join([]string{fields[0], fields[1], "-", "-", "0", "1"}, " "))

	board := NewEmptyBoard()
	placeBitboards(board, &parsed.White, White)
	placeBitboards(board, &parsed.Black, Black)
	toMove := Black
	if parsed.Wtomove {
		toMove = White
	}
	if _, _, err := board.FindKing(White); err != nil {
		return Setup{}, fmt.Errorf("%v: %w", err, ErrInvalidFEN)
	}
	if _, _, err := board.FindKing(Black); err != nil {
		return Setup{}, fmt.Errorf("%v: %w", err, ErrInvalidFEN)
	}
	return Setup{Board: board, ToMove: toMove, FullMoveNumber: fullMove}, nil
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != boardSize {
		return fmt.Errorf("placement %q has %d ranks: %w", placement, len(ranks), ErrInvalidFEN)
	}
	for i, rank := range ranks {
		files := 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				files += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				files++
			default:
				return fmt.Errorf("rank %d: unexpected %q: %w", boardSize-i, ch, ErrInvalidFEN)
			}
		}
		if files != boardSize {
			return fmt.Errorf("rank %d covers %d files: %w", boardSize-i, files, ErrInvalidFEN)
		}
	}
	return nil
}

func placeBitboards(board *BoardState, bb *dragontoothmg.Bitboards, color Color) {
	sets := []struct {
		bits uint64
		kind PieceType
	}{
		{bb.Pawns, Pawn},
		{bb.Knights, Knight},
		{bb.Bishops, Bishop},
		{bb.Rooks, Rook},
		{bb.Queens, Queen},
		{bb.Kings, King},
	}
	for _, set := range sets {
		for sq := 0; sq < boardSize*boardSize; sq++ {
			if set.bits&(uint64(1)<<uint(sq)) == 0 {
				continue
			}
			board.Board[rowOfSquareIndex(sq)][sq%boardSize] = &Piece{Type: set.kind, Color: color}
		}
	}
}

// rowOfSquareIndex converts a little-endian rank-file index (a1 = 0, h8 = 63)
// to a board row, where row 0 is rank 8.
func rowOfSquareIndex(sq int) int {
	return boardSize - 1 - sq/boardSize
}

// FEN writes the position as a FEN record. Castling and en passant are always "-".
func FEN(board *BoardState, toMove Color, fullMove int) string {
	var sb strings.Builder
	for y := 0; y < boardSize; y++ {
		if y > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for x := 0; x < boardSize; x++ {
			piece := board.Board[y][x]
			if piece == nil {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			letter := piece.Type.letter()
			if piece.Color == White {
				letter -= 'a' - 'A'
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	side := "w"
	if toMove == Black {
		side = "b"
	}
	fmt.Fprintf(&sb, " %s - - 0 %d", side, fullMove)
	return sb.String()
}
