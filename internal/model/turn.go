package model

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// MovePair groups White's ply with Black's reply. Either side may be missing
// when a game starts from a position with Black to move.
type MovePair struct {
	WhitePly *Ply `json:"whitePly"`
	BlackPly *Ply `json:"blackPly"`
}

// TurnController owns one board and turns square clicks into selections and
// moves. It is not safe for concurrent use.
type TurnController struct {
	board          *BoardState
	toMove         Color
	selected       *Position
	legalMoves     []Position
	moveHistory    []MovePair
	capturedPieces CapturedPieces
	lastMove       *Move
	isCheck        bool
	sound          string
	firstToMove    Color
	firstMoveNo    int
	plyCount       int
}

func NewTurnController() *TurnController {
	tc := &TurnController{}
	tc.reset(StartingSetup())
	return tc
}

// NewTurnControllerFromBoard starts a session from an arbitrary position.
func NewTurnControllerFromBoard(board *BoardState, toMove Color) (*TurnController, error) {
	tc := &TurnController{}
	if err := tc.reset(Setup{Board: board, ToMove: toMove, FullMoveNumber: 1}); err != nil {
		return nil, err
	}
	return tc, nil
}

func (tc *TurnController) reset(setup Setup) error {
	isCheck, err := IsKingInCheck(setup.Board, setup.ToMove)
	if err != nil {
		return err
	}
	tc.board = setup.Board
	tc.toMove = setup.ToMove
	tc.clearSelection()
	tc.moveHistory = make([]MovePair, 0)
	tc.capturedPieces = CapturedPieces{White: make([]Piece, 0), Black: make([]Piece, 0)}
	tc.lastMove = nil
	tc.isCheck = isCheck
	tc.sound = ""
	tc.firstToMove = setup.ToMove
	tc.firstMoveNo = setup.FullMoveNumber
	tc.plyCount = 0
	return nil
}

// Reset puts the standard starting position back with White to move.
func (tc *TurnController) Reset() {
	tc.reset(StartingSetup())
}

// LoadFEN replaces the whole game with the position described by fen.
func (tc *TurnController) LoadFEN(fen string) error {
	setup, err := ParseFEN(fen)
	if err != nil {
		return err
	}
	return tc.reset(setup)
}

func (tc *TurnController) ToMove() Color { return tc.toMove }

func (tc *TurnController) Board() *BoardState { return tc.board }

// Selected returns the selected square, if any.
func (tc *TurnController) Selected() (Position, bool) {
	if tc.selected == nil {
		return Position{}, false
	}
	return *tc.selected, true
}

func (tc *TurnController) clearSelection() {
	tc.selected = nil
	tc.legalMoves = make([]Position, 0)
}

// Click feeds one square click into the controller. Clicks that do nothing
// (wrong side, empty square, piece without moves) are not errors.
func (tc *TurnController) Click(pos Position) (ClickResult, error) {
	if err := checkBounds(pos); err != nil {
		return ClickResult{}, err
	}
	if tc.selected == nil {
		return tc.selectPiece(pos)
	}
	if !slices.Contains(tc.legalMoves, pos) {
		tc.clearSelection()
		return ClickResult{Kind: ResultDeselected}, nil
	}
	ply, err := tc.executeMove(Move{From: *tc.selected, To: pos})
	if err != nil {
		return ClickResult{}, err
	}
	return ClickResult{Kind: ResultMoved, Ply: &ply}, nil
}

func (tc *TurnController) selectPiece(pos Position) (ClickResult, error) {
	piece := tc.board.pieceAt(pos)
	if piece == nil || piece.Color != tc.toMove {
		return ClickResult{Kind: ResultNone}, nil
	}
	legalMoves, err := LegalMoves(tc.board, pos)
	if err != nil {
		return ClickResult{}, err
	}
	if len(legalMoves) == 0 {
		return ClickResult{Kind: ResultNone}, nil
	}
	tc.selected = &pos
	tc.legalMoves = legalMoves
	return ClickResult{Kind: ResultSelected, Highlights: slices.Clone(legalMoves)}, nil
}

func (tc *TurnController) executeMove(move Move) (Ply, error) {
	piece := tc.board.pieceAt(move.From)
	captured, err := tc.board.Apply(move)
	if err != nil {
		return Ply{}, err
	}
	ply := Ply{Piece: *piece, From: move.From, To: move.To}
	if captured != nil {
		cp := *captured
		ply.CapturedPiece = &cp
	}

	isCheck, err := IsKingInCheck(tc.board, tc.toMove.Opponent())
	if err != nil {
		tc.board.Undo(move, captured)
		return Ply{}, fmt.Errorf("after %v: %w", move, err)
	}

	tc.recordPly(ply)
	tc.plyCount++
	tc.sound = "move"
	if captured != nil {
		tc.sound = "capture"
	}
	if isCheck {
		tc.sound = "check"
	}
	tc.isCheck = isCheck
	tc.lastMove = &move
	tc.clearSelection()
	tc.toMove = tc.toMove.Opponent()
	return ply, nil
}

func (tc *TurnController) recordPly(ply Ply) {
	if ply.CapturedPiece != nil {
		switch tc.toMove {
		case White:
			tc.capturedPieces.White = append(tc.capturedPieces.White, *ply.CapturedPiece)
		case Black:
			tc.capturedPieces.Black = append(tc.capturedPieces.Black, *ply.CapturedPiece)
		}
	}

	if tc.toMove == White {
		tc.moveHistory = append(tc.moveHistory, MovePair{WhitePly: &ply})
		return
	}
	lastIdx := len(tc.moveHistory) - 1
	if lastIdx < 0 || tc.moveHistory[lastIdx].BlackPly != nil {
		tc.moveHistory = append(tc.moveHistory, MovePair{BlackPly: &ply})
		return
	}
	tc.moveHistory[lastIdx].BlackPly = &ply
}

// State copies everything a client needs to draw the game.
func (tc *TurnController) State() GameState {
	state := GameState{
		Sound:          tc.sound,
		Board:          tc.board.Clone(),
		ToMove:         tc.toMove,
		MoveHistory:    slices.Clone(tc.moveHistory),
		CapturedPieces: CapturedPieces{White: slices.Clone(tc.capturedPieces.White), Black: slices.Clone(tc.capturedPieces.Black)},
		IsCheck:        tc.isCheck,
		LegalMoves:     slices.Clone(tc.legalMoves),
		FEN:            FEN(tc.board, tc.toMove, tc.fullMoveNumber()),
	}
	if tc.selected != nil {
		selected := *tc.selected
		state.SelectedSquare = &selected
	}
	if tc.lastMove != nil {
		lastMove := *tc.lastMove
		state.LastMove = &lastMove
	}
	return state
}

func (tc *TurnController) fullMoveNumber() int {
	plies := tc.plyCount
	if tc.firstToMove == Black {
		plies++
	}
	return tc.firstMoveNo + plies/2
}
