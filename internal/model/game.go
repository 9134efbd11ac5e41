package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// Conn is the part of a websocket connection a game writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// writeMu serialises writes; a websocket allows one writer at a time
	writeMu sync.Mutex
}

// Game is one board shared by every client connected to it. Clicks are
// applied one at a time.
type Game struct {
	ID          string
	mu          sync.Mutex
	turns       *TurnController
	connections *GameConnections
	logger      *zap.Logger
}

type GameState struct {
	Sound          string         `json:"sound"`
	Board          *BoardState    `json:"boardState"`
	ToMove         Color          `json:"toMove"`
	MoveHistory    []MovePair     `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	IsCheck        bool           `json:"isCheck"`
	SelectedSquare *Position      `json:"selectedSquare"`
	LegalMoves     []Position     `json:"legalMoves"`
	LastMove       *Move          `json:"lastMove"`
	FEN            string         `json:"fen"`
}

func NewGame(id string, logger *zap.Logger) *Game {
	return &Game{
		ID:          id,
		turns:       NewTurnController(),
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
	}
}

// NewGameFromFEN starts a game from the given position instead of the
// standard one.
func NewGameFromFEN(id string, fen string, logger *zap.Logger) (*Game, error) {
	g := NewGame(id, logger)
	if err := g.turns.LoadFEN(fen); err != nil {
		return nil, err
	}
	return g, nil
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

func (g *Game) GetState() GameState {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.turns.State()
}

// Click applies one square click and pushes the new state to every
// connection when something changed.
func (g *Game) Click(pos Position) (ClickResult, error) {
	g.mu.Lock()
	result, err := g.turns.Click(pos)
	state := g.turns.State()
	g.mu.Unlock()

	if err != nil {
		return ClickResult{}, err
	}
	if result.Kind == ResultMoved {
		g.logger.Info("move played",
			zap.Stringer("from", result.Ply.From),
			zap.Stringer("to", result.Ply.To),
			zap.String("piece", result.Ply.Piece.ImageKey()),
			zap.Bool("capture", result.Ply.CapturedPiece != nil),
			zap.Bool("check", state.IsCheck),
		)
	}
	if result.Kind != ResultNone {
		g.broadcastState(state)
	}
	return result, nil
}

// Reset starts the game over from the standard position.
func (g *Game) Reset() {
	g.mu.Lock()
	g.turns.Reset()
	state := g.turns.State()
	g.mu.Unlock()

	g.logger.Info("game reset")
	g.broadcastState(state)
}

// LoadFEN replaces the board with the position in fen. On error the game is
// left untouched.
func (g *Game) LoadFEN(fen string) error {
	g.mu.Lock()
	err := g.turns.LoadFEN(fen)
	state := g.turns.State()
	g.mu.Unlock()

	if err != nil {
		return err
	}
	g.logger.Info("position loaded", zap.String("fen", fen))
	g.broadcastState(state)
	return nil
}

func (g *Game) RegisterConnection(playerID string, conn Conn) error {
	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		// If we already have a healthy connection, keep it and reject the new one
		g.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return errors.New("connection already exists")
	}

	g.connections.connections[playerID] = conn
	g.connections.mu.Unlock()
	g.logger.Info("connection registered", zap.String("player_id", playerID))

	// new clients get the current state straight away
	state := g.GetState()
	return g.Send(playerID, ws.MessageTypeGameState, state)
}

// UnregisterConnection drops playerID's connection, but only if it is still
// conn; a replaced connection must not remove its successor.
func (g *Game) UnregisterConnection(playerID string, conn Conn) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if current, exists := g.connections.connections[playerID]; exists && current == conn {
		g.logger.Info("connection unregistered", zap.String("player_id", playerID))
		delete(g.connections.connections, playerID)
	}
}

// Send writes a single message to playerID's connection.
func (g *Game) Send(playerID string, msgType ws.MessageType, payload interface{}) error {
	msg, err := newMessage(msgType, payload)
	if err != nil {
		return err
	}

	g.connections.mu.RLock()
	conn, exists := g.connections.connections[playerID]
	g.connections.mu.RUnlock()
	if !exists {
		return fmt.Errorf("no connection for player %s", playerID)
	}

	g.connections.writeMu.Lock()
	defer g.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}

func (g *Game) broadcastState(state GameState) {
	msg, err := newMessage(ws.MessageTypeGameState, state)
	if err != nil {
		g.logger.Error("failed to marshal state", zap.Error(err))
		return
	}

	// Get a snapshot of connections so no lock is held while writing
	g.connections.mu.RLock()
	activeConnections := make(map[string]Conn, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	g.connections.writeMu.Lock()
	failed := make(map[string]Conn)
	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			g.logger.Warn("failed to send state", zap.String("player_id", playerID), zap.Error(err))
			failed[playerID] = conn
		}
	}
	g.connections.writeMu.Unlock()

	for playerID, conn := range failed {
		g.UnregisterConnection(playerID, conn)
	}
}

func newMessage(msgType ws.MessageType, payload interface{}) (ws.Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return ws.Message{}, err
	}
	return ws.Message{Type: msgType, Payload: json.RawMessage(raw)}, nil
}
