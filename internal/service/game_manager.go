package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games  map[string]*model.Game
	mu     sync.RWMutex
	logger *zap.Logger
}

func NewGameManager(logger *zap.Logger) *GameManager {
	return &GameManager{
		games:  make(map[string]*model.Game),
		logger: logger,
	}
}

// CreateGame registers a new game under gameID. An empty fen means the
// standard starting position.
func (gm *GameManager) CreateGame(gameID string, fen string) error {
	var (
		game *model.Game
		err  error
	)
	if fen == "" {
		game = model.NewGame(gameID, gm.logger)
	} else if game, err = model.NewGameFromFEN(gameID, fen, gm.logger); err != nil {
		return err
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return fmt.Errorf("%s: %w", gameID, ErrGameExists)
	}
	gm.games[gameID] = game
	gm.logger.Info("game created", zap.String("game_id", gameID), zap.Bool("custom_position", fen != ""))
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}

	return game, nil
}

// DeleteGame forgets a game. Connected clients are not notified.
func (gm *GameManager) DeleteGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; !exists {
		return fmt.Errorf("%s: %w", gameID, ErrGameNotFound)
	}
	delete(gm.games, gameID)
	gm.logger.Info("game deleted", zap.String("game_id", gameID))
	return nil
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

// Click forwards a square click to the game. The manager lock is not held
// while the game works, so games do not block each other.
func (gm *GameManager) Click(gameID string, pos model.Position) (model.ClickResult, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.ClickResult{}, err
	}
	return game.Click(pos)
}

func (gm *GameManager) Reset(gameID string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	game.Reset()
	return nil
}

func (gm *GameManager) LoadFEN(gameID string, fen string) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.LoadFEN(fen)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, playerID string, msgType ws.MessageType, payload interface{}) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msgType, payload)
}
