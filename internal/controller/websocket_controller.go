package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/benbeisheim/chessrules-backend/internal/service"
	"github.com/benbeisheim/chessrules-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID, _ := c.Locals("playerID").(string)
	logger := wsc.logger.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		logger.Warn("failed to register connection", zap.Error(err))
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			logger.Debug("read error", zap.Error(err))
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Debug("parse error", zap.Error(err))
			wsc.sendError(gameID, playerID, "invalid message")
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			logger.Info("handle error", zap.String("type", string(msg.Type)), zap.Error(err))
			wsc.sendError(gameID, playerID, err.Error())
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeClick:
		var click ws.ClickPayload
		if err := json.Unmarshal(msg.Payload, &click); err != nil {
			return err
		}
		result, err := wsc.gameService.HandleClick(gameID, model.Position{X: click.X, Y: click.Y})
		if err != nil {
			return err
		}
		return wsc.gameService.Send(gameID, playerID, ws.MessageTypeClickResult, result)

	case ws.MessageTypeReset:
		return wsc.gameService.ResetGame(gameID)

	case ws.MessageTypeLoadFEN:
		var body ws.LoadFENPayload
		if err := json.Unmarshal(msg.Payload, &body); err != nil {
			return err
		}
		return wsc.gameService.LoadFEN(gameID, body.FEN)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(gameID, playerID, errorMsg string) {
	if err := wsc.gameService.Send(gameID, playerID, ws.MessageTypeError, ws.ErrorPayload{Error: errorMsg}); err != nil {
		wsc.logger.Debug("failed to send error", zap.String("game_id", gameID), zap.Error(err))
	}
}
