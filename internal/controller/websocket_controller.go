package controller

import (
	"encoding/json"
	"fmt"

	"github.com/benbeisheim/chessai-backend/internal/middleware"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

type WebSocketController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewWebSocketController(gameService *service.GameService, logger *zap.Logger) *WebSocketController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebSocketController{
		gameService: gameService,
		logger:      logger,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals(middleware.GameIDLocal).(string)
	playerID, _ := c.Locals(middleware.PlayerIDLocal).(string)
	log := wsc.logger.With(zap.String("game_id", gameID), zap.String("player_id", playerID))

	conn, err := wsc.gameService.RegisterConnection(gameID, playerID, c)
	if err != nil {
		log.Warn("failed to register connection", zap.Error(err))
		c.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, err.Error()),
		)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug("read error", zap.Error(err))
			break
		}

		if messageType == websocket.TextMessage {
			var msg ws.Message
			if err := json.Unmarshal(message, &msg); err != nil {
				log.Debug("parse error", zap.Error(err))
				wsc.sendError(conn, "malformed message")
				continue
			}

			if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
				log.Debug("handle error", zap.String("type", string(msg.Type)), zap.Error(err))
				wsc.sendError(conn, err.Error())
			}
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

// handleMessage applies one inbound message. State updates reach the client through
// the game's broadcast, not as a direct reply.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var req moveRequest
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			return err
		}
		move, err := req.toMove()
		if err != nil {
			return err
		}
		_, err = wsc.gameService.HandleMove(gameID, playerID, move)
		return err

	case ws.MessageTypeUndo:
		_, err := wsc.gameService.Undo(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *model.Connection, errorMsg string) {
	if err := c.WriteJSON(ws.NewErrorMessage(errorMsg)); err != nil {
		wsc.logger.Debug("failed to send error", zap.Error(err))
	}
}
