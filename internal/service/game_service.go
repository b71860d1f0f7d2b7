package service

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type GameService struct {
	gameManager *GameManager
	logger      *zap.Logger
}

func NewGameService(gameManager *GameManager, logger *zap.Logger) *GameService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameService{
		gameManager: gameManager,
		logger:      logger,
	}
}

// CreateGame starts a game for playerID playing color. When the human plays black the
// computer makes the first move before CreateGame returns.
func (gs *GameService) CreateGame(playerID string, color model.Color) (model.GameSnapshot, error) {
	gameID := uuid.New().String()

	game, err := gs.gameManager.CreateGame(gameID, model.Player{ID: playerID, Color: color})
	if err != nil {
		return model.GameSnapshot{}, fmt.Errorf("failed to create game: %w", err)
	}

	// the computer opens when the human plays black
	if err := gs.replyAI(game); err != nil {
		return model.GameSnapshot{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) GetGameState(gameID string) (model.GameSnapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	return game.GetState(), nil
}

func (gs *GameService) GetPossibleMoves(gameID string, pos model.Position) ([]model.Position, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.GetPossibleMoves(pos), nil
}

func (gs *GameService) IsValidMove(gameID string, move model.Move) (bool, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return false, err
	}
	return game.IsValidMove(move.From, move.To), nil
}

// HandleMove plays the human move and, unless that ended the game, the computer's reply.
func (gs *GameService) HandleMove(gameID string, playerID string, move model.Move) (model.GameSnapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameSnapshot{}, err
	}

	if err := game.PlayMove(playerID, move); err != nil {
		gs.logger.Debug("move rejected",
			zap.String("game_id", gameID),
			zap.String("player_id", playerID),
			zap.String("move", move.String()),
			zap.Error(err),
		)
		return model.GameSnapshot{}, err
	}

	if err := gs.replyAI(game); err != nil {
		return model.GameSnapshot{}, err
	}

	gs.broadcast(game)
	return game.GetState(), nil
}

// AIMove forces the computer to move now, on behalf of the game's human player.
func (gs *GameService) AIMove(gameID string, playerID string) (model.GameSnapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	if !game.IsPlayerInGame(playerID) {
		return model.GameSnapshot{}, model.ErrNotAuthorized
	}
	if _, err := game.AIMove(); err != nil && !errors.Is(err, model.ErrNoMoveProposed) {
		return model.GameSnapshot{}, err
	}
	gs.broadcast(game)
	return game.GetState(), nil
}

// replyAI runs the computer's move if it is the computer's turn. Having no legal move
// ends the game and is not an error.
func (gs *GameService) replyAI(game *model.Game) error {
	_, err := game.AIReply()
	if errors.Is(err, model.ErrNoMoveProposed) {
		return nil
	}
	return err
}

func (gs *GameService) broadcast(game *model.Game) {
	if err := game.BroadcastState(); err != nil {
		gs.logger.Warn("broadcast failed", zap.String("game_id", game.ID), zap.Error(err))
	}
}

// Undo takes back the player's last move together with the computer's reply.
func (gs *GameService) Undo(gameID string, playerID string) (model.GameSnapshot, error) {
	game, err := gs.gameManager.GetGame(gameID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	if err := game.UndoTurn(playerID); err != nil {
		return model.GameSnapshot{}, err
	}
	// undoing the computer's opening move leaves it to move again
	if err := gs.replyAI(game); err != nil {
		return model.GameSnapshot{}, err
	}
	gs.broadcast(game)
	return game.GetState(), nil
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) (*model.Connection, error) {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}
