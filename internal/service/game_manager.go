// service/game_manager.go
package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/benbeisheim/chessai-backend/internal/ai"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
	ErrInvalidColor = errors.New("invalid color")
)

// GameManager owns every live game, keyed by id.
type GameManager struct {
	games  map[string]*model.Game
	depth  int
	seed   int64
	logger *zap.Logger
	mu     sync.RWMutex
}

// NewGameManager creates a manager whose computer players search depth plies. A zero
// seed makes each game's randomness time based.
func NewGameManager(depth int, seed int64, logger *zap.Logger) *GameManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:  make(map[string]*model.Game),
		depth:  depth,
		seed:   seed,
		logger: logger,
	}
}

func (gm *GameManager) newSearcher() *ai.Searcher {
	seed := gm.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return ai.NewSearcher(gm.depth,
		ai.WithRand(rand.New(rand.NewSource(seed))),
		ai.WithLogger(gm.logger.Named("ai")),
	)
}

func (gm *GameManager) CreateGame(gameID string, human model.Player) (*model.Game, error) {
	if !human.Color.Valid() {
		return nil, ErrInvalidColor
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return nil, ErrGameExists
	}

	game := model.NewGame(gameID, human, gm.newSearcher(), gm.logger)
	gm.games[gameID] = game
	gm.logger.Info("game created",
		zap.String("game_id", gameID),
		zap.String("player_id", human.ID),
		zap.String("color", string(human.Color)),
	)
	return game, nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}

	return game, nil
}

func (gm *GameManager) RemoveGame(gameID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	delete(gm.games, gameID)
}

func (gm *GameManager) GameCount() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn *websocket.Conn) (*model.Connection, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}

	return game.RegisterConnection(playerID, conn)
}

// UnregisterConnection drops the player's connection. A finished game is removed once
// its last connection closes.
func (gm *GameManager) UnregisterConnection(gameID string, playerID string) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}

	game.UnregisterConnection(playerID)
	if game.IsGameOver() && game.ConnectionCount() == 0 {
		gm.RemoveGame(gameID)
		gm.logger.Info("finished game removed", zap.String("game_id", gameID))
	}
}
