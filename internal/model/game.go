package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/benbeisheim/chessai-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"
)

// MoveChooser picks a move for the side to move. It may apply and undo moves on s
// but must leave s exactly as it found it.
type MoveChooser interface {
	ChooseMove(s *GameState) (Move, bool)
}

// Connection is a registered websocket. The socket allows a single writer, so every
// write goes through WriteJSON.
type Connection struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *Connection) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// The connections for a specific game
type GameConnections struct {
	connections map[string]*Connection // playerID -> connection
	mu          sync.RWMutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]*Connection),
	}
}

// Game is one human-versus-computer session. Every method locks the game, so a search,
// a move validation and a move application never run against the state at the same time.
type Game struct {
	ID          string
	mu          sync.Mutex
	state       *GameState
	human       Player
	aiColor     Color
	ai          MoveChooser
	notation    []string // display notation, parallel to state.history
	clocks      map[Color]*Clock
	connections *GameConnections
	broadcastMu sync.Mutex // orders snapshots on the wire
	logger      *zap.Logger
}

// GameSnapshot is the read-only view sent to clients.
type GameSnapshot struct {
	ID          string       `json:"id"`
	Board       [][]*Piece   `json:"board"`
	ToMove      Color        `json:"toMove"`
	Human       ClientPlayer `json:"human"`
	AI          ClientPlayer `json:"ai"`
	IsCheck     bool         `json:"isCheck"`
	GameOver    bool         `json:"gameOver"`
	Winner      Winner       `json:"winner"`
	Result      Result       `json:"result"`
	MoveHistory []string     `json:"moveHistory"`
	Notation    []string     `json:"notation"`
	LastMove    *Move        `json:"lastMove"`
	FEN         string       `json:"fen"`
}

func NewGame(id string, human Player, ai MoveChooser, logger *zap.Logger) *Game {
	return NewGameFromState(id, NewGameState(), human, ai, logger)
}

// NewGameFromState wraps an existing state, e.g. one parsed from FEN.
func NewGameFromState(id string, state *GameState, human Player, ai MoveChooser, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Game{
		ID:          id,
		state:       state,
		human:       human,
		aiColor:     human.Color.Opponent(),
		ai:          ai,
		notation:    make([]string, 0),
		clocks:      map[Color]*Clock{White: NewClock(), Black: NewClock()},
		connections: NewGameConnections(),
		logger:      logger.With(zap.String("game_id", id)),
	}
	g.clocks[state.CurrentPlayer()].Start()
	return g
}

func (g *Game) HumanColor() Color {
	return g.human.Color
}

func (g *Game) AIColor() Color {
	return g.aiColor
}

func (g *Game) ToMove() Color {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.CurrentPlayer()
}

func (g *Game) IsPlayerInGame(playerID string) bool {
	return g.human.ID != "" && g.human.ID == playerID
}

func (g *Game) GetState() GameSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.snapshot()
}

func (g *Game) snapshot() GameSnapshot {
	history := g.state.MovesMade()
	var lastMove *Move
	if n := len(g.state.history); n > 0 {
		m := g.state.history[n-1].Move
		lastMove = &m
	}
	notation := make([]string, len(g.notation))
	copy(notation, g.notation)
	return GameSnapshot{
		ID:     g.ID,
		Board:  g.state.board.Grid(),
		ToMove: g.state.CurrentPlayer(),
		Human: ClientPlayer{
			ID:       g.human.ID,
			Color:    g.human.Color,
			TimeUsed: int(g.clocks[g.human.Color].GetTimeUsed().Milliseconds()),
		},
		AI: ClientPlayer{
			ID:       "computer",
			Color:    g.aiColor,
			TimeUsed: int(g.clocks[g.aiColor].GetTimeUsed().Milliseconds()),
		},
		IsCheck:     g.state.IsInCheck(g.state.CurrentPlayer()),
		GameOver:    g.state.IsGameOver(),
		Winner:      g.state.Winner(),
		Result:      g.result(),
		MoveHistory: history,
		Notation:    notation,
		LastMove:    lastMove,
		FEN:         g.state.FEN(),
	}
}

// GetBoard returns a rendering snapshot of the board.
func (g *Game) GetBoard() [][]*Piece {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.board.Grid()
}

// IsValidMove checks a move for the side to move.
func (g *Game) IsValidMove(start, end Position) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.IsValidMove(start, end, g.state.CurrentPlayer())
}

// GetPossibleMoves lists the legal targets of the piece on pos for the side to move.
func (g *Game) GetPossibleMoves(pos Position) []Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !pos.InBounds() {
		return []Position{}
	}
	return g.state.GetPossibleMoves(pos, g.state.CurrentPlayer())
}

func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.state.IsGameOver()
}

func (g *Game) Result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.result()
}

func (g *Game) result() Result {
	switch g.state.Winner() {
	case WinnerDraw:
		return ResultDraw
	case winnerOf(g.human.Color):
		return ResultHumanWin
	case winnerOf(g.aiColor):
		return ResultAIWin
	}
	return ResultNone
}

// PlayMove applies a human move after checking ownership, turn and legality.
func (g *Game) PlayMove(playerID string, move Move) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotAuthorized
	}
	if g.state.IsGameOver() {
		return ErrGameOver
	}
	if g.state.CurrentPlayer() != g.human.Color {
		return ErrNotYourTurn
	}
	if !g.state.IsValidMove(move.From, move.To, g.human.Color) {
		return fmt.Errorf("%s: %w", move, ErrIllegalMove)
	}
	g.makeMove(move)
	return nil
}

// MakeMove applies move for the side to move without ownership checks. Illegal or
// absent moves leave the game unchanged.
func (g *Game) MakeMove(move Move) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.state.IsValidMove(move.From, move.To, g.state.CurrentPlayer()) {
		return false
	}
	g.makeMove(move)
	return true
}

func (g *Game) makeMove(move Move) {
	mover := g.state.CurrentPlayer()
	notation := getNotation(&g.state.board, move)

	g.state.MakeMove(move)

	if g.state.IsGameOver() && g.state.Winner() != WinnerDraw {
		notation += "#"
	} else if g.state.IsInCheck(g.state.CurrentPlayer()) {
		notation += "+"
	}
	g.notation = append(g.notation, notation)

	g.clocks[mover].Stop()
	if !g.state.IsGameOver() {
		g.clocks[g.state.CurrentPlayer()].Start()
	}

	g.logger.Debug("move applied",
		zap.String("color", string(mover)),
		zap.String("move", move.String()),
		zap.String("notation", notation),
		zap.Bool("game_over", g.state.IsGameOver()),
	)
}

// UndoMove takes back the most recent ply.
func (g *Game) UndoMove() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.state.history) == 0 {
		return ErrNothingToUndo
	}
	g.undoMove()
	return nil
}

func (g *Game) undoMove() {
	g.clocks[White].Stop()
	g.clocks[Black].Stop()

	g.state.UndoMove()
	g.notation = g.notation[:len(g.notation)-1]

	g.clocks[g.state.CurrentPlayer()].Start()
}

// UndoTurn takes back plies until it is the human's turn again, so the computer's reply
// and the human move before it are both removed.
func (g *Game) UndoTurn(playerID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.IsPlayerInGame(playerID) {
		return ErrNotAuthorized
	}
	if len(g.state.history) == 0 {
		return ErrNothingToUndo
	}
	g.undoMove()
	for len(g.state.history) > 0 && g.state.CurrentPlayer() != g.human.Color {
		g.undoMove()
	}
	return nil
}

// AIMove lets the computer play for its side, taking the turn if it is the human's.
// When it has no legal move, the game ends: a loss if it is in check, otherwise a draw.
func (g *Game) AIMove() (Move, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.IsGameOver() {
		return Move{}, ErrGameOver
	}

	if g.state.CurrentPlayer() != g.aiColor {
		g.clocks[g.state.CurrentPlayer()].Stop()
		g.state.SetCurrentPlayer(g.aiColor)
		g.clocks[g.aiColor].Start()
	}
	return g.aiMove()
}

// AIReply plays the computer's move only if the computer is to move. It reports
// whether a move was made.
func (g *Game) AIReply() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.state.IsGameOver() || g.state.CurrentPlayer() != g.aiColor {
		return false, nil
	}
	if _, err := g.aiMove(); err != nil {
		return false, err
	}
	return true, nil
}

func (g *Game) aiMove() (Move, error) {
	move, ok := g.ai.ChooseMove(g.state)
	if ok && g.state.IsValidMove(move.From, move.To, g.aiColor) {
		g.makeMove(move)
		return move, nil
	}

	g.clocks[g.aiColor].Stop()
	if ok {
		g.logger.Error("computer proposed an illegal move", zap.String("move", move.String()))
		return Move{}, fmt.Errorf("%s: %w", move, ErrIllegalMove)
	}
	if g.state.IsInCheck(g.aiColor) {
		g.state.End(winnerOf(g.human.Color))
	} else {
		g.state.End(WinnerDraw)
	}
	g.logger.Info("computer has no legal move", zap.String("winner", string(g.state.Winner())))
	return Move{}, ErrNoMoveProposed
}

// RegisterConnection adds conn for playerID and sends it the current state. A player
// holds at most one connection per game.
func (g *Game) RegisterConnection(playerID string, conn *websocket.Conn) (*Connection, error) {
	g.broadcastMu.Lock()
	defer g.broadcastMu.Unlock()

	g.connections.mu.Lock()
	if _, exists := g.connections.connections[playerID]; exists {
		g.connections.mu.Unlock()
		return nil, ErrConnectionExists
	}
	c := &Connection{conn: conn}
	g.connections.connections[playerID] = c
	g.connections.mu.Unlock()

	g.logger.Debug("registered connection", zap.String("player_id", playerID))

	msg, err := g.stateMessage()
	if err == nil {
		err = c.WriteJSON(msg)
	}
	if err != nil {
		g.UnregisterConnection(playerID)
		return nil, err
	}
	return c, nil
}

func (g *Game) UnregisterConnection(playerID string) {
	g.connections.mu.Lock()
	defer g.connections.mu.Unlock()

	if _, exists := g.connections.connections[playerID]; exists {
		g.logger.Debug("unregistering connection", zap.String("player_id", playerID))
		delete(g.connections.connections, playerID)
	}
}

func (g *Game) ConnectionCount() int {
	g.connections.mu.RLock()
	defer g.connections.mu.RUnlock()
	return len(g.connections.connections)
}

func (g *Game) stateMessage() (ws.Message, error) {
	payload, err := json.Marshal(g.GetState())
	if err != nil {
		return ws.Message{}, fmt.Errorf("marshal game state: %w", err)
	}
	return ws.Message{
		Type:    ws.MessageTypeGameState,
		Payload: json.RawMessage(payload),
	}, nil
}

// BroadcastState sends the current snapshot to every registered connection and drops
// connections that fail. Concurrent broadcasts reach each connection in snapshot order.
func (g *Game) BroadcastState() error {
	g.broadcastMu.Lock()
	defer g.broadcastMu.Unlock()

	msg, err := g.stateMessage()
	if err != nil {
		return err
	}

	// Get a snapshot of connections under the connections mutex
	g.connections.mu.RLock()
	activeConnections := make(map[string]*Connection, len(g.connections.connections))
	for playerID, conn := range g.connections.connections {
		activeConnections[playerID] = conn
	}
	g.connections.mu.RUnlock()

	var errs []error
	for playerID, conn := range activeConnections {
		if err := conn.WriteJSON(msg); err != nil {
			g.logger.Warn("failed to send state", zap.String("player_id", playerID), zap.Error(err))
			g.UnregisterConnection(playerID)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
