package model

// GameState is the single mutable aggregate of one game: board, side to move,
// termination and history. It is not safe for concurrent use; Game serializes access.
//
// IsValidMove simulates moves on the live board and search applies and undoes moves in
// place, so at most one caller may touch a GameState at a time.
type GameState struct {
	board         Board
	currentPlayer Color
	gameOver      bool
	winner        Winner
	history       []MoveRecord
}

func NewGameState() *GameState {
	return NewGameStateFromBoard(NewBoard(), White)
}

// NewGameStateFromBoard starts a game from an arbitrary position with toMove to play.
func NewGameStateFromBoard(board Board, toMove Color) *GameState {
	return &GameState{
		board:         board,
		currentPlayer: toMove,
		winner:        WinnerNone,
		history:       make([]MoveRecord, 0),
	}
}

func (s *GameState) Board() *Board {
	return &s.board
}

func (s *GameState) CurrentPlayer() Color {
	return s.currentPlayer
}

// SetCurrentPlayer forces the side to move. Only the computer-move path uses it.
func (s *GameState) SetCurrentPlayer(c Color) {
	s.currentPlayer = c
}

func (s *GameState) IsGameOver() bool {
	return s.gameOver
}

func (s *GameState) Winner() Winner {
	return s.winner
}

// End marks the game finished. It is a no-op if the game is already over.
func (s *GameState) End(w Winner) {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.winner = w
}

func (s *GameState) History() []MoveRecord {
	return s.history
}

// MovesMade returns the coordinate notation of every applied move, oldest first.
func (s *GameState) MovesMade() []string {
	moves := make([]string, 0, len(s.history))
	for _, rec := range s.history {
		moves = append(moves, rec.Move.String())
	}
	return moves
}

// IsValidMove reports whether player may move the piece on start to end.
func (s *GameState) IsValidMove(start, end Position, player Color) bool {
	if s.gameOver {
		return false
	}
	if !start.InBounds() || !end.InBounds() {
		return false
	}
	piece := s.board.Get(start)
	if piece.IsEmpty() || piece.Color != player {
		return false
	}
	if target := s.board.Get(end); !target.IsEmpty() && target.Color == player {
		return false
	}
	if !IsGeometricallyLegal(&s.board, start, end, player) {
		return false
	}
	// king may not step onto a square attacked on the current board
	if piece.Type == King && SquareUnderAttack(&s.board, end, player) {
		return false
	}
	return !s.moveCausesCheck(start, end, player)
}

// moveCausesCheck plays the move on the live board, tests player's king and reverts.
func (s *GameState) moveCausesCheck(start, end Position, player Color) bool {
	piece := s.board.Get(start)
	captured := s.board.Get(end)

	s.board.Set(end, piece)
	s.board.Clear(start)

	inCheck := IsInCheck(&s.board, player)

	s.board.Set(start, piece)
	s.board.Set(end, captured)

	return inCheck
}

// GetPossibleMoves returns every square the piece on pos may legally move to, row-major.
func (s *GameState) GetPossibleMoves(pos Position, player Color) []Position {
	moves := []Position{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			end := Position{X: x, Y: y}
			if s.IsValidMove(pos, end, player) {
				moves = append(moves, end)
			}
		}
	}
	return moves
}

// GenerateAllMoves returns all legal moves for player in board-scan order.
func (s *GameState) GenerateAllMoves(player Color) []Move {
	moves := []Move{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			start := Position{X: x, Y: y}
			piece := s.board.Get(start)
			if piece.IsEmpty() || piece.Color != player {
				continue
			}
			for _, end := range s.GetPossibleMoves(start, player) {
				moves = append(moves, Move{From: start, To: end})
			}
		}
	}
	return moves
}

func (s *GameState) hasAnyLegalMove(player Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			start := Position{X: x, Y: y}
			piece := s.board.Get(start)
			if piece.IsEmpty() || piece.Color != player {
				continue
			}
			if len(s.GetPossibleMoves(start, player)) > 0 {
				return true
			}
		}
	}
	return false
}

func (s *GameState) IsInCheck(player Color) bool {
	return IsInCheck(&s.board, player)
}

func (s *GameState) IsInCheckmate(player Color) bool {
	return s.IsInCheck(player) && !s.hasAnyLegalMove(player)
}

func (s *GameState) IsStalemate(player Color) bool {
	return !s.IsInCheck(player) && !s.hasAnyLegalMove(player)
}

// MakeMove applies move for the side to move. The move is assumed legal; callers
// validate with IsValidMove first. It is a no-op once the game is over or when the
// move does not start on a piece.
func (s *GameState) MakeMove(move Move) {
	if s.gameOver || !move.From.InBounds() || !move.To.InBounds() || s.board.Get(move.From).IsEmpty() {
		return
	}

	s.history = append(s.history, MoveRecord{
		Board:         s.board.Clone(),
		CurrentPlayer: s.currentPlayer,
		GameOver:      s.gameOver,
		Winner:        s.winner,
		Move:          move,
	})

	piece := s.board.Get(move.From)
	s.board.Set(move.To, piece)
	s.board.Clear(move.From)

	if piece.Type == Pawn && move.To.Y == promotionRow(piece.Color) {
		s.board.Set(move.To, Piece{Type: Queen, Color: piece.Color})
	}

	opponent := s.currentPlayer.Opponent()
	if s.IsInCheckmate(opponent) {
		s.gameOver = true
		s.winner = winnerOf(s.currentPlayer)
	} else if s.IsStalemate(opponent) {
		s.gameOver = true
		s.winner = WinnerDraw
	}

	s.currentPlayer = opponent
}

// UndoMove restores the state saved by the most recent MakeMove.
func (s *GameState) UndoMove() {
	if len(s.history) == 0 {
		return
	}
	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	s.board = last.Board
	s.currentPlayer = last.CurrentPlayer
	s.gameOver = last.GameOver
	s.winner = last.Winner
}

// Clone returns an independent copy, history included.
func (s *GameState) Clone() *GameState {
	c := *s
	c.history = make([]MoveRecord, len(s.history))
	copy(c.history, s.history)
	return &c
}
