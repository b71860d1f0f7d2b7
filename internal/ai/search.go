// Package ai chooses moves for the computer side: a fixed opening book first, then a
// depth-limited minimax search with alpha-beta pruning over material evaluation.
package ai

import (
	"math"
	"math/rand"
	"slices"
	"time"

	"github.com/benbeisheim/chessai-backend/internal/model"
	"go.uber.org/zap"
)

const DefaultDepth = 2

// Searcher implements model.MoveChooser. It searches the state it is given in place,
// applying and undoing moves around every recursive call, so it must never be shared by
// two concurrent searches on one state.
type Searcher struct {
	depth  int
	book   OpeningBook
	rng    *rand.Rand
	logger *zap.Logger
}

type Option func(*Searcher)

func WithBook(book OpeningBook) Option {
	return func(s *Searcher) { s.book = book }
}

// WithRand sets the source used for book picks and move shuffling.
func WithRand(rng *rand.Rand) Option {
	return func(s *Searcher) { s.rng = rng }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Searcher) { s.logger = logger }
}

func NewSearcher(depth int, opts ...Option) *Searcher {
	if depth < 1 {
		depth = 1
	}
	s := &Searcher{
		depth:  depth,
		book:   DefaultBook(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Searcher) Depth() int {
	return s.depth
}

// Result describes one move choice.
type Result struct {
	Move     model.Move
	Value    int
	Nodes    int
	FromBook bool
	Found    bool
}

// ChooseMove returns the move to play for the side to move, or false if it has none.
func (s *Searcher) ChooseMove(state *model.GameState) (model.Move, bool) {
	start := time.Now()
	res := s.Search(state)
	s.logger.Debug("move chosen",
		zap.String("color", string(state.CurrentPlayer())),
		zap.String("move", res.Move.String()),
		zap.Bool("found", res.Found),
		zap.Bool("book", res.FromBook),
		zap.Int("value", res.Value),
		zap.Int("nodes", res.Nodes),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res.Move, res.Found
}

// Search consults the opening book and falls back to alpha-beta search.
func (s *Searcher) Search(state *model.GameState) Result {
	if move, ok := s.bookMove(state); ok {
		return Result{
			Move:     move,
			Value:    Evaluate(state.Board(), state.CurrentPlayer()),
			FromBook: true,
			Found:    true,
		}
	}
	return s.alphaBeta(state)
}

// bookMove picks a random book reply for the current history. Entries that are not
// legal in the current position are ignored.
func (s *Searcher) bookMove(state *model.GameState) (model.Move, bool) {
	candidates := s.book.Candidates(BookKey(state.MovesMade()))
	if len(candidates) == 0 {
		return model.Move{}, false
	}
	move, err := model.ParseMove(candidates[s.rng.Intn(len(candidates))])
	if err != nil {
		return model.Move{}, false
	}
	if !slices.Contains(state.GenerateAllMoves(state.CurrentPlayer()), move) {
		return model.Move{}, false
	}
	return move, true
}

func (s *Searcher) alphaBeta(state *model.GameState) Result {
	side := state.CurrentPlayer()
	moves := state.GenerateAllMoves(side)
	s.rng.Shuffle(len(moves), func(i, j int) {
		moves[i], moves[j] = moves[j], moves[i]
	})

	res := Result{Value: math.MinInt}
	alpha, beta := math.MinInt, math.MaxInt
	for _, move := range moves {
		state.MakeMove(move)
		value := s.minimax(state, s.depth-1, alpha, beta, side, &res.Nodes)
		state.UndoMove()
		if value > res.Value || !res.Found {
			res.Value = value
			res.Move = move
			res.Found = true
		}
		alpha = max(alpha, res.Value)
		if beta <= alpha {
			break
		}
	}
	if !res.Found {
		res.Value = Evaluate(state.Board(), side)
	}
	return res
}

// minimax returns the value of state for side, maximizing on side's turns and
// minimizing on the opponent's.
func (s *Searcher) minimax(state *model.GameState, depth, alpha, beta int, side model.Color, nodes *int) int {
	*nodes++
	if depth == 0 || state.IsGameOver() {
		return Evaluate(state.Board(), side)
	}

	player := state.CurrentPlayer()
	moves := state.GenerateAllMoves(player)
	if len(moves) == 0 {
		return Evaluate(state.Board(), side)
	}

	if player == side {
		best := math.MinInt
		for _, move := range moves {
			state.MakeMove(move)
			value := s.minimax(state, depth-1, alpha, beta, side, nodes)
			state.UndoMove()
			best = max(best, value)
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, move := range moves {
		state.MakeMove(move)
		value := s.minimax(state, depth-1, alpha, beta, side, nodes)
		state.UndoMove()
		best = min(best, value)
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}
	return best
}
