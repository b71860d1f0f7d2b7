package model

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOpeningScenario(t *testing.T) {
	s := NewGameState()
	e2, e4 := Position{X: 4, Y: 6}, Position{X: 4, Y: 4}

	if !s.IsValidMove(e2, e4, White) {
		t.Fatal("e2e4 rejected in the initial position")
	}
	s.MakeMove(Move{From: e2, To: e4})

	if s.CurrentPlayer() != Black {
		t.Fatalf("CurrentPlayer() = %s, want black", s.CurrentPlayer())
	}
	if got := s.Board().Get(e4); got != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("e4 holds %+v, want white pawn", got)
	}

	moves := moveStrings(s.GenerateAllMoves(Black))
	for _, want := range []string{"e7e5", "e7e6", "g8f6", "b8c6"} {
		if !slices.Contains(moves, want) {
			t.Errorf("GenerateAllMoves(black) missing %s", want)
		}
	}
	if len(moves) != 20 {
		t.Errorf("len(GenerateAllMoves(black)) = %d, want 20", len(moves))
	}
}

func TestInitialMoveCount(t *testing.T) {
	s := NewGameState()
	if got := len(s.GenerateAllMoves(White)); got != 20 {
		t.Errorf("len(GenerateAllMoves(white)) = %d, want 20", got)
	}
	// board-scan order: row 6 pawns before row 7 knights, targets row-major
	moves := moveStrings(s.GenerateAllMoves(White))
	if moves[0] != "a2a4" || moves[len(moves)-1] != "g1h3" {
		t.Errorf("move order starts %s and ends %s, want a2a4 and g1h3", moves[0], moves[len(moves)-1])
	}
}

func TestGetPossibleMoves(t *testing.T) {
	s := NewGameState()
	got := s.GetPossibleMoves(mustSquare(t, "g1"), White)
	want := []Position{mustSquare(t, "f3"), mustSquare(t, "h3")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetPossibleMoves(g1) mismatch (-want +got):\n%s", diff)
	}

	if got := s.GetPossibleMoves(mustSquare(t, "g8"), White); len(got) != 0 {
		t.Errorf("GetPossibleMoves(g8, white) = %v, want none", got)
	}
}

func TestIsValidMoveRejections(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		move   Move
		player Color
	}{
		{"empty start", InitialFEN, Move{From: Position{X: 4, Y: 4}, To: Position{X: 4, Y: 3}}, White},
		{"opponent piece", InitialFEN, Move{From: Position{X: 4, Y: 1}, To: Position{X: 4, Y: 3}}, White},
		{"own piece capture", InitialFEN, Move{From: Position{X: 0, Y: 7}, To: Position{X: 0, Y: 6}}, White},
		{"end off board", InitialFEN, Move{From: Position{X: 6, Y: 7}, To: Position{X: 7, Y: 9}}, White},
		{"start off board", InitialFEN, Move{From: Position{X: -1, Y: 7}, To: Position{X: 0, Y: 5}}, White},
		{"null move", InitialFEN, Move{From: Position{X: 6, Y: 7}, To: Position{X: 6, Y: 7}}, White},
		{"king into rook file", "4k3/8/8/8/8/8/8/r3K3 w - - 0 1", Move{From: Position{X: 4, Y: 7}, To: Position{X: 3, Y: 7}}, White},
		{"king onto pawn-attacked square", "4k3/8/8/8/8/3p4/8/4K3 w - - 0 1", Move{From: Position{X: 4, Y: 7}, To: Position{X: 4, Y: 6}}, White},
		{"king captures defended piece", "4k3/8/8/8/8/2p5/3p4/4K3 w - - 0 1", Move{From: Position{X: 4, Y: 7}, To: Position{X: 3, Y: 6}}, White},
		{"king retreats along checking line", "4k3/8/8/8/4r3/8/4K3/8 w - - 0 1", Move{From: Position{X: 4, Y: 6}, To: Position{X: 4, Y: 7}}, White},
		{"pinned knight", "4k3/4r3/8/8/8/8/4N3/4K3 w - - 0 1", Move{From: Position{X: 4, Y: 6}, To: Position{X: 2, Y: 5}}, White},
		{"ignores check", "4k3/8/8/8/8/8/P7/4K2r w - - 0 1", Move{From: Position{X: 0, Y: 6}, To: Position{X: 0, Y: 5}}, White},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFEN(t, tt.fen)
			before := s.FEN()
			if s.IsValidMove(tt.move.From, tt.move.To, tt.player) {
				t.Errorf("IsValidMove(%v) = true, want false", tt.move)
			}
			if after := s.FEN(); after != before {
				t.Errorf("IsValidMove changed the board: %s -> %s", before, after)
			}
		})
	}
}

func TestKingCanCaptureUndefendedPiece(t *testing.T) {
	s := mustFEN(t, "4k3/8/8/8/8/8/3p4/4K3 w - - 0 1")
	if !s.IsValidMove(mustSquare(t, "e1"), mustSquare(t, "d2"), White) {
		t.Error("Kxd2 rejected although d2 is undefended")
	}
}

func TestMakeUndoRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewGameState()

	for ply := 0; ply < 60 && !s.IsGameOver(); ply++ {
		moves := s.GenerateAllMoves(s.CurrentPlayer())
		if len(moves) == 0 {
			t.Fatalf("no moves at ply %d but game not over", ply)
		}

		// every generated move round-trips exactly
		for _, m := range moves {
			before := s.Clone()
			s.MakeMove(m)
			s.UndoMove()
			if diff := cmp.Diff(before.FEN(), s.FEN()); diff != "" {
				t.Fatalf("undo %s mismatch (-want +got):\n%s", m, diff)
			}
			if s.Board().Clone() != before.Board().Clone() ||
				s.IsGameOver() != before.IsGameOver() ||
				s.Winner() != before.Winner() ||
				len(s.History()) != len(before.History()) {
				t.Fatalf("undo %s did not restore the state", m)
			}
		}

		s.MakeMove(moves[rng.Intn(len(moves))])
	}
}

func TestGeneratedMovesNeverLeaveKingInCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s := NewGameState()

	for ply := 0; ply < 50 && !s.IsGameOver(); ply++ {
		player := s.CurrentPlayer()
		moves := s.GenerateAllMoves(player)
		for _, m := range moves {
			s.MakeMove(m)
			if IsInCheck(s.Board(), player) {
				t.Fatalf("move %s leaves %s in check", m, player)
			}
			s.UndoMove()
		}
		s.MakeMove(moves[rng.Intn(len(moves))])
	}
}

func TestFoolsMate(t *testing.T) {
	s := NewGameState()
	play(t, s, "f2f3", "e7e5", "g2g4")

	if s.IsGameOver() {
		t.Fatal("game over before the mating move")
	}
	s.MakeMove(mustMove(t, "d8h4"))

	if !s.IsInCheckmate(White) {
		t.Error("IsInCheckmate(white) = false after Qh4")
	}
	if s.IsStalemate(White) {
		t.Error("IsStalemate(white) = true while in check")
	}
	if !s.IsGameOver() {
		t.Fatal("IsGameOver() = false after checkmate")
	}
	if s.Winner() != WinnerBlack {
		t.Errorf("Winner() = %q, want black", s.Winner())
	}
	if s.CurrentPlayer() != White {
		t.Errorf("CurrentPlayer() = %s, want white", s.CurrentPlayer())
	}

	// game over is monotonic
	before := s.FEN()
	s.MakeMove(mustMove(t, "a2a3"))
	if s.FEN() != before || len(s.History()) != 4 {
		t.Error("MakeMove changed a finished game")
	}
	if s.IsValidMove(mustSquare(t, "a2"), mustSquare(t, "a3"), White) {
		t.Error("IsValidMove accepted a move in a finished game")
	}

	// undo reopens the game exactly
	s.UndoMove()
	if s.IsGameOver() || s.Winner() != WinnerNone || s.CurrentPlayer() != Black {
		t.Errorf("after undo: over=%v winner=%q toMove=%s", s.IsGameOver(), s.Winner(), s.CurrentPlayer())
	}
}

func TestStalemate(t *testing.T) {
	s := mustFEN(t, "k7/8/1K6/2Q5/8/8/8/8 w - - 0 1")
	play(t, s, "c5c7")

	if !s.IsStalemate(Black) {
		t.Error("IsStalemate(black) = false")
	}
	if s.IsInCheckmate(Black) {
		t.Error("IsInCheckmate(black) = true without check")
	}
	if !s.IsGameOver() || s.Winner() != WinnerDraw {
		t.Errorf("over=%v winner=%q, want true draw", s.IsGameOver(), s.Winner())
	}
}

func TestPromotion(t *testing.T) {
	tests := []struct {
		name   string
		fen    string
		move   string
		square string
		want   Piece
	}{
		{"white pawn", "8/P6k/8/8/8/8/8/K7 w - - 0 1", "a7a8", "a8", Piece{Type: Queen, Color: White}},
		{"white pawn capturing", "1r6/P6k/8/8/8/8/8/K7 w - - 0 1", "a7b8", "b8", Piece{Type: Queen, Color: White}},
		{"black pawn", "k7/8/8/8/8/8/6p1/K7 b - - 0 1", "g2g1", "g1", Piece{Type: Queen, Color: Black}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustFEN(t, tt.fen)
			play(t, s, tt.move)
			if got := s.Board().Get(mustSquare(t, tt.square)); got != tt.want {
				t.Errorf("%s holds %+v, want %+v", tt.square, got, tt.want)
			}

			s.UndoMove()
			m := mustMove(t, tt.move)
			if got := s.Board().Get(m.From); got.Type != Pawn {
				t.Errorf("after undo %s holds %+v, want a pawn", m.From, got)
			}
		})
	}
}

func TestUndoOnEmptyHistory(t *testing.T) {
	s := NewGameState()
	s.UndoMove()
	if s.FEN() != NewGameState().FEN() || s.CurrentPlayer() != White {
		t.Error("UndoMove on empty history changed the state")
	}
}

func TestMakeMoveFromEmptySquareIsNoOp(t *testing.T) {
	s := NewGameState()
	s.MakeMove(mustMove(t, "e4e5"))
	if len(s.History()) != 0 || s.CurrentPlayer() != White {
		t.Error("MakeMove from an empty square changed the state")
	}
}

func TestEnd(t *testing.T) {
	s := NewGameState()
	s.End(WinnerDraw)
	s.End(WinnerWhite)
	if !s.IsGameOver() || s.Winner() != WinnerDraw {
		t.Errorf("over=%v winner=%q, want true draw", s.IsGameOver(), s.Winner())
	}
}

func TestMovesMade(t *testing.T) {
	s := NewGameState()
	play(t, s, "e2e4", "c7c5", "g1f3")
	want := []string{"e2e4", "c7c5", "g1f3"}
	if diff := cmp.Diff(want, s.MovesMade()); diff != "" {
		t.Errorf("MovesMade() mismatch (-want +got):\n%s", diff)
	}
}
