package model

import (
	"errors"
	"testing"
)

func TestParseFENInitial(t *testing.T) {
	s := mustFEN(t, InitialFEN)
	want := NewGameState()
	if *s.Board() != *want.Board() {
		t.Errorf("ParseFEN(InitialFEN) board differs from NewBoard:\n%s", s.Board())
	}
	if s.CurrentPlayer() != White {
		t.Errorf("CurrentPlayer() = %s, want white", s.CurrentPlayer())
	}
	if got := NewGameState().FEN(); got != InitialFEN {
		t.Errorf("FEN() = %q, want %q", got, InitialFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"4k3/8/8/8/8/8/8/4K3 b - - 0 1",
		"r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w - - 0 1",
		"8/P6k/8/8/8/8/8/K7 w - - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			if got := mustFEN(t, fen).FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestFENAfterMoves(t *testing.T) {
	s := NewGameState()
	play(t, s, "e2e4", "e7e5")
	want := "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w - - 0 2"
	if got := s.FEN(); got != want {
		t.Errorf("FEN() = %q, want %q", got, want)
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"too few ranks", "8/8/8/8 w - - 0 1"},
		{"bad piece", "4k3/8/8/8/8/8/8/4X3 w - - 0 1"},
		{"rank too long", "4k4/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"rank too short", "4k2/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"missing king", "8/8/8/8/8/8/8/4K3 w - - 0 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFEN(tt.fen)
			if !errors.Is(err, ErrInvalidFEN) {
				t.Errorf("ParseFEN(%q) error = %v, want ErrInvalidFEN", tt.fen, err)
			}
		})
	}
}
