package model

import "testing"

func mustFEN(t *testing.T, fen string) *GameState {
	t.Helper()
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return s
}

func mustMove(t *testing.T, notation string) Move {
	t.Helper()
	m, err := ParseMove(notation)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", notation, err)
	}
	return m
}

func mustSquare(t *testing.T, notation string) Position {
	t.Helper()
	p, err := ParsePosition(notation)
	if err != nil {
		t.Fatalf("ParsePosition(%q) error: %v", notation, err)
	}
	return p
}

// play validates and applies each move in turn, failing on the first illegal one.
func play(t *testing.T, s *GameState, moves ...string) {
	t.Helper()
	for _, n := range moves {
		m := mustMove(t, n)
		if !s.IsValidMove(m.From, m.To, s.CurrentPlayer()) {
			t.Fatalf("move %s rejected for %s in %s", n, s.CurrentPlayer(), s.FEN())
		}
		s.MakeMove(m)
	}
}

func moveStrings(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	return out
}
