package model

import (
	"errors"
	"fmt"
)

var ErrInvalidNotation = errors.New("invalid notation")

// Move is a (from, to) square pair. Promotion is inferred when the move is applied.
type Move struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

// String returns the coordinate notation of the move, e.g. "e2e4".
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// MoveRecord is the full pre-move snapshot pushed onto history by MakeMove.
type MoveRecord struct {
	Board         Board
	CurrentPlayer Color
	GameOver      bool
	Winner        Winner
	Move          Move
}

// ParsePosition parses a square such as "e4".
func ParsePosition(s string) (Position, error) {
	if len(s) != 2 {
		return Position{}, fmt.Errorf("square %q: %w", s, ErrInvalidNotation)
	}
	pos := Position{X: int(s[0] - 'a'), Y: 8 - int(s[1]-'0')}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Position{}, fmt.Errorf("square %q: %w", s, ErrInvalidNotation)
	}
	return pos, nil
}

// ParseMove parses coordinate notation such as "e2e4".
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrInvalidNotation)
	}
	from, err := ParsePosition(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParsePosition(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}

// getNotation renders a short algebraic form of a move against the pre-move board.
// It is only used for display; no disambiguation is attempted.
func getNotation(board *Board, move Move) string {
	piece := board.Get(move.From)
	prefix := ""
	if piece.Type != Pawn {
		prefix = piece.Type.getPieceNotation()
	}
	capture := ""
	if !board.Get(move.To).IsEmpty() {
		capture = "x"
		if piece.Type == Pawn {
			prefix = fmt.Sprintf("%c", move.From.X+97)
		}
	}
	suffix := ""
	if piece.Type == Pawn && move.To.Y == promotionRow(piece.Color) {
		suffix = "=Q"
	}
	return fmt.Sprintf("%s%s%s%s", prefix, capture, move.To.getSquareNotation(), suffix)
}
