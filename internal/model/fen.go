package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// InitialFEN is the standard starting position. Castling rights are not modeled.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

var ErrInvalidFEN = errors.New("invalid FEN string")

var fenPieceTypes = map[rune]PieceType{
	'k': King,
	'q': Queen,
	'r': Rook,
	'b': Bishop,
	'n': Knight,
	'p': Pawn,
}

// ParseFEN builds a game state from the placement and side-to-move fields of a FEN
// string. Castling, en-passant and clock fields are accepted and ignored.
func ParseFEN(fen string) (*GameState, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", ErrInvalidFEN)
	}

	board, err := parsePiecePlacement(parts[0])
	if err != nil {
		return nil, err
	}

	toMove := White
	if len(parts) > 1 {
		switch parts[1] {
		case "w":
		case "b":
			toMove = Black
		default:
			return nil, fmt.Errorf("side to move %q: %w", parts[1], ErrInvalidFEN)
		}
	}

	for _, c := range []Color{White, Black} {
		if _, ok := FindKing(&board, c); !ok {
			return nil, fmt.Errorf("no %s king: %w", c, ErrInvalidFEN)
		}
	}

	return NewGameStateFromBoard(board, toMove), nil
}

func parsePiecePlacement(placement string) (Board, error) {
	board := EmptyBoard()
	rows := strings.Split(placement, "/")
	if len(rows) != 8 {
		return board, fmt.Errorf("expected 8 ranks, got %d: %w", len(rows), ErrInvalidFEN)
	}
	for y, row := range rows {
		x := 0
		for _, r := range row {
			if r >= '1' && r <= '8' {
				x += int(r - '0')
				continue
			}
			pieceType, ok := fenPieceTypes[unicode.ToLower(r)]
			if !ok {
				return board, fmt.Errorf("piece %q: %w", r, ErrInvalidFEN)
			}
			if x > 7 {
				return board, fmt.Errorf("rank %d too long: %w", 8-y, ErrInvalidFEN)
			}
			color := Black
			if unicode.IsUpper(r) {
				color = White
			}
			board.Set(Position{X: x, Y: y}, Piece{Type: pieceType, Color: color})
			x++
		}
		if x != 8 {
			return board, fmt.Errorf("rank %d has %d files: %w", 8-y, x, ErrInvalidFEN)
		}
	}
	return board, nil
}

// FEN renders the position. The fullmove number is derived from the history length.
func (s *GameState) FEN() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		empty := 0
		for x := 0; x < 8; x++ {
			piece := s.board.Get(Position{X: x, Y: y})
			if piece.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if y < 7 {
			sb.WriteByte('/')
		}
	}
	side := "w"
	if s.currentPlayer == Black {
		side = "b"
	}
	fullmove := len(s.history)/2 + 1
	return fmt.Sprintf("%s %s - - 0 %d", sb.String(), side, fullmove)
}
