package model

import (
	"fmt"
	"strings"
)

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "P"
	}
	return ""
}

const (
	NoPiece PieceType = ""
	King    PieceType = "king"
	Queen   PieceType = "queen"
	Rook    PieceType = "rook"
	Bishop  PieceType = "bishop"
	Knight  PieceType = "knight"
	Pawn    PieceType = "pawn"
)

// Piece is an immutable (type, color) pair. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "."
	}
	n := p.Type.getPieceNotation()
	if p.Color == Black {
		return string(n[0] + 'a' - 'A')
	}
	return n
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < 8 && p.Y >= 0 && p.Y < 8
}

func (p Position) getSquareNotation() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) String() string {
	if !p.InBounds() {
		return fmt.Sprintf("(%d,%d)", p.X, p.Y)
	}
	return p.getSquareNotation()
}

// Board is the 8x8 occupancy grid. Row 0 is rank 8, row 7 is rank 1.
// Board is a value type: assigning or cloning it never shares squares.
type Board struct {
	squares [8][8]Piece
}

func (b *Board) Get(pos Position) Piece {
	return b.squares[pos.Y][pos.X]
}

func (b *Board) Set(pos Position, piece Piece) {
	b.squares[pos.Y][pos.X] = piece
}

func (b *Board) Clear(pos Position) {
	b.squares[pos.Y][pos.X] = Piece{}
}

func (b *Board) Clone() Board {
	return *b
}

// Grid returns a rendering snapshot of the board. Empty squares are nil.
func (b *Board) Grid() [][]*Piece {
	grid := make([][]*Piece, 8)
	for y := 0; y < 8; y++ {
		grid[y] = make([]*Piece, 8)
		for x := 0; x < 8; x++ {
			if p := b.squares[y][x]; !p.IsEmpty() {
				grid[y][x] = &p
			}
		}
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			sb.WriteString(b.squares[y][x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func EmptyBoard() Board {
	return Board{}
}

func NewBoard() Board {
	board := Board{}
	for i := 0; i < 8; i++ {
		board.squares[0][i] = Piece{Type: backRank[i], Color: Black}
		board.squares[1][i] = Piece{Type: Pawn, Color: Black}
		board.squares[6][i] = Piece{Type: Pawn, Color: White}
		board.squares[7][i] = Piece{Type: backRank[i], Color: White}
	}
	return board
}
