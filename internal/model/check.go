package model

// FindKing returns the square of color's king. The second result is false only if the
// king is missing, which no reachable game state allows.
func FindKing(board *Board, color Color) (Position, bool) {
	king := Piece{Type: King, Color: color}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pos := Position{X: x, Y: y}
			if board.Get(pos) == king {
				return pos, true
			}
		}
	}
	return Position{}, false
}

// SquareUnderAttack reports whether any piece of defender's opponent attacks pos.
// Turn order and self-check are ignored.
func SquareUnderAttack(board *Board, pos Position, defender Color) bool {
	attacker := defender.Opponent()
	// an attacker never "captures" its own piece
	if target := board.Get(pos); !target.IsEmpty() && target.Color == attacker {
		return false
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			from := Position{X: x, Y: y}
			piece := board.Get(from)
			if piece.IsEmpty() || piece.Color != attacker {
				continue
			}
			if IsAttackReachable(board, from, pos) {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether color's king is attacked. A missing king counts as check.
func IsInCheck(board *Board, color Color) bool {
	king, ok := FindKing(board, color)
	if !ok {
		return true
	}
	return SquareUnderAttack(board, king, color)
}
