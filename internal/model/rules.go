package model

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// pawnDirection is the row delta of a forward pawn step.
func pawnDirection(c Color) int {
	if c == White {
		return -1
	}
	return 1
}

func pawnStartRow(c Color) int {
	if c == White {
		return 6
	}
	return 1
}

func promotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 7
}

// IsGeometricallyLegal reports whether the piece on start may move to end by its
// movement pattern, given current occupancy. It does not look at turn order, own-piece
// captures or self-check; callers handle those.
func IsGeometricallyLegal(board *Board, start, end Position, mover Color) bool {
	piece := board.Get(start)
	switch piece.Type {
	case Pawn:
		return isValidPawnMove(board, start, end, mover)
	case Rook:
		return isValidStraightLineMove(board, start, end)
	case Bishop:
		return isValidDiagonalMove(board, start, end)
	case Queen:
		return isValidStraightLineMove(board, start, end) || isValidDiagonalMove(board, start, end)
	case Knight:
		return isValidKnightMove(start, end)
	case King:
		return isValidKingMove(start, end)
	}
	return false
}

// IsAttackReachable reports whether the piece on start attacks end. Pawns attack the two
// forward diagonals whether or not an enemy piece stands there.
func IsAttackReachable(board *Board, start, end Position) bool {
	piece := board.Get(start)
	if piece.Type == Pawn {
		return isValidPawnAttack(start, end, piece.Color)
	}
	return IsGeometricallyLegal(board, start, end, piece.Color)
}

func isValidPawnMove(board *Board, start, end Position, mover Color) bool {
	dir := pawnDirection(mover)
	dy := end.Y - start.Y
	switch abs(end.X - start.X) {
	case 0:
		if !board.Get(end).IsEmpty() {
			return false
		}
		if dy == dir {
			return true
		}
		return start.Y == pawnStartRow(mover) && dy == 2*dir &&
			board.Get(Position{X: start.X, Y: start.Y + dir}).IsEmpty()
	case 1:
		target := board.Get(end)
		return dy == dir && !target.IsEmpty() && target.Color != mover
	}
	return false
}

func isValidPawnAttack(start, end Position, c Color) bool {
	return abs(end.X-start.X) == 1 && end.Y-start.Y == pawnDirection(c)
}

// pathIsClear walks the squares strictly between start and end along dx, dy.
func pathIsClear(board *Board, start, end Position) bool {
	dx, dy := sign(end.X-start.X), sign(end.Y-start.Y)
	pos := Position{X: start.X + dx, Y: start.Y + dy}
	for pos != end {
		if !board.Get(pos).IsEmpty() {
			return false
		}
		pos = Position{X: pos.X + dx, Y: pos.Y + dy}
	}
	return true
}

func isValidStraightLineMove(board *Board, start, end Position) bool {
	if start == end || (start.X != end.X && start.Y != end.Y) {
		return false
	}
	return pathIsClear(board, start, end)
}

func isValidDiagonalMove(board *Board, start, end Position) bool {
	if start == end || abs(end.X-start.X) != abs(end.Y-start.Y) {
		return false
	}
	return pathIsClear(board, start, end)
}

func isValidKnightMove(start, end Position) bool {
	dx, dy := abs(end.X-start.X), abs(end.Y-start.Y)
	return (dx == 1 && dy == 2) || (dx == 2 && dy == 1)
}

func isValidKingMove(start, end Position) bool {
	return max(abs(end.X-start.X), abs(end.Y-start.Y)) == 1
}
