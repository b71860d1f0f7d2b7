package ai

import "github.com/benbeisheim/chessai-backend/internal/model"

var pieceValues = map[model.PieceType]int{
	model.Pawn:   1,
	model.Knight: 3,
	model.Bishop: 3,
	model.Rook:   5,
	model.Queen:  9,
	model.King:   100,
}

// Evaluate is the material balance of board from side's point of view.
func Evaluate(board *model.Board, side model.Color) int {
	total := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := board.Get(model.Position{X: x, Y: y})
			if piece.IsEmpty() {
				continue
			}
			if piece.Color == side {
				total += pieceValues[piece.Type]
			} else {
				total -= pieceValues[piece.Type]
			}
		}
	}
	return total
}
