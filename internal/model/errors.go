package model

import "errors"

// Errors returned by the Game session methods. The rules engine itself reports
// illegal input with booleans.
var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrGameOver         = errors.New("game is over")
	ErrNotAuthorized    = errors.New("not authorized for this game")
	ErrNothingToUndo    = errors.New("no moves to undo")
	ErrNoMoveProposed   = errors.New("computer has no move")
	ErrConnectionExists = errors.New("connection already exists")
)
