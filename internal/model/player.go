package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

// Winner is the side that won a finished game, or WinnerDraw.
type Winner string

const (
	WinnerNone  Winner = ""
	WinnerWhite Winner = "white"
	WinnerBlack Winner = "black"
	WinnerDraw  Winner = "draw"
)

func winnerOf(c Color) Winner {
	if c == White {
		return WinnerWhite
	}
	return WinnerBlack
}

// Result is the outcome as seen by the human player.
type Result string

const (
	ResultNone     Result = ""
	ResultHumanWin Result = "human"
	ResultAIWin    Result = "ai"
	ResultDraw     Result = "draw"
)

type Player struct {
	ID    string
	Color Color
}

type ClientPlayer struct {
	ID       string `json:"name"`
	Color    Color  `json:"color"`
	TimeUsed int    `json:"timeUsed"`
}
