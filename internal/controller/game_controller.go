package controller

import (
	"errors"

	"github.com/benbeisheim/chessai-backend/internal/middleware"
	"github.com/benbeisheim/chessai-backend/internal/model"
	"github.com/benbeisheim/chessai-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{gameService: gameService, logger: logger}
}

type createGameRequest struct {
	Color model.Color `json:"color"`
}

// moveRequest accepts either coordinates or coordinate notation ("e2e4").
type moveRequest struct {
	From *model.Position `json:"from"`
	To   *model.Position `json:"to"`
	Move string          `json:"move"`
}

func (r moveRequest) toMove() (model.Move, error) {
	if r.Move != "" {
		return model.ParseMove(r.Move)
	}
	if r.From == nil || r.To == nil {
		return model.Move{}, fiber.NewError(fiber.StatusBadRequest, "move requires from and to")
	}
	return model.Move{From: *r.From, To: *r.To}, nil
}

// errorStatus maps service and model errors to HTTP statuses.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrGameOver),
		errors.Is(err, model.ErrNothingToUndo),
		errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrInvalidNotation),
		errors.Is(err, service.ErrInvalidColor):
		return fiber.StatusBadRequest
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return fiber.StatusInternalServerError
}

func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		gc.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	req := createGameRequest{Color: model.White}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return gc.fail(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
		}
		if req.Color == "" {
			req.Color = model.White
		}
	}

	state, err := gc.gameService.CreateGame(middleware.PlayerID(c), req.Color)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": state.ID,
		"color":   req.Color,
		"state":   state,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

// GetPossibleMoves takes the square either as ?square=e2 or as ?x=4&y=6.
func (gc *GameController) GetPossibleMoves(c *fiber.Ctx) error {
	var pos model.Position
	if sq := c.Query("square"); sq != "" {
		p, err := model.ParsePosition(sq)
		if err != nil {
			return gc.fail(c, err)
		}
		pos = p
	} else {
		pos = model.Position{X: c.QueryInt("x", -1), Y: c.QueryInt("y", -1)}
	}

	moves, err := gc.gameService.GetPossibleMoves(c.Params("gameId"), pos)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"from":  pos,
		"moves": moves,
	})
}

func (gc *GameController) IsValidMove(c *fiber.Ctx) error {
	move, err := model.ParseMove(c.Query("from") + c.Query("to"))
	if err != nil {
		return gc.fail(c, err)
	}
	valid, err := gc.gameService.IsValidMove(c.Params("gameId"), move)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"move":  move.String(),
		"valid": valid,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return gc.fail(c, fiber.NewError(fiber.StatusBadRequest, err.Error()))
	}
	move, err := req.toMove()
	if err != nil {
		return gc.fail(c, err)
	}

	state, err := gc.gameService.HandleMove(c.Params("gameId"), middleware.PlayerID(c), move)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	state, err := gc.gameService.Undo(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) AIMove(c *fiber.Ctx) error {
	state, err := gc.gameService.AIMove(c.Params("gameId"), middleware.PlayerID(c))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// Register mounts the game routes on r.
func (gc *GameController) Register(r fiber.Router) {
	r.Post("/create", gc.CreateGame)
	r.Get("/:gameId", gc.GetGameState)
	r.Get("/:gameId/moves", gc.GetPossibleMoves)
	r.Get("/:gameId/valid", gc.IsValidMove)
	r.Post("/:gameId/move", gc.MakeMove)
	r.Post("/:gameId/undo", gc.Undo)
	r.Post("/:gameId/ai", gc.AIMove)
}
