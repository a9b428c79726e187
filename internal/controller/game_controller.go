package controller

import (
	"fmt"

	"github.com/benbeisheim/fablechess-backend/internal/model"
	"github.com/benbeisheim/fablechess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Variant string `json:"variant"`
	Hotseat bool   `json:"hotseat"`
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type saveRequest struct {
	Name string `json:"name"`
}

type loadRequest struct {
	Name    string `json:"name"`
	Hotseat bool   `json:"hotseat"`
}

type matchmakingRequest struct {
	Variant string `json:"variant"`
}

// parseBody decodes an optional JSON body; an empty body leaves out untouched.
// Failures wrap errInvalidBody so handlers can answer with errorResponse.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	return nil
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, err)
	}
	variant, err := model.ParseVariant(req.Variant)
	if err != nil {
		return errorResponse(c, err)
	}

	gameID, color, err := gc.gameService.CreateGame(playerID(c), variant, req.Hotseat)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"color":   color,
		"variant": variant,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	color, err := gc.gameService.JoinGame(gameID, playerID(c))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

// runCommand executes cmd and answers with the result and the new state.
func (gc *GameController) runCommand(c *fiber.Ctx, cmd model.Command) error {
	gameID := c.Params("gameId")
	result, err := gc.gameService.HandleCommand(gameID, playerID(c), cmd)
	if err != nil {
		return errorResponse(c, err)
	}
	gameState, err := gc.gameService.GetGameState(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"result": result,
		"state":  gameState,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, err)
	}
	return gc.runCommand(c, model.Command{Kind: model.CommandMove, From: req.From, To: req.To})
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	return gc.runCommand(c, model.Command{Kind: model.CommandUndo})
}

func (gc *GameController) Redo(c *fiber.Ctx) error {
	return gc.runCommand(c, model.Command{Kind: model.CommandRedo})
}

func (gc *GameController) Hint(c *fiber.Ctx) error {
	result, err := gc.gameService.HandleCommand(c.Params("gameId"), playerID(c),
		model.Command{Kind: model.CommandHint, Square: c.Params("square")})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) Threats(c *fiber.Ctx) error {
	result, err := gc.gameService.HandleCommand(c.Params("gameId"), playerID(c),
		model.Command{Kind: model.CommandThreats, Square: c.Params("square")})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(result)
}

func (gc *GameController) SaveGame(c *fiber.Ctx) error {
	var req saveRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, err)
	}
	summary, err := gc.gameService.SaveGame(c.Params("gameId"), playerID(c), req.Name)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

func (gc *GameController) LoadGame(c *fiber.Ctx) error {
	var req loadRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, err)
	}
	gameID, color, err := gc.gameService.LoadGame(playerID(c), req.Name, req.Hotseat)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game loaded",
		"game_id": gameID,
		"color":   color,
	})
}

// ExportGame downloads the move record as a zstd-compressed text file.
func (gc *GameController) ExportGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	data, err := gc.gameService.ExportGame(gameID)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/zstd")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.txt.zst"`, gameID))
	return c.Send(data)
}

func (gc *GameController) ListSaves(c *fiber.Ctx) error {
	saves, err := gc.gameService.ListSaves()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(saves)
}

func (gc *GameController) DeleteSave(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteSave(c.Params("name")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	var req matchmakingRequest
	if err := parseBody(c, &req); err != nil {
		return errorResponse(c, err)
	}
	variant, err := model.ParseVariant(req.Variant)
	if err != nil {
		return errorResponse(c, err)
	}

	if err := gc.gameService.JoinMatchmaking(playerID(c), variant); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  "queued",
		"variant": variant,
	})
}

func (gc *GameController) LeaveMatchmaking(c *fiber.Ctx) error {
	gc.gameService.LeaveMatchmaking(playerID(c))
	return c.JSON(fiber.Map{
		"status": "left",
	})
}
