// FILE: internal/transport/http/game_handler.go
package http

import (
	"encoding/json"
	"errors"
	"strings"

	"chessvar/internal/core"
	"chessvar/internal/game"

	"github.com/gofiber/fiber/v2"
)

// CreateGame starts a new match in the standard starting position
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	gameID, g := h.svc.CreateGame()
	return c.Status(fiber.StatusCreated).JSON(h.buildGameResponse(gameID, g))
}

// GetGame retrieves current game state
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "game not found",
			Code:  ErrGameNotFound,
		})
	}

	return c.JSON(h.buildGameResponse(gameID, g))
}

// MakeMove submits a move for the player on turn
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	req := c.Locals("validatedBody").(*MoveRequest)

	result, err := h.svc.MakeMove(gameID, req.From, req.To)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
				Error: "game not found",
				Code:  ErrGameNotFound,
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "move rejected",
			Code:    rejectionCode(err),
			Details: err.Error(),
		})
	}

	g, _ := h.svc.GetGame(gameID)
	response := h.buildGameResponse(gameID, g)
	response.LastMove = &MoveInfo{From: result.From, To: result.To}
	if result.Captured != nil {
		response.LastMove.Captured = &CaptureInfo{
			Type:  result.Captured.Type.String(),
			Color: result.Captured.Color.String(),
		}
	}

	return c.JSON(response)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	g, err := h.svc.GetGame(gameID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "game not found",
			Code:  ErrGameNotFound,
		})
	}

	return c.JSON(BoardResponse{Board: g.ToASCII()})
}

// SaveGame writes the current match state into a named save slot
func (h *HTTPHandler) SaveGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	req := c.Locals("validatedBody").(*SaveRequest)

	rec, err := h.svc.SaveGame(gameID, req.Slot)
	if err != nil {
		return c.Status(saveErrorStatus(err)).JSON(ErrorResponse{
			Error:   "cannot save game",
			Code:    saveErrorCode(err),
			Details: err.Error(),
		})
	}

	encoded, _ := json.Marshal(rec)
	return c.JSON(SaveResponse{Slot: req.Slot, Record: encoded})
}

// LoadGame replaces the match state with a previously saved slot
func (h *HTTPHandler) LoadGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	req := c.Locals("validatedBody").(*LoadRequest)

	g, err := h.svc.LoadGame(gameID, req.Slot)
	if err != nil {
		return c.Status(saveErrorStatus(err)).JSON(ErrorResponse{
			Error:   "cannot load game",
			Code:    saveErrorCode(err),
			Details: err.Error(),
		})
	}

	return c.JSON(h.buildGameResponse(gameID, g))
}

// SetTurn overrides the turn holder, used when restoring external state
func (h *HTTPHandler) SetTurn(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	req := c.Locals("validatedBody").(*SetTurnRequest)

	turn, err := core.ParseColorLabel(req.Turn)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid color",
			Code:    ErrInvalidRequest,
			Details: err.Error(),
		})
	}

	if err := h.svc.SetTurn(gameID, turn); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "game not found",
			Code:  ErrGameNotFound,
		})
	}

	g, _ := h.svc.GetGame(gameID)
	return c.JSON(h.buildGameResponse(gameID, g))
}

// DeleteGame ends and cleans up a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if err := h.svc.DeleteGame(gameID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "game not found",
			Code:  ErrGameNotFound,
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Helper: Build standard game response
func (h *HTTPHandler) buildGameResponse(gameID string, g *game.Game) GameResponse {
	return GameResponse{
		GameID: gameID,
		Turn:   g.Turn().String(),
		State:  g.State().String(),
		Board:  snapshotToBoard(g.BoardSnapshot()),
	}
}

// Helpers: map save/load failures onto statuses and codes
func saveErrorStatus(err error) int {
	switch {
	case strings.Contains(err.Error(), "not found"):
		return fiber.StatusNotFound
	case strings.Contains(err.Error(), "persistence disabled"):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}

func saveErrorCode(err error) string {
	switch {
	case strings.Contains(err.Error(), "game not found"):
		return ErrGameNotFound
	case strings.Contains(err.Error(), "persistence disabled"):
		return ErrStorageUnavailable
	case errors.Is(err, core.ErrGameOver):
		return ErrGameOver
	default:
		return ErrInvalidRequest
	}
}
