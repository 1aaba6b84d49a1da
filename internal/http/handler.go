package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/processor"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
)

type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

// statusFor maps an API error code to its HTTP status
func statusFor(code string) int {
	switch code {
	case core.ErrCodeGameNotFound:
		return fiber.StatusNotFound
	case core.ErrCodeGameOver, core.ErrCodeNotHumanTurn:
		return fiber.StatusConflict
	case core.ErrCodeInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}

func reply(c *fiber.Ctx, resp processor.ProcessorResponse, okStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Pending {
		okStatus = fiber.StatusAccepted
	}
	if resp.Data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func invalidGameID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid game ID format",
		Code:    core.ErrCodeInvalidRequest,
		Details: "game ID must be a valid UUID",
	})
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation bypass detected",
		Code:  core.ErrCodeInternalError,
	})
}

// Health check endpoint
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"time":    time.Now().Unix(),
		"storage": h.svc.GetStorageHealth(),
	})
}

// CreateGame creates a new game with specified player types
func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return validationBypass(c)
	}

	return reply(c, h.proc.Execute(processor.NewCreateGameCommand(req)), fiber.StatusCreated)
}

// GetGame retrieves current game state. With wait=true and moveCount set
// it long-polls until the game moves past moveCount.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	if c.Query("wait", "false") == "true" {
		moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
		if err != nil {
			moveCount = -1
		}

		err = h.svc.WaitForChange(c.Context(), gameID, moveCount)
		if errors.Is(err, context.Canceled) {
			return nil // client went away
		}
		// not found falls through to the regular lookup
	}

	return reply(c, h.proc.Execute(processor.NewGetGameCommand(gameID)), fiber.StatusOK)
}

// MakeMove submits a move, or "cccc" to let the computer player move
func (h *HTTPHandler) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}

	return reply(c, h.proc.Execute(processor.NewMakeMoveCommand(gameID, req)), fiber.StatusOK)
}

// GetLegalMoves lists the legal moves for the side on move
func (h *HTTPHandler) GetLegalMoves(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	return reply(c, h.proc.Execute(processor.NewGetLegalMovesCommand(gameID)), fiber.StatusOK)
}

// DeleteGame removes a game
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	return reply(c, h.proc.Execute(processor.NewDeleteGameCommand(gameID)), fiber.StatusNoContent)
}

// GetBoard returns ASCII representation of the board
func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return invalidGameID(c)
	}

	return reply(c, h.proc.Execute(processor.NewGetBoardCommand(gameID)), fiber.StatusOK)
}
