package processor

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/engine"
	"github.com/INDA23PlusPlus/redkar-chess/internal/game"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
)

// ComputerMove is the move string that asks the computer player to move
const ComputerMove = "cccc"

// FEN validation regex: placement and side to move, optional trailing fields
var fenPattern = regexp.MustCompile(`^[rnbqkpRNBQKP1-8/]+ [wb]( [KQkq-]+( [a-h1-8-]+( \d+( \d+)?)?)?)?$`)

// Config sets up the computer player pool
type Config struct {
	Workers int    // computer move workers, default 2
	Seed    uint64 // 0 picks a random seed
}

// Processor handles command execution and coordinates between service and
// the computer player queue
type Processor struct {
	svc   *service.Service
	queue *MoveQueue
}

// New creates a processor with its own computer player pool
func New(svc *service.Service, cfg Config) (*Processor, error) {
	if svc == nil {
		return nil, fmt.Errorf("processor requires a service")
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &Processor{
		svc:   svc,
		queue: NewMoveQueue(cfg.Workers, seed),
	}, nil
}

func (p *Processor) Execute(cmd Command) ProcessorResponse {
	switch cmd.Type {
	case CmdCreateGame:
		return p.handleCreateGame(cmd)
	case CmdGetGame:
		return p.handleGetGame(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdDeleteGame:
		return p.handleDeleteGame(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdGetLegalMoves:
		return p.handleGetLegalMoves(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrCodeInvalidRequest)
	}
}

// isFENSafe checks for control characters and the FEN pattern
func (p *Processor) isFENSafe(fen string) bool {
	for _, r := range fen {
		if unicode.IsControl(r) {
			return false
		}
	}
	return fenPattern.MatchString(fen)
}

// isMoveSafe accepts coordinate notation only: [a-h][1-8][a-h][1-8]
func (p *Processor) isMoveSafe(move string) bool {
	if len(move) != 4 {
		return false
	}
	return move[0] >= 'a' && move[0] <= 'h' &&
		move[1] >= '1' && move[1] <= '8' &&
		move[2] >= 'a' && move[2] <= 'h' &&
		move[3] >= '1' && move[3] <= '8'
}

// handleCreateGame creates a new game from the standard layout or a FEN
func (p *Processor) handleCreateGame(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.CreateGameRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	fen := strings.TrimSpace(args.FEN)
	if fen != "" && !p.isFENSafe(fen) {
		return p.errorResponse("invalid FEN format or characters", core.ErrCodeInvalidFEN)
	}

	gameID := p.svc.GenerateGameID()
	whitePlayer := core.NewPlayer(args.White, core.ColorWhite)
	blackPlayer := core.NewPlayer(args.Black, core.ColorBlack)

	if err := p.svc.CreateGame(gameID, whitePlayer, blackPlayer, fen); err != nil {
		if errors.Is(err, core.ErrInvalidFEN) || errors.Is(err, core.ErrInvalidPosition) {
			return p.errorDetails("invalid FEN", core.ErrCodeInvalidFEN, err)
		}
		return p.errorResponse(fmt.Sprintf("failed to create game: %v", err), core.ErrCodeInternalError)
	}

	return p.gameResponse(gameID, false)
}

// handleGetGame retrieves game state
func (p *Processor) handleGetGame(cmd Command) ProcessorResponse {
	return p.gameResponse(cmd.GameID, false)
}

// handleMakeMove plays a human move, or starts the computer move for "cccc"
func (p *Processor) handleMakeMove(cmd Command) ProcessorResponse {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrCodeInvalidRequest)
	}

	move := strings.ToLower(strings.TrimSpace(args.Move))
	if move == ComputerMove {
		return p.startComputerMove(cmd.GameID)
	}

	if !p.isMoveSafe(move) {
		return p.errorResponse("invalid move format", core.ErrCodeInvalidMove)
	}
	m, err := core.ParseMove(move)
	if err != nil {
		return p.errorDetails("invalid move format", core.ErrCodeInvalidMove, err)
	}

	if _, err := p.svc.MakeMove(cmd.GameID, m); err != nil {
		return p.moveErrorResponse(err)
	}

	return p.gameResponse(cmd.GameID, false)
}

func (p *Processor) startComputerMove(gameID string) ProcessorResponse {
	b, color, err := p.svc.BeginComputerMove(gameID)
	if err != nil {
		return p.moveErrorResponse(err)
	}

	if err := p.triggerComputerMove(gameID, b, color); err != nil {
		p.svc.AbortComputerMove(gameID)
		return p.errorResponse(fmt.Sprintf("computer player unavailable: %v", err), core.ErrCodeInternalError)
	}

	return p.gameResponse(gameID, true)
}

// triggerComputerMove queues the search and applies its result
func (p *Processor) triggerComputerMove(gameID string, b board.Board, color core.Color) error {
	return p.queue.SubmitAsync(gameID, b, color, func(result MoveResult) {
		if result.Error != nil {
			log.Printf("Computer player error for game %s: %v", gameID, result.Error)
			p.svc.AbortComputerMove(gameID)
			return
		}
		if !result.Found {
			log.Printf("Computer player found no move for game %s", gameID)
			p.svc.AbortComputerMove(gameID)
			return
		}

		if _, err := p.svc.CompleteComputerMove(gameID, result.Move); err != nil {
			// game deleted or the move went stale
			log.Printf("Computer move %s for game %s rejected: %v", result.Move, gameID, err)
			p.svc.AbortComputerMove(gameID)
		}
	})
}

// handleDeleteGame removes a game
func (p *Processor) handleDeleteGame(cmd Command) ProcessorResponse {
	if err := p.svc.DeleteGame(cmd.GameID); err != nil {
		if errors.Is(err, core.ErrMoveInProgress) {
			return p.errorResponse("cannot delete game while computer move is in progress", core.ErrCodeInvalidRequest)
		}
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
	}
}

// handleGetBoard returns board visualization
func (p *Processor) handleGetBoard(cmd Command) ProcessorResponse {
	var resp core.BoardResponse
	err := p.svc.View(cmd.GameID, func(g *game.Game, _ bool) {
		b := g.Board()
		resp = core.BoardResponse{
			FEN:   g.CurrentFEN(),
			Board: b.ToASCII(),
		}
	})
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

// handleGetLegalMoves lists the moves available to the side on move
func (p *Processor) handleGetLegalMoves(cmd Command) ProcessorResponse {
	resp := core.LegalMovesResponse{Moves: []string{}}
	err := p.svc.View(cmd.GameID, func(g *game.Game, _ bool) {
		resp.Turn = g.Turn().String()
		if g.Finished() {
			return
		}
		b := g.Board()
		for m := range engine.LegalMoves(&b, g.Turn()) {
			resp.Moves = append(resp.Moves, m.String())
		}
	})
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
		Data:    resp,
	}
}

// gameResponse wraps the current game state in a response
func (p *Processor) gameResponse(gameID string, pending bool) ProcessorResponse {
	var resp core.GameResponse
	err := p.svc.View(gameID, func(g *game.Game, isPending bool) {
		resp = buildGameResponse(gameID, g, isPending)
	})
	if err != nil {
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	}

	return ProcessorResponse{
		Success: true,
		Pending: pending,
		Data:    resp,
	}
}

// buildGameResponse constructs standard game response
func buildGameResponse(gameID string, g *game.Game, pending bool) core.GameResponse {
	resp := core.GameResponse{
		GameID: gameID,
		FEN:    g.CurrentFEN(),
		Turn:   g.Turn().String(),
		State:  g.Outcome().String(),
		Moves:  g.Moves(),
		Players: core.PlayersResponse{
			White: g.GetPlayer(core.ColorWhite),
			Black: g.GetPlayer(core.ColorBlack),
		},
	}
	if pending {
		resp.State = "pending"
	}
	if g.Finished() {
		resp.Termination = g.Termination().String()
		resp.Announcement = g.Announcement()
	}

	if result := g.LastResult(); result != nil {
		resp.LastMove = &core.MoveInfo{
			Move:        result.Move.String(),
			PlayerColor: result.Player.String(),
			Class:       result.Class.String(),
		}
	}

	return resp
}

// moveErrorResponse maps service and rule errors to API codes
func (p *Processor) moveErrorResponse(err error) ProcessorResponse {
	switch {
	case errors.Is(err, core.ErrGameNotFound):
		return p.errorResponse("game not found", core.ErrCodeGameNotFound)
	case errors.Is(err, core.ErrGameOver):
		return p.errorResponse("game is over", core.ErrCodeGameOver)
	case errors.Is(err, core.ErrMoveInProgress):
		return p.errorResponse("computer move in progress", core.ErrCodeInvalidRequest)
	case errors.Is(err, core.ErrNotHumanTurn), errors.Is(err, core.ErrNotComputerTurn):
		return p.errorResponse(err.Error(), core.ErrCodeNotHumanTurn)
	case core.IsMoveError(err):
		return p.errorDetails("illegal move", core.ErrCodeInvalidMove, err)
	default:
		return p.errorResponse(fmt.Sprintf("move failed: %v", err), core.ErrCodeInternalError)
	}
}

// errorResponse creates error response
func (p *Processor) errorResponse(message, code string) ProcessorResponse {
	return ProcessorResponse{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}

func (p *Processor) errorDetails(message, code string, err error) ProcessorResponse {
	resp := p.errorResponse(message, code)
	resp.Error.Details = err.Error()
	return resp
}

// Close stops the computer player pool
func (p *Processor) Close() error {
	return p.queue.Shutdown(5 * time.Second)
}
