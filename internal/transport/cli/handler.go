package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/cli"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/engine"
	"github.com/INDA23PlusPlus/redkar-chess/internal/game"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
)

// Config presets the player types. Zero asks when a game starts.
type Config struct {
	White core.PlayerType
	Black core.PlayerType
	Seed  uint64 // computer player seed, 0 picks a random one
}

type CLIHandler struct {
	svc    *service.Service
	view   *cli.CLI
	cfg    Config
	rng    *rand.Rand
	gameID string
}

// position is what the handler needs to know about the current game
type position struct {
	board        board.Board
	turn         core.Color
	next         core.PlayerType
	finished     bool
	announcement string
	last         *game.MoveResult
}

func New(svc *service.Service, view *cli.CLI, cfg Config) *CLIHandler {
	seed := cfg.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &CLIHandler{
		svc:  svc,
		view: view,
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Main game loop - simple command processing
func (h *CLIHandler) Run() error {
	for {
		cmd, err := h.view.GetCommand(h.getPrompt())
		if err != nil {
			return err
		}

		// Process command - returns false to exit
		if !h.ProcessCommand(cmd) {
			return nil
		}
	}
}

// GameID is the id of the current game, "" before the first one
func (h *CLIHandler) GameID() string {
	return h.gameID
}

func (h *CLIHandler) current() (position, bool) {
	var pos position
	if h.gameID == "" {
		return pos, false
	}
	err := h.svc.View(h.gameID, func(g *game.Game, _ bool) {
		pos = position{
			board:        g.Board(),
			turn:         g.Turn(),
			finished:     g.Finished(),
			announcement: g.Announcement(),
			last:         g.LastResult(),
		}
		if p := g.NextPlayer(); p != nil {
			pos.next = p.Type
		}
	})
	return pos, err == nil
}

// Generates the appropriate command prompt
func (h *CLIHandler) getPrompt() string {
	pos, ok := h.current()
	if !ok || pos.finished {
		return "> "
	}
	prompt := fmt.Sprintf("[%s]> ", pos.turn)
	if pos.next == core.PlayerComputer {
		prompt = "ENTER to execute computer move\n" + prompt
	}
	return prompt
}

// Handles user commands - returns false to exit
func (h *CLIHandler) ProcessCommand(cmd *cli.Command) bool {
	switch cmd.Type {
	case cli.CmdQuit:
		return false

	case cli.CmdNone:
		// Empty command triggers computer move if it's computer's turn
		if pos, ok := h.current(); ok && !pos.finished && pos.next == core.PlayerComputer {
			h.executeComputerMove()
		}

	case cli.CmdNew:
		h.StartGame("")

	case cli.CmdResume:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: resume <FEN string>")
			return true
		}
		h.StartGame(strings.Join(cmd.Args, " "))

	case cli.CmdMove:
		h.executeHumanMove(cmd.Args[0])

	case cli.CmdMoves:
		pos, ok := h.current()
		if !ok {
			h.view.ShowMessage("No active game.")
			return true
		}
		moves := []string{}
		if !pos.finished {
			for m := range engine.LegalMoves(&pos.board, pos.turn) {
				moves = append(moves, m.String())
			}
		}
		h.view.ShowLegalMoves(pos.turn, moves)

	case cli.CmdBoard:
		if pos, ok := h.current(); ok {
			h.view.DisplayBoard(&pos.board)
		} else {
			h.view.ShowMessage("No active game.")
		}

	case cli.CmdColor:
		if len(cmd.Args) < 1 {
			h.view.ShowMessage("Usage: color <off|brown|green|gray>")
			return true
		}

		theme := cli.ColorTheme(cmd.Args[0])
		if err := h.view.SetTheme(theme); err != nil {
			h.view.ShowError(err)
			return true
		}
		h.view.ShowMessage(fmt.Sprintf("Color theme set to: %s", theme))
		if pos, ok := h.current(); ok {
			h.view.DisplayBoard(&pos.board)
		}

	case cli.CmdVerbose:
		verbose := h.view.ToggleVerbose()
		h.view.ShowMessage(fmt.Sprintf("Verbose mode: %t", verbose))

	case cli.CmdHistory:
		if h.gameID == "" {
			h.view.ShowMessage("No active game.")
			return true
		}
		h.svc.View(h.gameID, func(g *game.Game, _ bool) {
			h.view.ShowGameHistory(g)
		})

	case cli.CmdHelp:
		h.view.ShowHelp()
	}

	return true
}

func (h *CLIHandler) executeHumanMove(input string) {
	pos, ok := h.current()
	if !ok {
		h.view.ShowMessage("No active game. Use 'new' or 'resume <FEN>'.")
		return
	}
	if pos.finished {
		h.view.ShowMessage("The game is over. Use 'new' or 'resume <FEN>'.")
		return
	}
	if pos.next == core.PlayerComputer {
		h.view.ShowMessage("It's not a human player's turn. Press ENTER to execute computer move.")
		return
	}

	m, err := core.ParseMove(input)
	if err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %w", err))
		return
	}
	if _, err := h.svc.MakeMove(h.gameID, m); err != nil {
		h.view.ShowError(fmt.Errorf("invalid move: %w", err))
		return
	}

	pos, _ = h.current()
	if pos.last != nil {
		h.view.ShowHumanMove(pos.last)
	}
	h.showPosition(pos)
}

func (h *CLIHandler) executeComputerMove() {
	b, color, err := h.svc.BeginComputerMove(h.gameID)
	if err != nil {
		h.view.ShowError(fmt.Errorf("engine error: %w", err))
		return
	}

	m, found := engine.RandomMove(&b, color, h.rng)
	if !found {
		h.svc.AbortComputerMove(h.gameID)
		h.view.ShowError(errors.New("engine error: no legal move"))
		return
	}
	if _, err := h.svc.CompleteComputerMove(h.gameID, m); err != nil {
		h.svc.AbortComputerMove(h.gameID)
		h.view.ShowError(fmt.Errorf("engine error: %w", err))
		return
	}

	pos, _ := h.current()
	if pos.last != nil {
		h.view.ShowComputerMove(pos.last)
	}
	h.showPosition(pos)
}

func (h *CLIHandler) showPosition(pos position) {
	h.view.DisplayBoard(&pos.board)
	if pos.finished {
		h.view.ShowGameOver(pos.announcement)
	}
}

func (h *CLIHandler) playerType(preset core.PlayerType, side string) core.PlayerType {
	if preset != 0 {
		return preset
	}
	switch h.view.Ask(fmt.Sprintf("Select %s player (h/c): ", side)) {
	case "c", "computer":
		return core.PlayerComputer
	default:
		return core.PlayerHuman
	}
}

// StartGame starts a new game, from fen when it is not empty, and makes it current
func (h *CLIHandler) StartGame(fen string) bool {
	whiteType := h.playerType(h.cfg.White, "White")
	blackType := h.playerType(h.cfg.Black, "Black")

	id := h.svc.GenerateGameID()
	white := core.NewPlayer(core.PlayerConfig{Type: whiteType}, core.ColorWhite)
	black := core.NewPlayer(core.PlayerConfig{Type: blackType}, core.ColorBlack)

	if err := h.svc.CreateGame(id, white, black, fen); err != nil {
		h.view.ShowError(fmt.Errorf("could not start the game: %w", err))
		return false
	}
	if h.gameID != "" {
		h.svc.DeleteGame(h.gameID)
	}
	h.gameID = id

	h.view.ShowMessage("Game started.")
	pos, _ := h.current()
	h.showPosition(pos)
	return true
}
