package commands

import (
	"fmt"
	"strings"

	"github.com/INDA23PlusPlus/redkar-chess/internal/client/api"
	"github.com/INDA23PlusPlus/redkar-chess/internal/client/display"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

func (r *Registry) registerGameCommands() {
	r.Register(&Command{
		Name:        "new",
		ShortName:   "n",
		Description: "Create a new game",
		Usage:       "new",
		Handler:     newGameHandler,
	})

	r.Register(&Command{
		Name:        "join",
		ShortName:   "j",
		Description: "Join/set current game ID",
		Usage:       "join <gameId>",
		Handler:     joinGameHandler,
	})

	r.Register(&Command{
		Name:        "move",
		ShortName:   "m",
		Description: "Make a move",
		Usage:       "move <from><to> (e.g. e2e4)",
		Handler:     moveHandler,
	})

	r.Register(&Command{
		Name:        "computer",
		ShortName:   "c",
		Description: "Trigger computer move",
		Usage:       "computer",
		Handler:     computerMoveHandler,
	})

	r.Register(&Command{
		Name:        "legal",
		ShortName:   "l",
		Description: "List legal moves for the side on move",
		Usage:       "legal",
		Handler:     legalMovesHandler,
	})

	r.Register(&Command{
		Name:        "show",
		ShortName:   "h",
		Description: "Show board and game state",
		Usage:       "show",
		Handler:     showBoardHandler,
	})

	r.Register(&Command{
		Name:        "state",
		ShortName:   "s",
		Description: "Show raw game JSON",
		Usage:       "state",
		Handler:     gameStateHandler,
	})

	r.Register(&Command{
		Name:        "delete",
		ShortName:   "d",
		Description: "Delete a game",
		Usage:       "delete [gameId]",
		Handler:     deleteGameHandler,
	})

	r.Register(&Command{
		Name:        "poll",
		ShortName:   "p",
		Description: "Long-poll for game updates",
		Usage:       "poll",
		Handler:     pollHandler,
	})
}

func (r *Registry) askPlayer(side string) core.PlayerConfig {
	switch strings.ToLower(r.ask(side+" player type (h/c) [h]: ", "h")) {
	case "c", "computer":
		return core.PlayerConfig{Type: core.PlayerComputer}
	default:
		return core.PlayerConfig{Type: core.PlayerHuman}
	}
}

func newGameHandler(r *Registry, args []string) error {
	display.Printf(r.out, display.Cyan, "\nCreating new game...")

	req := core.CreateGameRequest{
		White: r.askPlayer("White"),
		Black: r.askPlayer("Black"),
		FEN:   r.ask("Starting position (FEN) [default]: ", ""),
	}

	resp, err := r.session.Client.CreateGame(req)
	if err != nil {
		return err
	}

	r.session.CurrentGame = resp.GameID
	r.session.track(resp)

	display.Printf(r.out, display.Green, "Game created: %s", resp.GameID)
	if resp.Announcement != "" {
		display.Printf(r.out, display.Yellow, "%s", resp.Announcement)
		return nil
	}

	return r.replyIfComputer(resp)
}

func joinGameHandler(r *Registry, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: join <gameId>")
	}

	gameID := args[0]
	resp, err := r.session.Client.GetGame(gameID)
	if err != nil {
		return err
	}

	r.session.CurrentGame = gameID
	r.session.track(resp)

	display.Printf(r.out, display.Green, "Joined game: %s", gameID)
	fmt.Fprintf(r.out, "Turn: %s | State: %s | Moves: %d\n", resp.Turn, resp.State, len(resp.Moves))
	return nil
}

func moveHandler(r *Registry, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: move <from><to>")
	}
	gameID, err := r.requireGame()
	if err != nil {
		return err
	}

	resp, _, err := r.session.Client.MakeMove(gameID, args[0])
	if err != nil {
		return err
	}

	r.session.track(resp)
	display.Printf(r.out, display.Green, "Move accepted")
	if resp.Announcement != "" {
		display.Printf(r.out, display.Yellow, "%s", resp.Announcement)
		return nil
	}

	return r.replyIfComputer(resp)
}

// replyIfComputer triggers the computer move when a computer player is on
// move. Computer-only games advance one move per command.
func (r *Registry) replyIfComputer(resp *core.GameResponse) error {
	if resp.State != "ongoing" || !computerOnMove(resp) {
		return nil
	}
	display.Printf(r.out, display.Magenta, "\nComputer's turn, triggering move...")
	_, err := r.computerMove(resp.GameID)
	return err
}

func computerOnMove(resp *core.GameResponse) bool {
	p := resp.Players.White
	if resp.Turn == "b" {
		p = resp.Players.Black
	}
	return p != nil && p.Type == core.PlayerComputer
}

// computerMove starts the computer player and waits for its move
func (r *Registry) computerMove(gameID string) (*core.GameResponse, error) {
	c := r.session.Client

	resp, pending, err := c.MakeMove(gameID, api.ComputerMove)
	if err != nil {
		return nil, err
	}

	// the move may already have landed by the time the server answered
	if pending && resp.State == "pending" {
		known := len(resp.Moves)
		display.Printf(r.out, display.Magenta, "Computer is thinking...")
		if resp, err = c.GetGameWithPoll(gameID, known); err != nil {
			return nil, err
		}
		if len(resp.Moves) == known {
			r.session.track(resp)
			return nil, fmt.Errorf("computer move did not arrive (state: %s)", resp.State)
		}
	}

	r.session.track(resp)
	if resp.LastMove != nil {
		display.Printf(r.out, display.Magenta, "Computer played: %s", resp.LastMove.Move)
	}
	if resp.Announcement != "" {
		display.Printf(r.out, display.Yellow, "%s", resp.Announcement)
	}
	return resp, nil
}

func computerMoveHandler(r *Registry, args []string) error {
	gameID, err := r.requireGame()
	if err != nil {
		return err
	}
	_, err = r.computerMove(gameID)
	return err
}

func legalMovesHandler(r *Registry, args []string) error {
	gameID, err := r.requireGame()
	if err != nil {
		return err
	}

	resp, err := r.session.Client.GetLegalMoves(gameID)
	if err != nil {
		return err
	}

	if len(resp.Moves) == 0 {
		fmt.Fprintf(r.out, "%s has no legal moves\n", display.ColorForTurn(resp.Turn))
		return nil
	}
	fmt.Fprintf(r.out, "%s to move (%d): %s\n", display.ColorForTurn(resp.Turn), len(resp.Moves), strings.Join(resp.Moves, " "))
	return nil
}

func showBoardHandler(r *Registry, args []string) error {
	gameID, err := r.requireGame()
	if err != nil {
		return err
	}

	c := r.session.Client
	game, err := c.GetGame(gameID)
	if err != nil {
		return err
	}
	board, err := c.GetBoard(gameID)
	if err != nil {
		return err
	}

	r.session.track(game)

	fmt.Fprintln(r.out)
	display.RenderBoard(r.out, board.Board)

	fmt.Fprintf(r.out, "\nFEN: %s\n", game.FEN)
	fmt.Fprintf(r.out, "Turn: %s | State: %s | Moves: %d\n",
		display.ColorForTurn(game.Turn), game.State, len(game.Moves))
	if game.Announcement != "" {
		display.Printf(r.out, display.Yellow, "%s", game.Announcement)
	}

	if len(game.Moves) > 0 {
		var history strings.Builder
		for i, move := range game.Moves {
			if i%2 == 0 {
				if i > 0 {
					history.WriteByte(' ')
				}
				fmt.Fprintf(&history, "%d.%s", i/2+1, move)
			} else {
				fmt.Fprintf(&history, " %s", move)
			}
		}
		fmt.Fprintf(r.out, "\nHistory: %s\n", history.String())
	}

	if game.LastMove != nil {
		color := "White"
		if game.LastMove.PlayerColor == "b" {
			color = "Black"
		}
		fmt.Fprintf(r.out, "Last move: %s by %s (%s)\n", game.LastMove.Move, color, game.LastMove.Class)
	}

	return nil
}

func gameStateHandler(r *Registry, args []string) error {
	gameID, err := r.requireGame()
	if err != nil {
		return err
	}

	resp, err := r.session.Client.GetGame(gameID)
	if err != nil {
		return err
	}
	r.session.track(resp)

	display.Printf(r.out, display.Cyan, "Game State:")
	display.PrettyPrintJSON(r.out, resp)
	return nil
}

func deleteGameHandler(r *Registry, args []string) error {
	gameID := r.session.CurrentGame
	if len(args) > 0 {
		gameID = args[0]
	}
	if gameID == "" {
		return fmt.Errorf("specify game ID or set current game")
	}

	if err := r.session.Client.DeleteGame(gameID); err != nil {
		return err
	}

	if gameID == r.session.CurrentGame {
		r.session.CurrentGame = ""
		r.session.LastMoveCount = 0
		r.session.GameState = nil
	}

	display.Printf(r.out, display.Green, "Game deleted: %s", gameID)
	return nil
}

func pollHandler(r *Registry, args []string) error {
	gameID, err := r.requireGame()
	if err != nil {
		return err
	}

	moveCount := r.session.LastMoveCount
	display.Printf(r.out, display.Cyan, "Long-polling for updates (move count: %d)...", moveCount)

	resp, err := r.session.Client.GetGameWithPoll(gameID, moveCount)
	if err != nil {
		return err
	}
	r.session.track(resp)

	if len(resp.Moves) > moveCount {
		display.Printf(r.out, display.Green, "Game updated! New moves detected")
		if resp.LastMove != nil {
			fmt.Fprintf(r.out, "Last move: %s\n", resp.LastMove.Move)
		}
	} else {
		display.Printf(r.out, display.Yellow, "No updates (timeout)")
	}
	return nil
}
