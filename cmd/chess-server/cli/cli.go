// Package cli implements the server's "db" maintenance subcommands.
package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"

	"github.com/INDA23PlusPlus/redkar-chess/internal/storage"
)

// Run is the entry point for the CLI mini-app
func Run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, query, moves")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	case "moves":
		return runMoves(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

// openStore parses the common -path flag plus fs's own flags
func openStore(fs *flag.FlagSet, args []string) (*storage.Store, string, error) {
	path := fs.String("path", "", "Database file path (required)")

	if err := fs.Parse(args); err != nil {
		return nil, "", err
	}
	if *path == "" {
		return nil, "", fmt.Errorf("database path required")
	}

	store, err := storage.NewStore(*path, false)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open store: %w", err)
	}
	return store, *path, nil
}

func runInit(args []string, out io.Writer) error {
	store, path, err := openStore(flag.NewFlagSet("init", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	fmt.Fprintf(out, "Database initialized at: %s\n", path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	force := fs.Bool("force", false, "Skip the confirmation prompt")

	store, path, err := openStore(fs, args)
	if err != nil {
		return err
	}

	if !*force && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(out, "Delete %s and every recorded game? [y/N] ", path)
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			store.Close()
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	if err := store.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}

	fmt.Fprintf(out, "Database deleted: %s\n", path)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID to filter (optional, * for all)")
	playerID := fs.String("playerId", "", "Player ID to filter (optional, * for all)")

	store, _, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	games, err := store.QueryGames(*gameID, *playerID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Game ID\tWhite Player\tBlack Player\tOutcome\tTermination\tStart Time")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, g := range games {
		termination := g.Termination
		if termination == "" {
			termination = "-"
		}
		fmt.Fprintf(w, "%s\t%s (T%d)\t%s (T%d)\t%s\t%s\t%s\n",
			g.GameID,
			shortID(g.WhitePlayerID), g.WhiteType,
			shortID(g.BlackPlayerID), g.BlackType,
			g.Outcome,
			termination,
			g.StartTimeUTC.Format("2006-01-02 15:04:05"),
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d game(s)\n", len(games))
	return nil
}

func runMoves(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("moves", flag.ContinueOnError)
	gameID := fs.String("gameId", "", "Game ID (required)")

	store, _, err := openStore(fs, args)
	if err != nil {
		return err
	}
	defer store.Close()

	if *gameID == "" {
		return fmt.Errorf("game ID required")
	}

	moves, err := store.QueryMoves(*gameID)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(moves) == 0 {
		fmt.Fprintln(out, "No moves found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tSide\tMove\tClass\tFEN After Move")
	for _, m := range moves {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.MoveNumber, m.PlayerColor, m.MoveUCI, m.MoveClass, m.FENAfterMove)
	}
	w.Flush()

	fmt.Fprintf(out, "\n%d move(s)\n", len(moves))
	return nil
}
