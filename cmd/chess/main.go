package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/INDA23PlusPlus/redkar-chess/internal/cli"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/service"
	"github.com/INDA23PlusPlus/redkar-chess/internal/storage"
	clitransport "github.com/INDA23PlusPlus/redkar-chess/internal/transport/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
}

func parsePlayer(s string) (core.PlayerType, error) {
	switch s {
	case "":
		return 0, nil
	case "h", "human":
		return core.PlayerHuman, nil
	case "c", "computer":
		return core.PlayerComputer, nil
	default:
		return 0, fmt.Errorf("invalid player type %q (use human or computer)", s)
	}
}

func run() error {
	fen := flag.String("fen", "", "Start immediately from this FEN position")
	white := flag.String("white", "", "White player: human or computer (asked when empty)")
	black := flag.String("black", "", "Black player: human or computer (asked when empty)")
	theme := flag.String("color", "off", "Board color theme: off, brown, green, gray")
	seed := flag.Uint64("seed", 0, "Computer player seed (0 for random)")
	storagePath := flag.String("storage-path", "", "SQLite database to record games in (disabled when empty)")
	history := flag.String("history", "", "Line editor history file")
	flag.Parse()

	cfg := clitransport.Config{Seed: *seed}
	var err error
	if cfg.White, err = parsePlayer(*white); err != nil {
		return err
	}
	if cfg.Black, err = parsePlayer(*black); err != nil {
		return err
	}

	var store *storage.Store
	if *storagePath != "" {
		if store, err = storage.NewStore(*storagePath, false); err != nil {
			return err
		}
		if err := store.InitDB(); err != nil {
			store.Close()
			return err
		}
	}
	svc, err := service.New(store)
	if err != nil {
		return err
	}
	defer svc.Close()

	var (
		input  cli.LineReader
		output io.Writer = os.Stdout
	)
	if cli.IsInteractive() {
		t, err := cli.NewTerminal(*history)
		if err != nil {
			return err
		}
		defer t.Close()
		input, output = t, t.Output()
	} else {
		input = cli.NewScanReader(os.Stdin, os.Stdout)
	}

	view := cli.New(input, output)
	if err := view.SetTheme(cli.ColorTheme(*theme)); err != nil {
		return err
	}
	handler := clitransport.New(svc, view, cfg)

	view.ShowWelcome()
	if *fen != "" {
		handler.StartGame(*fen)
	}
	return handler.Run() // All game loop logic is in the handler
}
