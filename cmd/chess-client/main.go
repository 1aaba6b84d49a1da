// Package main implements an interactive debugging client for the chess server API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/INDA23PlusPlus/redkar-chess/internal/cli"
	"github.com/INDA23PlusPlus/redkar-chess/internal/client/api"
	"github.com/INDA23PlusPlus/redkar-chess/internal/client/commands"
	"github.com/INDA23PlusPlus/redkar-chess/internal/client/display"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

func main() {
	apiURL := flag.String("api", "http://localhost:8080", "Chess server base URL")
	history := flag.String("history", ".chess_history", "Line editor history file")
	flag.Parse()

	var (
		input  cli.LineReader
		output io.Writer = os.Stdout
	)
	if cli.IsInteractive() {
		t, err := cli.NewTerminal(*history)
		if err != nil {
			fmt.Printf("%s%s%s\n", display.Red, err.Error(), display.Reset)
			os.Exit(1)
		}
		defer t.Close()
		input, output = t, t.Output()
	} else {
		input = cli.NewScanReader(os.Stdin, os.Stdout)
	}

	client := api.New(*apiURL)
	client.Out = output
	s := &commands.Session{Client: client}

	display.Printf(output, display.Cyan, "Chess Debug Client")
	display.Printf(output, display.Cyan, "API: %s", client.BaseURL)
	fmt.Fprint(output, "Type 'help' for commands\n\n")

	registry := commands.NewRegistry(s, input, output)

	for {
		line, err := input.ReadLine(buildPrompt(s))
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			continue
		}
		if !registry.Execute(line) {
			break
		}
	}
}

func buildPrompt(s *commands.Session) string {
	promptStr := "chess"

	if s.CurrentGame != "" {
		id := s.CurrentGame
		if len(id) > 8 {
			id = id[:8]
		}
		promptStr += display.Yellow + " [" + display.Reset + display.White + id + display.Reset + display.Yellow + "]"
	}

	if g := s.GameState; g != nil && s.CurrentGame != "" {
		switch {
		case g.State != "ongoing" && g.State != "pending":
			promptStr += " - " + strings.ToUpper(g.State[:1]) + g.State[1:]
		default:
			p := g.Players.White
			if g.Turn == "b" {
				p = g.Players.Black
			}
			kind := "h"
			if p != nil && p.Type == core.PlayerComputer {
				kind = "c"
			}
			promptStr += fmt.Sprintf(" - Turn:%s(%s)", display.ColorForTurn(g.Turn), kind)
		}
	}

	return display.Prompt(promptStr)
}
