// Package commands implements the debugging client's command set.
package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/INDA23PlusPlus/redkar-chess/internal/cli"
	"github.com/INDA23PlusPlus/redkar-chess/internal/client/api"
	"github.com/INDA23PlusPlus/redkar-chess/internal/client/display"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

// Session is the client state shared by commands
type Session struct {
	Client        *api.Client
	CurrentGame   string
	LastMoveCount int
	GameState     *core.GameResponse
	Verbose       bool
}

// track records the latest known state of the current game
func (s *Session) track(resp *core.GameResponse) {
	s.GameState = resp
	s.LastMoveCount = len(resp.Moves)
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Handler     func(*Registry, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	in       cli.LineReader
	out      io.Writer
	commands map[string]*Command
	order    []string
}

func NewRegistry(session *Session, in cli.LineReader, out io.Writer) *Registry {
	r := &Registry{
		session:  session,
		in:       in,
		out:      out,
		commands: make(map[string]*Command),
	}

	r.registerGameCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Handler:     helpHandler,
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
	r.order = append(r.order, cmd.Name)
}

// Execute runs one input line. It returns false when the user asked to exit.
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmdName := parts[0]
	args := parts[1:]

	if cmdName == "exit" || cmdName == "quit" || cmdName == "x" {
		display.Printf(r.out, display.Cyan, "Goodbye!")
		return false
	}

	cmd, exists := r.commands[cmdName]
	if !exists {
		display.Printf(r.out, display.Red, "Unknown command: %s", cmdName)
		fmt.Fprintln(r.out, "Type 'help' for available commands")
		return true
	}

	// trailing -v turns on verbose output for this command only
	r.session.Verbose = false
	if i := slices.Index(args, "-v"); i >= 0 {
		r.session.Verbose = true
		args = slices.Delete(args, i, i+1)
	}
	r.session.Client.SetVerbose(r.session.Verbose)

	if err := cmd.Handler(r, args); err != nil {
		display.Printf(r.out, display.Red, "Error: %s", err)
	}
	return true
}

// ask reads one answer, falling back to def on empty input
func (r *Registry) ask(question, def string) string {
	line, err := r.in.ReadLine(display.Yellow + question + display.Reset)
	if err != nil {
		return def
	}
	if answer := strings.TrimSpace(line); answer != "" {
		return answer
	}
	return def
}

func (r *Registry) requireGame() (string, error) {
	if r.session.CurrentGame == "" {
		return "", fmt.Errorf("no current game, use 'new' or 'join <gameId>'")
	}
	return r.session.CurrentGame, nil
}

func helpHandler(r *Registry, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(r.out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(r.out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(r.out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	display.Printf(r.out, display.Cyan, "\nAvailable Commands:\n")
	for _, name := range r.order {
		cmd := r.commands[name]
		shortPart := "    "
		if cmd.ShortName != "" {
			shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(r.out, "  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
	}
	fmt.Fprintf(r.out, "  [x] %-10s %s\n", "exit", "Exit the client")

	fmt.Fprintln(r.out, "\nType 'help <command>' for detailed usage")
	fmt.Fprintln(r.out, "Add '-v' to any command for verbose output")
	return nil
}
