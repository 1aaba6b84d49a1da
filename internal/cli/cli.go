package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/game"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdNew
	CmdResume
	CmdMove
	CmdMoves
	CmdColor
	CmdVerbose
	CmdHistory
	CmdBoard
	CmdHelp
	CmdQuit
)

type Command struct {
	Type CommandType
	Args []string
	Raw  string
}

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;157m", // Light green
		darkBg:  "\033[48;5;22m",  // Dark green
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// CLI is the terminal view: it reads commands and renders game state
type CLI struct {
	input   LineReader
	output  io.Writer
	theme   ColorTheme
	verbose bool
}

func New(input LineReader, output io.Writer) *CLI {
	return &CLI{
		input:  input,
		output: output,
		theme:  ThemeOff,
	}
}

// GetCommand shows prompt and reads one command. End of input reads as quit.
func (c *CLI) GetCommand(prompt string) (*Command, error) {
	line, err := c.input.ReadLine(prompt)
	if errors.Is(err, io.EOF) {
		return &Command{Type: CmdQuit}, nil
	}
	if err != nil {
		return nil, err
	}

	input := strings.TrimSpace(line)
	if input == "" {
		return &Command{Type: CmdNone}, nil
	}

	return c.parseCommand(input), nil
}

func (c *CLI) parseCommand(input string) *Command {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return &Command{Type: CmdNone}
	}

	cmd := parts[0]
	args := parts[1:]

	switch strings.ToLower(cmd) {
	case "new":
		return &Command{Type: CmdNew, Args: args}
	case "resume":
		return &Command{Type: CmdResume, Args: args, Raw: input}
	case "moves":
		return &Command{Type: CmdMoves}
	case "color":
		return &Command{Type: CmdColor, Args: args}
	case "verbose":
		return &Command{Type: CmdVerbose}
	case "history":
		return &Command{Type: CmdHistory}
	case "board":
		return &Command{Type: CmdBoard}
	case "help", "?":
		return &Command{Type: CmdHelp}
	case "quit", "exit":
		return &Command{Type: CmdQuit}
	default:
		// Assume it's a move
		return &Command{Type: CmdMove, Args: []string{cmd}, Raw: input}
	}
}

func (c *CLI) SetTheme(theme ColorTheme) error {
	if _, ok := themes[theme]; !ok {
		return fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", theme)
	}
	c.theme = theme
	return nil
}

func (c *CLI) ToggleVerbose() bool {
	c.verbose = !c.verbose
	return c.verbose
}

func (c *CLI) IsVerbose() bool {
	return c.verbose
}

func (c *CLI) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *CLI) ShowError(err error) {
	c.ShowMessage(fmt.Sprintf("Error: %v", err))
}

// Ask reads a single answer to a question, "" on end of input
func (c *CLI) Ask(prompt string) string {
	line, err := c.input.ReadLine(prompt)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(line)
}

func (c *CLI) DisplayBoard(b *board.Board) {
	theme := themes[c.theme]
	var sb strings.Builder

	sb.WriteString("\n  a b c d e f g h\n")

	for rank := core.BoardSize - 1; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		// file 7 is the a-file
		for file := core.BoardSize - 1; file >= 0; file-- {
			piece := b.At(core.Coord{File: file, Rank: rank})

			if c.theme == ThemeOff {
				if piece.Empty() {
					sb.WriteString(". ")
				} else {
					sb.WriteString(fmt.Sprintf("%c ", piece.FEN()))
				}
				continue
			}

			bg := theme.darkBg
			if (rank+file)%2 == 0 {
				bg = theme.lightBg
			}
			if piece.Empty() {
				sb.WriteString(fmt.Sprintf("%s  %s", bg, theme.reset))
			} else {
				fg := theme.black
				if piece.Color == core.ColorWhite {
					fg = theme.white
				}
				sb.WriteString(fmt.Sprintf("%s%s%c %s", bg, fg, piece.FEN(), theme.reset))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h\n")

	c.ShowMessage(sb.String())
}

func (c *CLI) ShowHelp() {
	help := `Commands:
  new              - Start a new game with player type selection
  resume <FEN>     - Start from a specific board position
  <move>           - Make a move (e.g., e2e4, g1f3)
  moves            - List the legal moves for the side on move
  board            - Show the board again
  color <theme>    - Set board color theme (off|brown|green|gray)
  verbose          - Toggle detailed move information
  history          - Show game move history and positions
  quit/exit        - Exit the program
  help/?           - Show this help message

During any game:
  Press ENTER      - Execute computer move (when it's computer's turn)`

	c.ShowMessage(help)
}

func (c *CLI) ShowWelcome() {
	c.ShowMessage("Welcome to Chess!")
	c.ShowMessage("Commands: new, resume <FEN>, <move>, moves, history, quit/exit, verbose, help/?")
	c.ShowMessage("Example: 'resume 7k/6pp/8/8/8/8/8/R5K1 w' to start from a puzzle.")
	c.ShowMessage("Press ENTER to execute computer moves when it's computer's turn.")
	c.ShowMessage("")
}

func (c *CLI) ShowGameHistory(g *game.Game) {
	c.ShowMessage(fmt.Sprintf("Starting FEN: %s", g.InitialFEN()))

	moves := g.Moves()
	if g.Snapshots()[0].NextTurn == core.ColorBlack {
		// game started with Black on move
		moves = append([]string{"..."}, moves...)
	}
	for i := 0; i < len(moves); i += 2 {
		white := moves[i]
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", i/2+1, white, moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", i/2+1, white))
		}
	}
	if c.verbose {
		history := g.History()
		for i, class := range history {
			c.ShowMessage(fmt.Sprintf("  ply %d: %s", i+1, class))
		}
	}
	c.ShowMessage(fmt.Sprintf("Current FEN: %s", g.CurrentFEN()))
	c.ShowMessage(fmt.Sprintf("Game state: %s", g.Outcome()))
}

func (c *CLI) ShowLegalMoves(turn core.Color, moves []string) {
	if len(moves) == 0 {
		c.ShowMessage(fmt.Sprintf("%s has no legal moves", turn.Name()))
		return
	}
	c.ShowMessage(fmt.Sprintf("%s to move (%d): %s", turn.Name(), len(moves), strings.Join(moves, " ")))
}

func (c *CLI) ShowComputerMove(result *game.MoveResult) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Computer (%s): %s (%s)", result.Player, result.Move, result.Class))
	} else {
		c.ShowMessage(fmt.Sprintf("Computer (%s): %s", result.Player, result.Move))
	}
}

func (c *CLI) ShowHumanMove(result *game.MoveResult) {
	if c.verbose {
		c.ShowMessage(fmt.Sprintf("Your move: %s (%s)", result.Move, result.Class))
	}
}

func (c *CLI) ShowGameOver(announcement string) {
	c.ShowMessage(fmt.Sprintf("\nGame Over: %s", announcement))
	c.ShowMessage("Start a new game with 'new' or 'resume'.")
}
