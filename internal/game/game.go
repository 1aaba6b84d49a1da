package game

import (
	"fmt"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/engine"
)

// FiftyMoveLimit is the number of consecutive reversible half-moves that
// draws the game
const FiftyMoveLimit = 50

type Snapshot struct {
	FEN          string     // Board state at this point
	PreviousMove string     // Move that created this position (empty for initial)
	NextTurn     core.Color // Whose turn it is at this position
}

// MoveResult tracks the outcome of a move
type MoveResult struct {
	Move    core.Move
	Player  core.Color
	Class   core.MoveClass
	Outcome core.Outcome
}

// Game is one chess game. It is not safe for concurrent use; callers
// sharing a Game serialise access themselves.
type Game struct {
	board       board.Board
	turn        core.Color
	finished    bool
	history     []core.MoveClass
	outcome     core.Outcome
	termination core.Termination

	snapshots  []Snapshot
	players    map[core.Color]*core.Player
	lastResult *MoveResult
}

// New starts a game from the standard opening layout with White to move
func New(whitePlayer, blackPlayer *core.Player) *Game {
	return newGame(board.Standard(), core.ColorWhite, board.StartingFEN, whitePlayer, blackPlayer)
}

// NewFromFEN starts a game from an imported position. The position must
// hold exactly one king per side and the side not on move must not be in
// check. A position where the side to move has no legal move starts
// finished.
func NewFromFEN(fen string, whitePlayer, blackPlayer *core.Player) (*Game, error) {
	b, turn, err := board.ParseFEN(fen)
	if err != nil {
		return nil, err
	}

	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		if n := b.Count(core.Piece{Kind: core.King, Color: c}); n != 1 {
			return nil, fmt.Errorf("%s has %d kings: %w", c.Name(), n, core.ErrInvalidPosition)
		}
	}
	if engine.InCheck(&b, core.OppositeColor(turn)) {
		return nil, fmt.Errorf("%s is in check but not on move: %w", core.OppositeColor(turn).Name(), core.ErrInvalidPosition)
	}

	g := newGame(b, turn, b.FEN(turn, 0, 1), whitePlayer, blackPlayer)
	g.checkReplies(core.OppositeColor(turn))
	return g, nil
}

func newGame(b board.Board, turn core.Color, fen string, whitePlayer, blackPlayer *core.Player) *Game {
	return &Game{
		board: b,
		turn:  turn,
		snapshots: []Snapshot{
			{
				FEN:          fen,
				PreviousMove: "", // No move led to initial position
				NextTurn:     turn,
			},
		},
		players: map[core.Color]*core.Player{
			core.ColorWhite: whitePlayer,
			core.ColorBlack: blackPlayer,
		},
	}
}

// DoMove plays m for the side on move. On error nothing changes. The
// returned outcome is OutcomeNone unless this move ended the game.
func (g *Game) DoMove(m core.Move) (core.Outcome, error) {
	if g.finished {
		return core.OutcomeNone, core.ErrGameOver
	}

	mover := g.turn
	moved := g.board.At(m.From)
	capture := !g.board.At(m.To).Empty()

	next, err := engine.Check(&g.board, mover, m)
	if err != nil {
		return core.OutcomeNone, err
	}

	// commit
	g.board = next
	class := engine.Classify(moved, capture)
	g.history = append(g.history, class)

	opponent := core.OppositeColor(mover)
	if !g.checkReplies(mover) && g.reversibleRun() >= FiftyMoveLimit {
		g.finish(core.OutcomeDraw, core.TermFiftyMove)
	}
	g.turn = opponent

	g.snapshots = append(g.snapshots, Snapshot{
		FEN:          g.CurrentBoardFEN(),
		PreviousMove: m.String(),
		NextTurn:     opponent,
	})
	g.lastResult = &MoveResult{
		Move:    m,
		Player:  mover,
		Class:   class,
		Outcome: g.outcome,
	}

	return g.outcome, nil
}

// checkReplies ends the game when the opponent of mover has no legal reply:
// checkmate if that side is in check, stalemate otherwise. It reports
// whether the game ended.
func (g *Game) checkReplies(mover core.Color) bool {
	opponent := core.OppositeColor(mover)
	if engine.HasLegalMove(&g.board, opponent) {
		return false
	}
	if engine.InCheck(&g.board, opponent) {
		g.finish(core.WinFor(mover), core.TermCheckmate)
	} else {
		g.finish(core.OutcomeDraw, core.TermStalemate)
	}
	return true
}

func (g *Game) finish(o core.Outcome, t core.Termination) {
	g.finished = true
	g.outcome = o
	g.termination = t
}

// reversibleRun counts trailing history entries without a capture or pawn move
func (g *Game) reversibleRun() int {
	n := 0
	for i := len(g.history) - 1; i >= 0 && g.history[i] == core.ClassOther; i-- {
		n++
	}
	return n
}

// Board returns a copy of the current position
func (g *Game) Board() board.Board {
	return g.board
}

func (g *Game) Turn() core.Color {
	return g.turn
}

func (g *Game) Finished() bool {
	return g.finished
}

func (g *Game) Outcome() core.Outcome {
	return g.outcome
}

func (g *Game) Termination() core.Termination {
	return g.termination
}

// MoveCount is the number of committed moves
func (g *Game) MoveCount() int {
	return len(g.history)
}

// History returns a copy of the per-move classification record
func (g *Game) History() []core.MoveClass {
	return append([]core.MoveClass(nil), g.history...)
}

func (g *Game) LastResult() *MoveResult {
	return g.lastResult
}

func (g *Game) CurrentSnapshot() Snapshot {
	return g.snapshots[len(g.snapshots)-1]
}

// Snapshots returns a copy of every position reached so far
func (g *Game) Snapshots() []Snapshot {
	return append([]Snapshot(nil), g.snapshots...)
}

func (g *Game) CurrentFEN() string {
	return g.CurrentSnapshot().FEN
}

// CurrentBoardFEN renders the current position with the halfmove clock
// and fullmove number derived from history
func (g *Game) CurrentBoardFEN() string {
	plies := len(g.history)
	if g.snapshots[0].NextTurn == core.ColorBlack {
		plies++
	}
	return g.board.FEN(g.turn, g.reversibleRun(), 1+plies/2)
}

func (g *Game) NextPlayer() *core.Player {
	return g.players[g.turn]
}

func (g *Game) GetPlayer(color core.Color) *core.Player {
	return g.players[color]
}

func (g *Game) Moves() []string {
	moves := []string{}
	for i := 1; i < len(g.snapshots); i++ {
		if g.snapshots[i].PreviousMove != "" {
			moves = append(moves, g.snapshots[i].PreviousMove)
		}
	}
	return moves
}

func (g *Game) InitialFEN() string {
	if len(g.snapshots) > 0 {
		return g.snapshots[0].FEN
	}
	return board.StartingFEN
}

// Announcement describes how the game ended, or "" while it is running
func (g *Game) Announcement() string {
	if !g.finished {
		return ""
	}
	switch g.termination {
	case core.TermCheckmate:
		winner := core.ColorWhite
		if g.outcome == core.OutcomeBlackWins {
			winner = core.ColorBlack
		}
		return fmt.Sprintf("%s has checkmated %s", winner.Name(), core.OppositeColor(winner).Name())
	case core.TermStalemate:
		return "Draw by stalemate"
	case core.TermFiftyMove:
		return "Draw by the fifty-move rule"
	default:
		return "Game over"
	}
}
