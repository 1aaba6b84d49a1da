package game

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
	"github.com/INDA23PlusPlus/redkar-chess/internal/engine"
)

func parse(t *testing.T, fen string) board.Board {
	t.Helper()
	b, _, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return b
}

func fromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewFromFEN(fen, nil, nil)
	if err != nil {
		t.Fatalf("NewFromFEN(%q): %v", fen, err)
	}
	return g
}

func play(t *testing.T, g *Game, moves ...string) core.Outcome {
	t.Helper()
	var out core.Outcome
	for _, s := range moves {
		m, err := core.ParseMove(s)
		if err != nil {
			t.Fatal(err)
		}
		out, err = g.DoMove(m)
		if err != nil {
			t.Fatalf("DoMove(%s): %v", s, err)
		}
	}
	return out
}

type state struct {
	Board    board.Board
	Turn     core.Color
	Finished bool
	History  []core.MoveClass
}

func stateOf(g *Game) state {
	return state{g.Board(), g.Turn(), g.Finished(), g.History()}
}

func TestDoMove_PawnAdvance(t *testing.T) {
	g := New(nil, nil)

	out, err := g.DoMove(core.M(3, 1, 3, 3))
	if err != nil {
		t.Fatalf("DoMove: %v", err)
	}
	if out != core.OutcomeNone {
		t.Errorf("outcome = %v, want %v", out, core.OutcomeNone)
	}

	want := parse(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if diff := cmp.Diff(want, g.Board()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
	if g.Turn() != core.ColorBlack {
		t.Errorf("turn = %s, want b", g.Turn())
	}
	if diff := cmp.Diff([]core.MoveClass{core.ClassCaptureOrPawn}, g.History()); diff != "" {
		t.Errorf("history mismatch (-want +got):\n%s", diff)
	}
	if got, want := g.CurrentFEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b - - 0 1"; got != want {
		t.Errorf("CurrentFEN = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"e2e4"}, g.Moves()); diff != "" {
		t.Errorf("moves mismatch (-want +got):\n%s", diff)
	}
}

func TestDoMove_CheckmateSequence(t *testing.T) {
	g := New(nil, nil)
	moves := []core.Move{
		core.M(3, 1, 3, 3),
		core.M(1, 6, 1, 4),
		core.M(4, 1, 4, 3),
		core.M(2, 6, 2, 5),
		core.M(4, 0, 0, 4),
	}

	for i, m := range moves[:4] {
		out, err := g.DoMove(m)
		if err != nil || out != core.OutcomeNone {
			t.Fatalf("move %d (%s) = (%v, %v), want (ongoing, nil)", i+1, m, out, err)
		}
	}

	out, err := g.DoMove(moves[4])
	if err != nil {
		t.Fatalf("mating move: %v", err)
	}
	if out != core.OutcomeWhiteWins {
		t.Errorf("outcome = %v, want %v", out, core.OutcomeWhiteWins)
	}
	if !g.Finished() {
		t.Error("game not finished after mate")
	}
	if g.Termination() != core.TermCheckmate {
		t.Errorf("termination = %v, want checkmate", g.Termination())
	}

	want := parse(t, "rnbqkbnr/ppppp2p/5p2/6pQ/3PP3/8/PPP2PPP/RNB1KBNR b KQkq - 1 3")
	if diff := cmp.Diff(want, g.Board()); diff != "" {
		t.Errorf("board mismatch (-want +got):\n%s", diff)
	}
	if got, want := g.CurrentFEN(), "rnbqkbnr/ppppp2p/5p2/6pQ/3PP3/8/PPP2PPP/RNB1KBNR b - - 1 3"; got != want {
		t.Errorf("CurrentFEN = %q, want %q", got, want)
	}
	if got, want := g.Announcement(), "White has checkmated Black"; got != want {
		t.Errorf("Announcement = %q, want %q", got, want)
	}

	before := stateOf(g)
	for _, m := range []core.Move{moves[4], core.M(3, 6, 3, 5), core.M(9, 9, 9, 9)} {
		if _, err := g.DoMove(m); !errors.Is(err, core.ErrGameOver) {
			t.Errorf("DoMove(%v) after mate = %v, want %v", m, err, core.ErrGameOver)
		}
	}
	if diff := cmp.Diff(before, stateOf(g)); diff != "" {
		t.Errorf("state changed after game over (-before +after):\n%s", diff)
	}
}

func TestDoMove_BlackMates(t *testing.T) {
	g := New(nil, nil)
	out := play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	if out != core.OutcomeBlackWins {
		t.Errorf("outcome = %v, want %v", out, core.OutcomeBlackWins)
	}
	if got, want := g.Announcement(), "Black has checkmated White"; got != want {
		t.Errorf("Announcement = %q, want %q", got, want)
	}
	if g.LastResult() == nil || g.LastResult().Player != core.ColorBlack {
		t.Errorf("LastResult = %+v, want black move", g.LastResult())
	}
}

func TestDoMove_Stalemate(t *testing.T) {
	g := fromFEN(t, "7k/8/6K1/8/8/8/8/5Q2 w - - 0 1")

	out := play(t, g, "f1f7")
	if out != core.OutcomeDraw {
		t.Errorf("outcome = %v, want %v", out, core.OutcomeDraw)
	}
	if g.Termination() != core.TermStalemate {
		t.Errorf("termination = %v, want stalemate", g.Termination())
	}
	if got, want := g.Announcement(), "Draw by stalemate"; got != want {
		t.Errorf("Announcement = %q, want %q", got, want)
	}
}

func TestDoMove_BackRankMate(t *testing.T) {
	g := fromFEN(t, "7k/6pp/8/8/8/8/8/R5K1 w - - 0 1")

	if out := play(t, g, "a1a8"); out != core.OutcomeWhiteWins {
		t.Errorf("outcome = %v, want %v", out, core.OutcomeWhiteWins)
	}
}

func TestDoMove_FiftyMoveRule(t *testing.T) {
	reversible := func(n int) []core.MoveClass {
		return slices.Repeat([]core.MoveClass{core.ClassOther}, n)
	}

	t.Run("fires after fifty reversible moves", func(t *testing.T) {
		g := New(nil, nil)
		g.history = reversible(FiftyMoveLimit)

		out := play(t, g, "g1f3")
		if out != core.OutcomeDraw {
			t.Errorf("outcome = %v, want %v", out, core.OutcomeDraw)
		}
		if !g.Finished() || g.Termination() != core.TermFiftyMove {
			t.Errorf("finished=%v termination=%v, want fifty-move draw", g.Finished(), g.Termination())
		}
		if got, want := g.Announcement(), "Draw by the fifty-move rule"; got != want {
			t.Errorf("Announcement = %q, want %q", got, want)
		}
	})

	t.Run("fires on the fiftieth", func(t *testing.T) {
		g := New(nil, nil)
		g.history = reversible(FiftyMoveLimit - 1)
		if out := play(t, g, "b1c3"); out != core.OutcomeDraw {
			t.Errorf("outcome = %v, want %v", out, core.OutcomeDraw)
		}
	})

	t.Run("mate on the fiftieth wins", func(t *testing.T) {
		g := fromFEN(t, "7k/6pp/8/8/8/8/8/R5K1 w - - 0 1")
		g.history = reversible(FiftyMoveLimit - 1)
		if out := play(t, g, "a1a8"); out != core.OutcomeWhiteWins {
			t.Errorf("outcome = %v, want %v", out, core.OutcomeWhiteWins)
		}
		if g.Termination() != core.TermCheckmate {
			t.Errorf("termination = %v, want %v", g.Termination(), core.TermCheckmate)
		}
	})

	t.Run("stalemate on the fiftieth", func(t *testing.T) {
		g := fromFEN(t, "7k/8/6K1/8/8/8/8/5Q2 w - - 0 1")
		g.history = reversible(FiftyMoveLimit - 1)
		if out := play(t, g, "f1f7"); out != core.OutcomeDraw {
			t.Errorf("outcome = %v, want %v", out, core.OutcomeDraw)
		}
		if g.Termination() != core.TermStalemate {
			t.Errorf("termination = %v, want %v", g.Termination(), core.TermStalemate)
		}
	})

	t.Run("short of the limit", func(t *testing.T) {
		g := New(nil, nil)
		g.history = reversible(FiftyMoveLimit - 2)
		if out := play(t, g, "g1f3"); out != core.OutcomeNone || g.Finished() {
			t.Errorf("outcome = %v finished = %v, want game to continue", out, g.Finished())
		}
	})

	t.Run("pawn move resets", func(t *testing.T) {
		g := New(nil, nil)
		g.history = reversible(FiftyMoveLimit)
		if out := play(t, g, "e2e4"); out != core.OutcomeNone || g.Finished() {
			t.Errorf("outcome = %v finished = %v, want game to continue", out, g.Finished())
		}
	})

	t.Run("short game never draws", func(t *testing.T) {
		g := New(nil, nil)
		play(t, g, "g1f3", "g8f6", "f3g1", "f6g8")
		if g.Finished() {
			t.Error("four knight moves drew the game")
		}
	})
}

func TestDoMove_TurnAlternation(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	g := New(nil, nil)

	for ply := 0; ply < 200 && !g.Finished(); ply++ {
		b := g.Board()
		before := g.Turn()
		m, ok := engine.RandomMove(&b, before, rng)
		if !ok {
			t.Fatalf("no legal move at ply %d in unfinished game", ply)
		}
		if _, err := g.DoMove(m); err != nil {
			t.Fatalf("ply %d DoMove(%s): %v", ply, m, err)
		}
		if g.Turn() == before {
			t.Fatalf("ply %d: turn stayed %s", ply, before)
		}
		if len(g.History()) != ply+1 {
			t.Fatalf("ply %d: history length %d", ply, len(g.History()))
		}
	}
}

func TestDoMove_Rejections(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move core.Move
		want error
	}{
		{"off board", board.StartingFEN, core.M(3, 1, 3, 8), core.ErrOutsideBoard},
		{"negative coordinate", board.StartingFEN, core.M(-1, 1, 3, 3), core.ErrOutsideBoard},
		{"empty start", board.StartingFEN, core.M(3, 3, 3, 4), core.ErrNoPiece},
		{"wrong color", board.StartingFEN, core.M(3, 6, 3, 4), core.ErrWrongColorPiece},
		{"same square", board.StartingFEN, core.M(3, 1, 3, 1), core.ErrFriendlyFire},
		{"friendly fire", board.StartingFEN, core.M(4, 0, 4, 1), core.ErrFriendlyFire},
		{"knight shape", board.StartingFEN, core.M(1, 0, 1, 2), core.ErrMovement},
		{"king two squares", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", core.M(3, 0, 3, 2), core.ErrMovement},
		{"king knight shape", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", core.M(3, 0, 2, 2), core.ErrMovement},
		{"blocked rook", board.StartingFEN, core.M(7, 0, 7, 2), core.ErrBlockedPath},
		{"self check", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", core.M(3, 1, 4, 2), core.ErrSelfCheck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := fromFEN(t, tt.fen)
			before := stateOf(g)

			_, err := g.DoMove(tt.move)
			if !errors.Is(err, tt.want) {
				t.Fatalf("DoMove(%v) = %v, want %v", tt.move, err, tt.want)
			}
			if diff := cmp.Diff(before, stateOf(g)); diff != "" {
				t.Errorf("state changed by rejected move (-before +after):\n%s", diff)
			}

			// same input, same answer
			if _, again := g.DoMove(tt.move); !errors.Is(again, tt.want) {
				t.Errorf("second DoMove(%v) = %v, want %v", tt.move, again, tt.want)
			}
		})
	}
}

func TestNewFromFEN(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		wantErr error
	}{
		{"starting position", board.StartingFEN, nil},
		{"black to move", "4k3/8/8/8/8/8/8/4K3 b - - 0 1", nil},
		{"malformed", "not a fen", core.ErrInvalidFEN},
		{"no white king", "4k3/8/8/8/8/8/8/8 w - - 0 1", core.ErrInvalidPosition},
		{"two black kings", "k3k3/8/8/8/8/8/8/4K3 w - - 0 1", core.ErrInvalidPosition},
		{"side not on move in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1", core.ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewFromFEN(tt.fen, nil, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFromFEN(%q) = %v, want %v", tt.fen, err, tt.wantErr)
			}
		})
	}
}

func TestNewFromFEN_TerminalPosition(t *testing.T) {
	g := fromFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")

	if !g.Finished() || g.Outcome() != core.OutcomeDraw || g.Termination() != core.TermStalemate {
		t.Errorf("finished=%v outcome=%v termination=%v, want stalemate draw",
			g.Finished(), g.Outcome(), g.Termination())
	}
	if _, err := g.DoMove(core.M(0, 7, 1, 7)); !errors.Is(err, core.ErrGameOver) {
		t.Errorf("DoMove in terminal position = %v, want %v", err, core.ErrGameOver)
	}
}

func TestGame_Players(t *testing.T) {
	white := core.NewPlayer(core.PlayerConfig{Type: core.PlayerHuman}, core.ColorWhite)
	black := core.NewPlayer(core.PlayerConfig{Type: core.PlayerComputer}, core.ColorBlack)
	g := New(white, black)

	if g.NextPlayer() != white {
		t.Error("NextPlayer is not white at start")
	}
	play(t, g, "e2e4")
	if g.NextPlayer() != black {
		t.Error("NextPlayer is not black after one move")
	}
	if g.GetPlayer(core.ColorBlack).Type != core.PlayerComputer {
		t.Error("black player type lost")
	}
	if got := len(g.Snapshots()); got != 2 {
		t.Errorf("snapshots = %d, want 2", got)
	}
	if g.InitialFEN() != board.StartingFEN {
		t.Errorf("InitialFEN = %q", g.InitialFEN())
	}
}
