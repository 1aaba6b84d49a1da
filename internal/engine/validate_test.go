package engine

import (
	"errors"
	"testing"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

func mustBoard(t *testing.T, fen string) (board.Board, core.Color) {
	t.Helper()
	b, turn, err := board.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q) error: %v", fen, err)
	}
	return b, turn
}

func mustMove(t *testing.T, s string) core.Move {
	t.Helper()
	m, err := core.ParseMove(s)
	if err != nil {
		t.Fatalf("ParseMove(%q) error: %v", s, err)
	}
	return m
}

func validate(b *board.Board, side core.Color, m core.Move) error {
	to := b.At(m.To)
	return Validate(b, side, m, b.At(m.From), to, !to.Empty())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want error
	}{
		// knight shape is enforced explicitly
		{"knight 1-2", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", "d4e6", nil},
		{"knight 2-1", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", "d4f5", nil},
		{"knight jumps over pieces", board.StartingFEN, "g1f3", nil},
		{"knight straight", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", "d4d6", core.ErrMovement},
		{"knight one step", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", "d4e5", core.ErrMovement},
		{"knight 2-2", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", "d4f6", core.ErrMovement},
		{"knight 3-0", "4k3/8/8/8/3N4/8/8/4K3 w - - 0 1", "d4g4", core.ErrMovement},

		// king moves exactly one square
		{"king step", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1e2", nil},
		{"king diagonal", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1f2", nil},
		{"king two squares", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1e3", core.ErrMovement},
		{"king castling shape", "4k3/8/8/8/8/8/8/4K2R w K - 0 1", "e1g1", core.ErrMovement},
		{"king knight shape", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e1f3", core.ErrMovement},

		{"bishop blocked", board.StartingFEN, "c1e3", core.ErrBlockedPath},
		{"bishop not diagonal", board.StartingFEN, "c1c3", core.ErrMovement},
		{"bishop open diagonal", "4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", "c1h6", nil},

		{"rook blocked", board.StartingFEN, "a1a3", core.ErrBlockedPath},
		{"rook diagonal", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1b2", core.ErrMovement},
		{"rook open file", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", "a1a8", nil},
		{"rook blocked by enemy mid path", "4k3/8/8/p7/8/8/8/R3K3 w - - 0 1", "a1a8", core.ErrBlockedPath},
		{"rook captures first enemy", "4k3/8/8/p7/8/8/8/R3K3 w - - 0 1", "a1a5", nil},

		{"queen diagonal blocked", board.StartingFEN, "d1f3", core.ErrBlockedPath},
		{"queen file blocked", board.StartingFEN, "d1d3", core.ErrBlockedPath},
		{"queen knight shape", board.StartingFEN, "d1e3", core.ErrMovement},
		{"queen open rank", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1d1", nil},
		{"queen open diagonal", "4k3/8/8/8/8/8/8/Q3K3 w - - 0 1", "a1g7", nil},

		{"pawn single", board.StartingFEN, "e2e3", nil},
		{"pawn double from start", board.StartingFEN, "e2e4", nil},
		{"pawn triple", board.StartingFEN, "e2e5", core.ErrMovement},
		{"pawn double off start", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3e5", core.ErrMovement},
		{"pawn sideways", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3d3", core.ErrMovement},
		{"pawn backwards", "4k3/8/8/8/8/4P3/8/4K3 w - - 0 1", "e3e2", core.ErrMovement},
		{"pawn diagonal without capture", board.StartingFEN, "e2d3", core.ErrMovement},
		{"pawn captures diagonally", "4k3/8/8/8/8/3n4/4P3/4K3 w - - 0 1", "e2d3", nil},
		{"pawn cannot capture straight", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2e3", core.ErrMovement},
		{"pawn double over piece", "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1", "e2e4", core.ErrBlockedPath},
		{"black pawn forward", "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", "e7e5", nil},
		{"black pawn backwards", "4k3/8/4p3/8/8/8/8/4K3 b - - 0 1", "e6e7", core.ErrMovement},
		{"black pawn captures", "4k3/8/4p3/3N4/8/8/8/4K3 b - - 0 1", "e6d5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, side := mustBoard(t, tt.fen)
			got := validate(&b, side, mustMove(t, tt.move))
			if !errors.Is(got, tt.want) {
				t.Errorf("Validate(%s) = %v, want %v", tt.move, got, tt.want)
			}
		})
	}
}

func TestValidate_SameSquareAndBounds(t *testing.T) {
	b := board.Standard()
	from := core.Coord{File: 3, Rank: 1}

	if err := Validate(&b, core.ColorWhite, core.Move{From: from, To: from}, b.At(from), b.At(from), false); !errors.Is(err, core.ErrMovement) {
		t.Errorf("Validate(same square) = %v, want %v", err, core.ErrMovement)
	}

	off := core.Move{From: from, To: core.Coord{File: 3, Rank: 8}}
	if err := Validate(&b, core.ColorWhite, off, b.At(from), core.Piece{}, false); !errors.Is(err, core.ErrOutsideBoard) {
		t.Errorf("Validate(off board) = %v, want %v", err, core.ErrOutsideBoard)
	}

	neg := core.Move{From: core.Coord{File: -1, Rank: 0}, To: from}
	if err := Validate(&b, core.ColorWhite, neg, core.Piece{}, b.At(from), false); !errors.Is(err, core.ErrOutsideBoard) {
		t.Errorf("Validate(negative file) = %v, want %v", err, core.ErrOutsideBoard)
	}
}

func TestCheck_Rejections(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want error
	}{
		{"empty start", board.StartingFEN, "e4e5", core.ErrNoPiece},
		{"enemy piece", board.StartingFEN, "e7e5", core.ErrWrongColorPiece},
		{"own piece on target", board.StartingFEN, "d1d2", core.ErrFriendlyFire},
		{"pinned bishop", "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1", "e2d3", core.ErrSelfCheck},
		{"king into rook file", "4k3/3r4/8/8/8/8/8/4K3 w - - 0 1", "e1d1", core.ErrSelfCheck},
		{"ignoring check", "4k3/4r3/8/8/8/8/P7/4K3 w - - 0 1", "a2a3", core.ErrSelfCheck},
		{"blocking check", "4k3/4r3/8/8/8/8/3B4/4K3 w - - 0 1", "d2e3", nil},
		{"king captures checker", "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1", "e1e2", nil},
		{"king captures protected checker", "4k3/4r3/8/8/8/8/4r3/4K3 w - - 0 1", "e1e2", core.ErrSelfCheck},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			b, side := mustBoard(t, tt.fen)
			before := b
			_, err := Check(&b, side, mustMove(t, tt.move))
			if !errors.Is(err, tt.want) {
				t.Errorf("Check(%s) = %v, want %v", tt.move, err, tt.want)
			}
			if b != before {
				t.Errorf("Check(%s) modified the input board", tt.move)
			}
		})
	}
}

func TestApply(t *testing.T) {
	b := board.Standard()
	next := Apply(&b, mustMove(t, "e2e4"))

	want, _ := mustBoard(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	if next != want {
		t.Errorf("Apply(e2e4) board =\n%s\nwant\n%s", next.ToASCII(), want.ToASCII())
	}
	if b != board.Standard() {
		t.Error("Apply modified its input")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		piece   core.Piece
		capture bool
		want    core.MoveClass
	}{
		{core.Piece{Kind: core.Pawn, Color: core.ColorWhite}, false, core.ClassCaptureOrPawn},
		{core.Piece{Kind: core.Knight, Color: core.ColorWhite}, true, core.ClassCaptureOrPawn},
		{core.Piece{Kind: core.Knight, Color: core.ColorBlack}, false, core.ClassOther},
		{core.Piece{Kind: core.King, Color: core.ColorBlack}, false, core.ClassOther},
	}
	for _, tt := range tests {
		if got := Classify(tt.piece, tt.capture); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, want %v", tt.piece, tt.capture, got, tt.want)
		}
	}
}
