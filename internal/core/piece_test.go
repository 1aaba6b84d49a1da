package core

import (
	"errors"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in      string
		want    Move
		wantErr bool
	}{
		{"e2e4", M(3, 1, 3, 3), false},
		{"d1h5", M(4, 0, 0, 4), false},
		{"a1h8", M(7, 0, 0, 7), false},
		{"e2e", Move{}, true},
		{"e2e44", Move{}, true},
		{"i2e4", Move{}, true},
		{"e0e4", Move{}, true},
		{"E2E4", Move{}, true},
	}

	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidMoveFormat) {
				t.Errorf("ParseMove(%q) error = %v, want %v", tt.in, err, ErrInvalidMoveFormat)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMove(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if got.String() != tt.in {
			t.Errorf("Move.String() = %q, want %q", got.String(), tt.in)
		}
	}
}

func TestCoordIndex(t *testing.T) {
	for i := 0; i < BoardSize*BoardSize; i++ {
		c := CoordFromIndex(i)
		if !c.Valid() || c.Index() != i {
			t.Errorf("CoordFromIndex(%d) = %+v, Index() = %d", i, c, c.Index())
		}
	}
	if (Coord{File: 8, Rank: 0}).Valid() || (Coord{File: 0, Rank: -1}).Valid() {
		t.Error("off-board coordinate reported valid")
	}
	if got := (Coord{File: -1}).String(); got != "invalid" {
		t.Errorf("String() = %q, want invalid", got)
	}
}

func TestPieceFEN(t *testing.T) {
	for _, ch := range []byte("PNBRQKpnbrqk") {
		p, ok := PieceFromFEN(ch)
		if !ok {
			t.Errorf("PieceFromFEN(%q) failed", ch)
			continue
		}
		if p.FEN() != ch {
			t.Errorf("PieceFromFEN(%q).FEN() = %q", ch, p.FEN())
		}
	}
	if _, ok := PieceFromFEN('x'); ok {
		t.Error("PieceFromFEN('x') succeeded")
	}
	if (Piece{}).FEN() != 0 || !(Piece{}).Empty() {
		t.Error("zero Piece is not empty")
	}
}

func TestColor(t *testing.T) {
	if OppositeColor(ColorWhite) != ColorBlack || OppositeColor(ColorBlack) != ColorWhite {
		t.Error("OppositeColor broken")
	}
	if c, ok := ParseColor("b"); !ok || c != ColorBlack {
		t.Errorf("ParseColor(b) = %v, %v", c, ok)
	}
	if _, ok := ParseColor("black"); ok {
		t.Error("ParseColor accepted a long name")
	}
	if WinFor(ColorBlack) != OutcomeBlackWins {
		t.Error("WinFor(black) wrong")
	}
}

func TestIsMoveError(t *testing.T) {
	if !IsMoveError(ErrSelfCheck) {
		t.Error("ErrSelfCheck not a move error")
	}
	if IsMoveError(ErrGameOver) || IsMoveError(ErrInvalidFEN) {
		t.Error("non-move error classified as move error")
	}
}
