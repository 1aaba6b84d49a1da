package board

import (
	"fmt"
	"strings"

	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

const numCells = core.BoardSize * core.BoardSize

// Board is the 8x8 grid indexed by rank*8+file. It is a value: assigning
// a Board copies every cell.
type Board [numCells]core.Piece

// New returns an empty board
func New() Board {
	return Board{}
}

// Standard returns the opening layout
func Standard() Board {
	b, _, err := ParseFEN(StartingFEN)
	if err != nil {
		panic(fmt.Sprintf("board: starting position does not parse: %v", err))
	}
	return b
}

// At returns the piece on c, or the empty piece when c is off the board
func (b *Board) At(c core.Coord) core.Piece {
	if !c.Valid() {
		return core.Piece{}
	}
	return b[c.Index()]
}

func (b *Board) Set(c core.Coord, p core.Piece) {
	if c.Valid() {
		b[c.Index()] = p
	}
}

func (b *Board) Clear(c core.Coord) {
	b.Set(c, core.Piece{})
}

// FindKing scans for the king of color
func (b *Board) FindKing(color core.Color) (core.Coord, bool) {
	king := core.Piece{Kind: core.King, Color: color}
	for i, p := range b {
		if p == king {
			return core.CoordFromIndex(i), true
		}
	}
	return core.Coord{}, false
}

// Count returns how many cells hold p
func (b *Board) Count(p core.Piece) int {
	n := 0
	for _, cell := range b {
		if cell == p {
			n++
		}
	}
	return n
}

// Each calls fn for every occupied cell in index order
func (b *Board) Each(fn func(core.Coord, core.Piece)) {
	for i, p := range b {
		if !p.Empty() {
			fn(core.CoordFromIndex(i), p)
		}
	}
}

// ParseFEN reads the piece placement and side-to-move fields. Castling,
// en passant and clock fields are accepted but not interpreted.
func ParseFEN(fen string) (Board, core.Color, error) {
	var b Board

	parts := strings.Fields(fen)
	if len(parts) < 2 {
		return b, 0, fmt.Errorf("expected placement and side to move, got %d fields: %w", len(parts), core.ErrInvalidFEN)
	}

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != core.BoardSize {
		return b, 0, fmt.Errorf("expected 8 ranks, got %d: %w", len(ranks), core.ErrInvalidFEN)
	}

	// FEN lists rank 8 first, files from a to h
	for i, row := range ranks {
		rank := core.BoardSize - 1 - i
		col := 0
		for j := 0; j < len(row); j++ {
			ch := row[j]
			if ch >= '1' && ch <= '8' {
				col += int(ch - '0')
				continue
			}
			piece, ok := core.PieceFromFEN(ch)
			if !ok {
				return b, 0, fmt.Errorf("invalid piece character %q: %w", ch, core.ErrInvalidFEN)
			}
			if col >= core.BoardSize {
				return b, 0, fmt.Errorf("too many pieces in rank %d: %w", rank+1, core.ErrInvalidFEN)
			}
			b.Set(core.Coord{File: core.BoardSize - 1 - col, Rank: rank}, piece)
			col++
		}
		if col != core.BoardSize {
			return b, 0, fmt.Errorf("rank %d has %d files: %w", rank+1, col, core.ErrInvalidFEN)
		}
	}

	turn, ok := core.ParseColor(parts[1])
	if !ok {
		return b, 0, fmt.Errorf("turn must be 'w' or 'b', got %q: %w", parts[1], core.ErrInvalidFEN)
	}

	return b, turn, nil
}

// Placement renders the FEN piece placement field
func (b *Board) Placement() string {
	var sb strings.Builder
	for rank := core.BoardSize - 1; rank >= 0; rank-- {
		empty := 0
		for file := core.BoardSize - 1; file >= 0; file-- {
			p := b.At(core.Coord{File: file, Rank: rank})
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.FEN())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

// FEN renders a full FEN string. Castling and en passant are not tracked
// and always render as "-".
func (b *Board) FEN(turn core.Color, halfmove, fullmove int) string {
	return fmt.Sprintf("%s %s - - %d %d", b.Placement(), turn, halfmove, fullmove)
}

// ToASCII creates an ASCII representation of the board
func (b *Board) ToASCII() string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for rank := core.BoardSize - 1; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := core.BoardSize - 1; file >= 0; file-- {
			piece := b.At(core.Coord{File: file, Rank: rank})
			if piece.Empty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(fmt.Sprintf("%c ", piece.FEN()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
