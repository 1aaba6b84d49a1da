package core

import (
	"fmt"
)

// BoardSize is the number of files and ranks
const BoardSize = 8

// PieceKind is the type of a chess piece. NoPiece marks an empty cell.
type PieceKind int

const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindLetters = [...]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Bishop:
		return "Bishop"
	case Rook:
		return "Rook"
	case Queen:
		return "Queen"
	case King:
		return "King"
	default:
		return "None"
	}
}

// Letter returns the uppercase FEN letter of the kind
func (k PieceKind) Letter() byte {
	if k < 0 || int(k) >= len(kindLetters) {
		return '?'
	}
	return kindLetters[k]
}

// Piece is an immutable (kind, color) pair. The zero value is an empty cell.
type Piece struct {
	Kind  PieceKind
	Color Color
}

func (p Piece) Empty() bool {
	return p.Kind == NoPiece
}

// FEN returns the FEN letter: uppercase for White, lowercase for Black, 0 for empty
func (p Piece) FEN() byte {
	if p.Empty() {
		return 0
	}
	letter := p.Kind.Letter()
	if p.Color == ColorBlack {
		letter += 'a' - 'A'
	}
	return letter
}

func (p Piece) String() string {
	if p.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%s %s", p.Color.Name(), p.Kind)
}

// PieceFromFEN converts a FEN placement letter into a Piece
func PieceFromFEN(ch byte) (Piece, bool) {
	color := ColorWhite
	if ch >= 'a' && ch <= 'z' {
		color = ColorBlack
		ch -= 'a' - 'A'
	}
	for k := Pawn; k <= King; k++ {
		if kindLetters[k] == ch {
			return Piece{Kind: k, Color: color}, true
		}
	}
	return Piece{}, false
}

// Coord addresses a cell. File 0 is the h-file and file 7 the a-file;
// rank 0 is White's back rank and rank 7 is Black's.
type Coord struct {
	File int
	Rank int
}

func (c Coord) Valid() bool {
	return c.File >= 0 && c.File < BoardSize && c.Rank >= 0 && c.Rank < BoardSize
}

// Index is the flat board index rank*8+file
func (c Coord) Index() int {
	return c.Rank*BoardSize + c.File
}

// CoordFromIndex is the inverse of Index
func CoordFromIndex(i int) Coord {
	return Coord{File: i % BoardSize, Rank: i / BoardSize}
}

// String returns the algebraic square name, e.g. "e2"
func (c Coord) String() string {
	if !c.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%c%c", 'h'-c.File, '1'+c.Rank)
}

// ParseSquare parses an algebraic square name such as "e4"
func ParseSquare(s string) (Coord, error) {
	if len(s) != 2 {
		return Coord{}, fmt.Errorf("square %q: %w", s, ErrInvalidMoveFormat)
	}
	if s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Coord{}, fmt.Errorf("square %q: %w", s, ErrInvalidMoveFormat)
	}
	return Coord{File: int('h' - s[0]), Rank: int(s[1] - '1')}, nil
}

// Move is a (start, end) pair; kind and capture are derived when validating
type Move struct {
	From Coord
	To   Coord
}

// M builds a move from raw file/rank numbers
func M(fromFile, fromRank, toFile, toRank int) Move {
	return Move{
		From: Coord{File: fromFile, Rank: fromRank},
		To:   Coord{File: toFile, Rank: toRank},
	}
}

// String returns the coordinate notation used on the wire, e.g. "e2e4"
func (m Move) String() string {
	return m.From.String() + m.To.String()
}

// ParseMove parses coordinate notation ("e2e4")
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("move %q: %w", s, ErrInvalidMoveFormat)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, err
	}
	return Move{From: from, To: to}, nil
}
