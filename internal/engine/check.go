package engine

import (
	"fmt"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

type direction struct {
	df, dr   int
	diagonal bool
}

var rays = [...]direction{
	{0, 1, false}, {0, -1, false}, {1, 0, false}, {-1, 0, false},
	{1, 1, true}, {1, -1, true}, {-1, 1, true}, {-1, -1, true},
}

var knightOffsets = [...][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// InCheck reports whether side's king is attacked. The board must hold
// exactly one king of that side; a missing king panics.
func InCheck(b *board.Board, side core.Color) bool {
	king, ok := b.FindKing(side)
	if !ok {
		panic(fmt.Sprintf("engine: no %s king on board", side.Name()))
	}
	return Attacked(b, king, side)
}

// Attacked reports whether an enemy of side attacks target, casting rays
// out from target and probing the knight squares around it.
func Attacked(b *board.Board, target core.Coord, side core.Color) bool {
	for _, ray := range rays {
		if rayThreat(b, target, side, ray) {
			return true
		}
	}

	knight := core.Piece{Kind: core.Knight, Color: core.OppositeColor(side)}
	for _, off := range knightOffsets {
		c := core.Coord{File: target.File + off[0], Rank: target.Rank + off[1]}
		if c.Valid() && b.At(c) == knight {
			return true
		}
	}

	return false
}

// rayThreat steps along one direction until the first occupied cell and
// decides whether that piece attacks back along the same line.
func rayThreat(b *board.Board, target core.Coord, side core.Color, ray direction) bool {
	c := target
	for dist := 1; ; dist++ {
		c = core.Coord{File: c.File + ray.df, Rank: c.Rank + ray.dr}
		if !c.Valid() {
			return false
		}
		p := b.At(c)
		if p.Empty() {
			continue
		}
		if p.Color == side {
			return false
		}

		switch p.Kind {
		case core.Queen:
			return true
		case core.Rook:
			return !ray.diagonal
		case core.Bishop:
			return ray.diagonal
		case core.King:
			return dist == 1
		case core.Pawn:
			// an enemy pawn attacks toward its own forward direction, so it
			// must sit one rank "behind" target from its point of view
			return dist == 1 && ray.diagonal && ray.dr == -forward(p.Color)
		default:
			return false
		}
	}
}
