package engine

import (
	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

// Validate checks the movement shape of m for the piece on its start
// square, and path obstruction for sliding pieces. It does not consider
// king safety. from and to are the pieces on the endpoints; capture tells
// whether the move takes an enemy piece.
func Validate(b *board.Board, side core.Color, m core.Move, from, to core.Piece, capture bool) error {
	if m.From == m.To {
		return core.ErrMovement
	}
	if !m.From.Valid() || !m.To.Valid() {
		return core.ErrOutsideBoard
	}

	df := m.To.File - m.From.File
	dr := m.To.Rank - m.From.Rank
	fileDiff := abs(df)
	rankDiff := abs(dr)

	switch from.Kind {
	case core.Pawn:
		return validatePawn(b, side, m, capture)

	case core.Knight:
		if (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1) {
			return nil
		}
		return core.ErrMovement

	case core.Bishop:
		if fileDiff != rankDiff {
			return core.ErrMovement
		}
		return pathClear(b, m)

	case core.Rook:
		if (df == 0) == (dr == 0) {
			return core.ErrMovement
		}
		return pathClear(b, m)

	case core.Queen:
		if fileDiff != rankDiff && df != 0 && dr != 0 {
			return core.ErrMovement
		}
		return pathClear(b, m)

	case core.King:
		if max(fileDiff, rankDiff) != 1 {
			return core.ErrMovement
		}
		return nil
	}

	return core.ErrNoPiece
}

// validatePawn applies the forward-only pawn rules. A straight advance
// must land on an empty cell, a diagonal step must capture.
func validatePawn(b *board.Board, side core.Color, m core.Move, capture bool) error {
	dir := forward(side)
	fileDiff := abs(m.To.File - m.From.File)
	advance := (m.To.Rank - m.From.Rank) * dir

	if capture {
		if fileDiff != 1 || advance != 1 {
			return core.ErrMovement
		}
		return nil
	}

	if fileDiff != 0 {
		return core.ErrMovement
	}
	switch advance {
	case 1:
		return nil
	case 2:
		if m.From.Rank != pawnStartRank(side) {
			return core.ErrMovement
		}
		between := core.Coord{File: m.From.File, Rank: m.From.Rank + dir}
		if !b.At(between).Empty() {
			return core.ErrBlockedPath
		}
		return nil
	default:
		return core.ErrMovement
	}
}

// pathClear walks the unit step from just after the start up to, but not
// including, the end.
func pathClear(b *board.Board, m core.Move) error {
	step := core.Coord{File: sign(m.To.File - m.From.File), Rank: sign(m.To.Rank - m.From.Rank)}

	c := core.Coord{File: m.From.File + step.File, Rank: m.From.Rank + step.Rank}
	for c != m.To {
		if !b.At(c).Empty() {
			return core.ErrBlockedPath
		}
		c = core.Coord{File: c.File + step.File, Rank: c.Rank + step.Rank}
	}
	return nil
}

// forward returns +1 for White and -1 for Black
func forward(side core.Color) int {
	if side == core.ColorWhite {
		return 1
	}
	return -1
}

func pawnStartRank(side core.Color) int {
	if side == core.ColorWhite {
		return 1
	}
	return core.BoardSize - 2
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
