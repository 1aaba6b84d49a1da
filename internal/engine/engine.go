// Package engine implements the chess rules: move shape validation, king
// safety and legal move enumeration. Every function takes the board by
// pointer and the side explicitly; nothing here mutates its input.
package engine

import (
	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

// Apply returns a copy of b with m played. The caller has already
// validated m.
func Apply(b *board.Board, m core.Move) board.Board {
	next := *b
	piece := next.At(m.From)
	next.Clear(m.From)
	next.Set(m.To, piece)
	return next
}

// Classify returns the fifty-move rule bookkeeping class of a move
func Classify(moved core.Piece, capture bool) core.MoveClass {
	if capture || moved.Kind == core.Pawn {
		return core.ClassCaptureOrPawn
	}
	return core.ClassOther
}

// Check validates m for side and verifies the mover's king is safe
// afterwards. It returns the resulting board on success.
func Check(b *board.Board, side core.Color, m core.Move) (board.Board, error) {
	if !m.From.Valid() || !m.To.Valid() {
		return board.Board{}, core.ErrOutsideBoard
	}

	from := b.At(m.From)
	if from.Empty() {
		return board.Board{}, core.ErrNoPiece
	}
	if from.Color != side {
		return board.Board{}, core.ErrWrongColorPiece
	}

	to := b.At(m.To)
	if !to.Empty() && to.Color == side {
		return board.Board{}, core.ErrFriendlyFire
	}

	if err := Validate(b, side, m, from, to, !to.Empty()); err != nil {
		return board.Board{}, err
	}

	trial := Apply(b, m)
	if InCheck(&trial, side) {
		return board.Board{}, core.ErrSelfCheck
	}
	return trial, nil
}
