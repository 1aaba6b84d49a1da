package engine

import (
	"iter"
	"math/rand/v2"

	"github.com/INDA23PlusPlus/redkar-chess/internal/board"
	"github.com/INDA23PlusPlus/redkar-chess/internal/core"
)

// LegalMoves yields every legal move for side on b. The sequence is lazy
// and recomputed on each iteration; stopping early stops the search.
// Moves come out ordered by start cell index, then end cell index.
func LegalMoves(b *board.Board, side core.Color) iter.Seq[core.Move] {
	return func(yield func(core.Move) bool) {
		for from := range b {
			if b[from].Empty() || b[from].Color != side {
				continue
			}
			for to := range b {
				m := core.Move{From: core.CoordFromIndex(from), To: core.CoordFromIndex(to)}
				if _, err := Check(b, side, m); err != nil {
					continue
				}
				if !yield(m) {
					return
				}
			}
		}
	}
}

// HasLegalMove reports whether side has at least one legal move
func HasLegalMove(b *board.Board, side core.Color) bool {
	for range LegalMoves(b, side) {
		return true
	}
	return false
}

// CountLegalMoves returns the number of legal moves for side
func CountLegalMoves(b *board.Board, side core.Color) int {
	n := 0
	for range LegalMoves(b, side) {
		n++
	}
	return n
}

// RandomMove picks uniformly among the legal moves for side
func RandomMove(b *board.Board, side core.Color, rng *rand.Rand) (core.Move, bool) {
	var chosen core.Move
	n := 0
	// reservoir sampling keeps a single pass over the sequence
	for m := range LegalMoves(b, side) {
		n++
		if rng.IntN(n) == 0 {
			chosen = m
		}
	}
	return chosen, n > 0
}
