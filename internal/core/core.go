package core

// Color is the side a piece belongs to. The zero value means no side.
type Color byte

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	if c == ColorWhite {
		return "w"
	} else if c == ColorBlack {
		return "b"
	} else {
		return "-"
	}
}

// Name returns the capitalised color name used in announcements
func (c Color) Name() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "Nobody"
	}
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// ParseColor accepts the FEN side-to-move letters
func ParseColor(s string) (Color, bool) {
	switch s {
	case "w":
		return ColorWhite, true
	case "b":
		return ColorBlack, true
	default:
		return 0, false
	}
}

// Outcome is produced only by a move that ends the game
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWhiteWins
	OutcomeBlackWins
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeWhiteWins:
		return "white wins"
	case OutcomeBlackWins:
		return "black wins"
	case OutcomeDraw:
		return "draw"
	default:
		return "ongoing"
	}
}

// WinFor returns the winning outcome for color
func WinFor(c Color) Outcome {
	if c == ColorWhite {
		return OutcomeWhiteWins
	}
	return OutcomeBlackWins
}

// Termination records why a finished game ended
type Termination int

const (
	TermNone Termination = iota
	TermCheckmate
	TermStalemate
	TermFiftyMove
)

func (t Termination) String() string {
	switch t {
	case TermCheckmate:
		return "checkmate"
	case TermStalemate:
		return "stalemate"
	case TermFiftyMove:
		return "fifty-move rule"
	default:
		return "none"
	}
}

// MoveClass is the per-move bookkeeping entry used by the fifty-move rule
type MoveClass int

const (
	ClassOther MoveClass = iota
	ClassCaptureOrPawn
)

func (m MoveClass) String() string {
	if m == ClassCaptureOrPawn {
		return "capture_or_pawn"
	}
	return "other"
}
