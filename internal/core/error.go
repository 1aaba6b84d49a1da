package core

import "errors"

// Move errors. A rejected move never changes game state.
var (
	ErrOutsideBoard    = errors.New("coordinate outside board")
	ErrNoPiece         = errors.New("no piece on start square")
	ErrWrongColorPiece = errors.New("piece belongs to the other side")
	ErrFriendlyFire    = errors.New("destination holds a friendly piece")
	ErrMovement        = errors.New("piece cannot move that way")
	ErrBlockedPath     = errors.New("path is blocked")
	ErrSelfCheck       = errors.New("move leaves own king in check")
	ErrGameOver        = errors.New("game is over")
)

var (
	ErrInvalidFEN        = errors.New("invalid FEN")
	ErrInvalidPosition   = errors.New("invalid position")
	ErrInvalidMoveFormat = errors.New("invalid move format")
	ErrGameNotFound      = errors.New("game not found")
	ErrGameExists        = errors.New("game already exists")
	ErrMoveInProgress    = errors.New("computer move in progress")
	ErrNotHumanTurn      = errors.New("not human player's turn")
	ErrNotComputerTurn   = errors.New("not computer player's turn")
)

// IsMoveError reports whether err is one of the move rejection errors
func IsMoveError(err error) bool {
	for _, target := range []error{
		ErrOutsideBoard, ErrNoPiece, ErrWrongColorPiece, ErrFriendlyFire,
		ErrMovement, ErrBlockedPath, ErrSelfCheck,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Error codes
const (
	ErrCodeGameNotFound      = "GAME_NOT_FOUND"
	ErrCodeInvalidMove       = "INVALID_MOVE"
	ErrCodeNotHumanTurn      = "NOT_HUMAN_TURN"
	ErrCodeGameOver          = "GAME_OVER"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidFEN        = "INVALID_FEN"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)
