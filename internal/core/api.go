package core

// Request types

type CreateGameRequest struct {
	White PlayerConfig `json:"white"`
	Black PlayerConfig `json:"black"`
	FEN   string       `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,len=4"` // "cccc" for computer move, coordinate notation otherwise
}

// Response types

type GameResponse struct {
	GameID       string          `json:"gameId"`
	FEN          string          `json:"fen"`
	Turn         string          `json:"turn"`  // "w" or "b"
	State        string          `json:"state"` // "ongoing", "pending", "white wins", "black wins", "draw"
	Termination  string          `json:"termination,omitempty"`
	Announcement string          `json:"announcement,omitempty"`
	Moves        []string        `json:"moves"`
	Players      PlayersResponse `json:"players"`
	LastMove     *MoveInfo       `json:"lastMove,omitempty"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Class       string `json:"class"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type LegalMovesResponse struct {
	Turn  string   `json:"turn"`
	Moves []string `json:"moves"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
