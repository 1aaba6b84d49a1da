package core

import (
	"github.com/google/uuid"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerComputer
)

func (t PlayerType) String() string {
	if t == PlayerComputer {
		return "computer"
	}
	return "human"
}

// Player is the game participant for one color
type Player struct {
	ID    string     `json:"id"`
	Color Color      `json:"color"`
	Type  PlayerType `json:"type"`
}

// PlayerConfig for API requests and configuration
type PlayerConfig struct {
	Type PlayerType `json:"type" validate:"omitempty,oneof=1 2"` // zero means human
}

// PlayersResponse for API responses
type PlayersResponse struct {
	White *Player `json:"white"`
	Black *Player `json:"black"`
}

// NewPlayer creates a Player from PlayerConfig
func NewPlayer(config PlayerConfig, color Color) *Player {
	t := config.Type
	if t == 0 {
		t = PlayerHuman
	}
	return &Player{
		ID:    uuid.New().String(),
		Color: color,
		Type:  t,
	}
}
