package websocket

import (
	"github.com/iamasit07/connect4/internal/domain"
	"github.com/iamasit07/connect4/internal/service/game"
)

// Client message types.
const (
	TypeNewGame = "new_game"
	TypeDrop    = "drop"
	TypeRestart = "restart"
	TypeState   = "state"
)

// Server message types. TypeState is shared.
const (
	TypeGameStart = "game_start"
	TypeMoveMade  = "move_made"
	TypeGameOver  = "game_over"
	TypeError     = "error"
)

type ClientMessage struct {
	Type    string      `json:"type"`
	Column  *int        `json:"column,omitempty"`
	Player1 game.Player `json:"player1"`
	Player2 game.Player `json:"player2"`
}

type ServerMessage struct {
	Type    string             `json:"type"`
	Game    *game.View         `json:"game,omitempty"`
	Move    *domain.MoveResult `json:"move,omitempty"`
	Cue     *game.Cue          `json:"cue,omitempty"`
	Code    string             `json:"code,omitempty"`
	Message string             `json:"message,omitempty"`
}

func errorMessage(code, message string) ServerMessage {
	return ServerMessage{Type: TypeError, Code: code, Message: message}
}
