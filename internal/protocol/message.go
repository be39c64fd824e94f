package protocol

import (
	"encoding/json"

	"github.com/dropfour/connectfour-backend/internal/entity"
)

// Inbound message types.
const (
	TypeCreateGame = "create_game"
	TypeJoinGame   = "join_game"
	TypeMakeMove   = "make_move"
)

// Outbound message types.
const (
	TypeUserID             = "user_id"
	TypeSuccess            = "success"
	TypeError              = "error"
	TypeGameUpdate         = "game_update"
	TypeCurrentPlayer      = "current_player"
	TypePlayerDisconnected = "player_disconnected"
)

// Envelope is the wire format in both directions: a type discriminator and
// a type-dependent payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Request carries the fields a client may send alongside an inbound type.
// Column is a pointer so a missing field can be told apart from column 0.
type Request struct {
	GameID string `json:"gameId"`
	Column *int   `json:"column"`
}

type UserIDPayload struct {
	ID string `json:"id"`
}

type SuccessPayload struct {
	Message string       `json:"message"`
	Game    *entity.Game `json:"game,omitempty"`
	Winner  string       `json:"winner,omitempty"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type GameUpdatePayload struct {
	Game *entity.Game `json:"game"`
}

type CurrentPlayerPayload struct {
	IsYourTurn bool `json:"isYourTurn"`
}

type PlayerDisconnectedPayload struct {
	Message string `json:"message"`
}

// NewEnvelope wraps a payload for sending. Payload types are plain structs,
// so a marshal failure is a programming error.
func NewEnvelope(msgType string, payload any) Envelope {
	return Envelope{
		Type:    msgType,
		Payload: json.RawMessage(mustMarshal(payload)),
	}
}

func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
