package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// client -> server
	MessageTypeMove    MessageType = "move"
	MessageTypeUndo    MessageType = "undo"
	MessageTypeRedo    MessageType = "redo"
	MessageTypeHint    MessageType = "hint"
	MessageTypeThreats MessageType = "threats"

	// server -> client
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries squares in algebraic notation, e.g. {"from":"e2","to":"e4"}.
type MovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type SquarePayload struct {
	Square string `json:"square"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

// MatchFoundEvent is pushed to both players once matchmaking pairs them.
type MatchFoundEvent struct {
	GameID  string `json:"gameId"`
	Color   string `json:"color"`
	Variant string `json:"variant"`
}

// NewMessage marshals payload into a Message of the given type.
func NewMessage(t MessageType, payload any) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
