package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeClick       MessageType = "click"
	MessageTypeClickResult MessageType = "clickResult"
	MessageTypeGameState   MessageType = "gameState"
	MessageTypeReset       MessageType = "reset"
	MessageTypeLoadFEN     MessageType = "loadFen"
	MessageTypeError       MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ClickPayload is the square a client clicked, column x and row y.
type ClickPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type LoadFENPayload struct {
	FEN string `json:"fen"`
}

// ErrorPayload carries a human readable error back to the client.
type ErrorPayload struct {
	Error string `json:"error"`
}
