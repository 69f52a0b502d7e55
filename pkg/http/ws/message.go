package ws

import (
	"encoding/json"
	"time"
)

// MessageType constants for WebSocket protocol.
const (
	// Client -> Server
	TypePing = "ping"

	// Server -> Client
	TypeCatalogUpdate = "catalog_update"
	TypePong          = "pong"
	TypeError         = "error"
)

// Message wraps all WebSocket payloads with type and optional request ID.
type Message struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
}

// NewMessage encodes payload into a typed message.
func NewMessage(msgType string, payload interface{}) (Message, error) {
	msg := Message{Type: msgType}
	if payload == nil {
		return msg, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	msg.Payload = raw
	return msg, nil
}

// Server Messages (outgoing)

// CatalogUpdatePayload announces a question created or deleted.
type CatalogUpdatePayload struct {
	Event      string    `json:"event"`
	QuestionID int64     `json:"question_id"`
	Category   int64     `json:"category"`
	At         time.Time `json:"at"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
