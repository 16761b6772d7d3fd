// Package chat holds the room message entity persisted by the broadcaster.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is one chat frame persisted for history replay. The payload is
// stored and re-broadcast exactly as the client sent it.
type Message struct {
	ID      string
	RoomID  string
	Sender  string
	Payload string
	SentAt  time.Time
}

// NewMessage stamps an inbound frame with a server-generated unique ID and
// the current time.
func NewMessage(roomID, sender, payload string) *Message {
	return &Message{
		ID:      uuid.NewString(),
		RoomID:  roomID,
		Sender:  sender,
		Payload: payload,
		SentAt:  time.Now().UTC(),
	}
}
