package chat

import "context"

// MessageRepository persists room messages for history replay.
type MessageRepository interface {
	Create(ctx context.Context, msg *Message) error

	// ListByRoom returns all messages for a room ordered by send time, ascending.
	ListByRoom(ctx context.Context, roomID string) ([]*Message, error)
}
