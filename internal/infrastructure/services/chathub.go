package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"remory/internal/domain/chat"
	"remory/internal/shared/logger"
)

// ChatConn is the slice of *websocket.Conn the hub uses, extracted so the
// hub can be tested without a network handshake.
type ChatConn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

type historyEntry struct {
	ID      string    `json:"id"`
	RoomID  string    `json:"room_id"`
	Sender  string    `json:"sender"`
	Payload string    `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

// sendBuffer is the per-connection outbound queue depth. A member whose
// queue fills is evicted instead of stalling the room.
const sendBuffer = 256

// chatMember is one registered connection: its sender name plus the
// outbound queue its write loop drains. send is closed exactly once, by
// removeLocked.
type chatMember struct {
	sender string
	send   chan []byte
}

// ChatHub fans room messages out to every live connection in the room,
// the sender included. Socket writes happen on per-connection write loops,
// never under the hub lock. Rooms exist only while they have members; an
// empty room's map entry is dropped, its history stays in the store.
type ChatHub struct {
	mu       sync.Mutex
	rooms    map[string]map[ChatConn]*chatMember
	messages chat.MessageRepository
	logger   logger.Interface
}

func NewChatHub(messages chat.MessageRepository, logger logger.Interface) *ChatHub {
	return &ChatHub{
		rooms:    make(map[string]map[ChatConn]*chatMember),
		messages: messages,
		logger:   logger,
	}
}

// Serve runs the connection's full room session: history replay, join
// notice, then the read loop. Blocks until the connection drops.
func (h *ChatHub) Serve(ctx context.Context, roomID, sender string, conn ChatConn) {
	if err := h.replayHistory(ctx, roomID, conn); err != nil {
		h.logger.Errorw("failed to replay room history", "error", err, "room_id", roomID)
		conn.Close()
		return
	}

	h.join(roomID, sender, conn)
	h.broadcast(roomID, []byte(fmt.Sprintf("%s joined the room", sender)))

	defer func() {
		h.leave(roomID, conn)
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}

		msg := chat.NewMessage(roomID, sender, string(payload))
		if err := h.messages.Create(ctx, msg); err != nil {
			// The live fanout still happens; only replay loses the frame.
			h.logger.Errorw("failed to persist chat message", "error", err, "room_id", roomID)
		}

		h.broadcast(roomID, payload)
	}
}

// replayHistory sends the room's stored messages as a single JSON array
// frame before the connection joins the live fanout.
func (h *ChatHub) replayHistory(ctx context.Context, roomID string, conn ChatConn) error {
	msgs, err := h.messages.ListByRoom(ctx, roomID)
	if err != nil {
		return fmt.Errorf("failed to list room messages: %w", err)
	}

	entries := make([]historyEntry, 0, len(msgs))
	for _, msg := range msgs {
		entries = append(entries, historyEntry{
			ID:      msg.ID,
			RoomID:  msg.RoomID,
			Sender:  msg.Sender,
			Payload: msg.Payload,
			SentAt:  msg.SentAt,
		})
	}

	frame, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return conn.WriteMessage(websocket.TextMessage, frame)
}

func (h *ChatHub) join(roomID, sender string, conn ChatConn) {
	member := &chatMember{sender: sender, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	room, ok := h.rooms[roomID]
	if !ok {
		room = make(map[ChatConn]*chatMember)
		h.rooms[roomID] = room
	}
	room[conn] = member
	h.mu.Unlock()

	go h.writeLoop(roomID, conn, member)
}

func (h *ChatHub) leave(roomID string, conn ChatConn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(roomID, conn)
}

// writeLoop drains the member's queue onto the socket. A failed write
// evicts the connection; leaving the room closes the queue and ends the
// loop.
func (h *ChatHub) writeLoop(roomID string, conn ChatConn, member *chatMember) {
	for frame := range member.send {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.leave(roomID, conn)
			conn.Close()
			return
		}
	}
	conn.Close()
}

// broadcast queues the payload for every member of the room. Queueing
// never blocks: a member that has fallen sendBuffer frames behind is
// evicted so one stuck socket cannot stall the room.
func (h *ChatHub) broadcast(roomID string, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn, member := range h.rooms[roomID] {
		select {
		case member.send <- payload:
		default:
			h.logger.Warnw("dropping backlogged chat connection", "room_id", roomID, "sender", member.sender)
			h.removeLocked(roomID, conn)
			conn.Close()
		}
	}
}

func (h *ChatHub) removeLocked(roomID string, conn ChatConn) {
	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	member, ok := room[conn]
	if !ok {
		return
	}
	close(member.send)
	delete(room, conn)
	if len(room) == 0 {
		delete(h.rooms, roomID)
	}
}

// RoomSize reports the current member count of a room.
func (h *ChatHub) RoomSize(roomID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms[roomID])
}
