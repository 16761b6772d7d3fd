package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remory/internal/domain/chat"
)

func TestChatMessageRepository_ListByRoomOrdered(t *testing.T) {
	repo := NewChatMessageRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, payload := range []string{"first", "second", "third"} {
		msg := chat.NewMessage("room-1", "id_sub1", payload)
		msg.SentAt = base.Add(time.Duration(i) * time.Second)
		require.NoError(t, repo.Create(ctx, msg))
	}
	require.NoError(t, repo.Create(ctx, chat.NewMessage("room-2", "id_sub2", "elsewhere")))

	messages, err := repo.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, "first", messages[0].Payload)
	assert.Equal(t, "second", messages[1].Payload)
	assert.Equal(t, "third", messages[2].Payload)
}

func TestChatMessageRepository_EmptyRoom(t *testing.T) {
	repo := NewChatMessageRepository(newTestDB(t))

	messages, err := repo.ListByRoom(context.Background(), "room-empty")
	require.NoError(t, err)
	assert.Empty(t, messages)
}
