package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"remory/internal/domain/chat"
	"remory/internal/infrastructure/persistence/models"
)

type ChatMessageRepository struct {
	db *gorm.DB
}

func NewChatMessageRepository(db *gorm.DB) chat.MessageRepository {
	return &ChatMessageRepository{db: db}
}

func (r *ChatMessageRepository) Create(ctx context.Context, msg *chat.Message) error {
	model := &models.ChatMessageModel{
		ID:      msg.ID,
		RoomID:  msg.RoomID,
		Sender:  msg.Sender,
		Payload: msg.Payload,
		SentAt:  msg.SentAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

func (r *ChatMessageRepository) ListByRoom(ctx context.Context, roomID string) ([]*chat.Message, error) {
	var messageModels []models.ChatMessageModel
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("sent_at ASC").
		Find(&messageModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}

	messages := make([]*chat.Message, len(messageModels))
	for i := range messageModels {
		m := messageModels[i]
		messages[i] = &chat.Message{
			ID:      m.ID,
			RoomID:  m.RoomID,
			Sender:  m.Sender,
			Payload: m.Payload,
			SentAt:  m.SentAt,
		}
	}
	return messages, nil
}
