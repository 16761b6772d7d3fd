package models

import "time"

// ChatMessageModel represents the database persistence model for room
// messages replayed on join.
type ChatMessageModel struct {
	ID      string    `gorm:"primarykey;size:36"`
	RoomID  string    `gorm:"not null;size:100;index:idx_chat_room_sent,priority:1;column:room_id"`
	Sender  string    `gorm:"not null;size:32"`
	Payload string    `gorm:"not null;type:text"`
	SentAt  time.Time `gorm:"not null;index:idx_chat_room_sent,priority:2"`
}

// TableName specifies the table name for GORM
func (ChatMessageModel) TableName() string {
	return "chat_messages"
}
