package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a single direct message. CreatedAt is assigned once at
// creation; DeliveredAt and ReadAt are each set at most once afterwards.
// A message is never deleted.
type Message struct {
	ID             string     `gorm:"primaryKey" json:"id"`
	ConversationID string     `gorm:"not null;index:idx_conversation_created" json:"conversationId"`
	SenderID       string     `gorm:"not null" json:"sender"`
	RecipientID    string     `gorm:"not null" json:"recipient"`
	Body           string     `gorm:"type:text;not null" json:"body"`
	CreatedAt      time.Time  `gorm:"index:idx_conversation_created" json:"createdAt"`
	DeliveredAt    *time.Time `json:"deliveredAt,omitempty"`
	ReadAt         *time.Time `json:"readAt,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}
