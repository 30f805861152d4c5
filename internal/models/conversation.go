package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the durable record of the pairwise relationship between
// exactly two users. The member pair is stored normalized (UserAID < UserBID)
// under a composite unique index, so for any unordered pair at most one row
// can ever exist regardless of how many callers race the first contact.
type Conversation struct {
	ID string `gorm:"primaryKey" json:"id"`
	// UserAID is the lexicographically smaller member id.
	UserAID string `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"userAId"`
	// UserBID is the lexicographically larger member id.
	UserBID       string    `gorm:"uniqueIndex:idx_conversation_pair;not null" json:"userBId"`
	LastMessageID *string   `json:"lastMessageId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// HasMember reports whether userID is one of the two conversation members.
func (c *Conversation) HasMember(userID string) bool {
	return userID == c.UserAID || userID == c.UserBID
}

// OtherMember returns the member that is not userID. The caller must have
// checked membership first; for a non-member the larger member is returned.
func (c *Conversation) OtherMember(userID string) string {
	if userID == c.UserAID {
		return c.UserBID
	}
	return c.UserAID
}

// NormalizePair orders two user ids so that (a,b) and (b,a) map to the same
// storage key.
func NormalizePair(x, y string) (a, b string) {
	if x < y {
		return x, y
	}
	return y, x
}
