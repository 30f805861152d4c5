package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. The realtime core only ever touches
// the ID; the credential fields belong to the identity subsystem.
type User struct {
	ID           string     `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"not null" json:"-"`
	LastSeen     *time.Time `json:"lastSeen,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// BeforeCreate is a GORM hook that assigns a fresh UUID when the ID
// has not been set by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// UserWithPresence is the /users response shape: a user decorated with the
// online flag derived from the presence registry.
type UserWithPresence struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	LastSeen *time.Time `json:"lastSeen,omitempty"`
	Online   bool       `json:"online"`
}
