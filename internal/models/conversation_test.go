package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"pingme/backend/internal/models"
)

// TestNormalizePair verifies that argument order never matters: (a,b) and
// (b,a) map to the same storage key.
func TestNormalizePair(t *testing.T) {
	tests := []struct {
		name  string
		x, y  string
		wantA string
		wantB string
	}{
		{"already ordered", "alice", "bob", "alice", "bob"},
		{"swapped", "bob", "alice", "alice", "bob"},
		{"uuid-ish ids", "f0000000", "0a000000", "0a000000", "f0000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := models.NormalizePair(tt.x, tt.y)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantB, b)

			// Swapping the inputs must not change the result.
			a2, b2 := models.NormalizePair(tt.y, tt.x)
			assert.Equal(t, a, a2)
			assert.Equal(t, b, b2)
		})
	}
}

func TestConversationMembership(t *testing.T) {
	convo := models.Conversation{ID: "convo-1", UserAID: "alice", UserBID: "bob"}

	assert.True(t, convo.HasMember("alice"))
	assert.True(t, convo.HasMember("bob"))
	assert.False(t, convo.HasMember("mallory"))

	assert.Equal(t, "bob", convo.OtherMember("alice"))
	assert.Equal(t, "alice", convo.OtherMember("bob"))
}

// TestConversationBeforeCreate_GeneratesUUID mirrors the user hook test:
// the hook must fill an empty ID and leave a caller-set one alone.
func TestConversationBeforeCreate_GeneratesUUID(t *testing.T) {
	convo := &models.Conversation{UserAID: "alice", UserBID: "bob"}
	assert.Empty(t, convo.ID)

	err := convo.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, convo.ID)

	_, parseErr := uuid.Parse(convo.ID)
	assert.NoError(t, parseErr, "generated ID must be a valid UUID")

	existing := uuid.New().String()
	convo = &models.Conversation{ID: existing, UserAID: "alice", UserBID: "bob"}
	assert.NoError(t, convo.BeforeCreate(nil))
	assert.Equal(t, existing, convo.ID)
}

func TestMessageBeforeCreate_GeneratesUUID(t *testing.T) {
	msg := &models.Message{ConversationID: "convo-1", SenderID: "alice", RecipientID: "bob", Body: "hi"}

	err := msg.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, msg.ID)

	_, parseErr := uuid.Parse(msg.ID)
	assert.NoError(t, parseErr)

	// Fresh messages carry no delivery or read state.
	assert.Nil(t, msg.DeliveredAt)
	assert.Nil(t, msg.ReadAt)
}
