package chathub_test

import (
	"time"

	"github.com/stretchr/testify/mock"

	"pingme/backend/internal/models"
)

// MockStorage is a testify/mock implementation of the storage.Storage
// interface, so hub tests can set expectations without a database.
type MockStorage struct {
	mock.Mock
}

// User operations
func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) FindUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListUsersExcept(userID string) ([]models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) UpdateLastSeen(userID string, t time.Time) error {
	args := m.Called(userID, t)
	return args.Error(0)
}

// Conversation operations
func (m *MockStorage) GetOrCreateConversation(userX, userY string) (*models.Conversation, error) {
	args := m.Called(userX, userY)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) FindConversationByID(id string) (*models.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) UpdateConversationLastMessage(conversationID, messageID string) error {
	args := m.Called(conversationID, messageID)
	return args.Error(0)
}

// Message operations
func (m *MockStorage) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) MarkDelivered(messageID string, t time.Time) error {
	args := m.Called(messageID, t)
	return args.Error(0)
}

func (m *MockStorage) MarkConversationRead(conversationID, readerID string, t time.Time) (int64, error) {
	args := m.Called(conversationID, readerID, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) GetMessages(conversationID string) ([]models.Message, error) {
	args := m.Called(conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// Event bridge
func (m *MockStorage) PublishEvent(env models.EventEnvelope) error {
	args := m.Called(env)
	return args.Error(0)
}
