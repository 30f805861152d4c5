package storage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"pingme/backend/internal/models"
)

// eventsChannel is the Redis pub/sub channel carrying event envelopes
// between instances.
const eventsChannel = "chat:events"

// Storage is everything the realtime core needs from the durable store and
// the event bridge. Handlers and the chathub depend on this interface, not
// on the concrete Service, so tests can swap in a mock.
type Storage interface {
	// Users
	CreateUser(user *models.User) error
	FindUserByUsername(username string) (*models.User, error)
	ListUsersExcept(userID string) ([]models.User, error)
	UpdateLastSeen(userID string, t time.Time) error

	// Conversations
	GetOrCreateConversation(userX, userY string) (*models.Conversation, error)
	FindConversationByID(id string) (*models.Conversation, error)
	UpdateConversationLastMessage(conversationID, messageID string) error

	// Messages
	CreateMessage(msg *models.Message) error
	MarkDelivered(messageID string, t time.Time) error
	MarkConversationRead(conversationID, readerID string, t time.Time) (int64, error)
	GetMessages(conversationID string) ([]models.Message, error)

	// Event bridge
	PublishEvent(env models.EventEnvelope) error
}

// Service is the production Storage backed by PostgreSQL (via GORM) and
// Redis for the cross-instance event channel.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// PublishEvent puts an event envelope on the shared Redis channel so other
// instances can deliver it to their local connections.
func (s *Service) PublishEvent(env models.EventEnvelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, eventsChannel, payload).Err()
}

// SubscribeEvents subscribes to the shared event channel. The caller owns
// the returned PubSub and must close it.
func (s *Service) SubscribeEvents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, eventsChannel)
}
