package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"pingme/backend/internal/models"
)

// CreateUser inserts a new user. A duplicate username surfaces as
// gorm.ErrDuplicatedKey for the handler to translate.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

func (s *Service) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersExcept returns every user other than userID, ordered by
// username for a stable contact list.
func (s *Service) ListUsersExcept(userID string) ([]models.User, error) {
	var users []models.User
	err := s.DB.Where("id <> ?", userID).Order("username asc").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateLastSeen records the last-seen timestamp on disconnect.
func (s *Service) UpdateLastSeen(userID string, t time.Time) error {
	return s.DB.Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen", t).Error
}

// GetOrCreateConversation resolves the single conversation for the
// unordered pair {userX, userY}, creating it on first contact. The pair is
// normalized before lookup so argument order never matters, and the
// composite unique index on (user_a_id, user_b_id) is the arbiter under
// concurrency: a loser of the create race gets gorm.ErrDuplicatedKey and
// retries as a lookup, so every concurrent caller observes the same row.
func (s *Service) GetOrCreateConversation(userX, userY string) (*models.Conversation, error) {
	a, b := models.NormalizePair(userX, userY)

	find := func() (*models.Conversation, error) {
		var convo models.Conversation
		if err := s.DB.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&convo).Error; err != nil {
			return nil, err
		}
		return &convo, nil
	}
	create := func(convo *models.Conversation) error {
		return s.DB.Create(convo).Error
	}
	return resolveConversation(a, b, find, create)
}

// resolveConversation runs the find → create → conflict-as-lookup
// sequence against an already-normalized pair. find must report a missing
// row as gorm.ErrRecordNotFound and create must report a unique-index
// violation as gorm.ErrDuplicatedKey; everything else propagates to the
// caller untouched.
func resolveConversation(a, b string, find func() (*models.Conversation, error), create func(*models.Conversation) error) (*models.Conversation, error) {
	convo, err := find()
	if err == nil {
		return convo, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &models.Conversation{UserAID: a, UserBID: b}
	err = create(fresh)
	if err == nil {
		return fresh, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost the first-contact race; the winner's row is the conversation.
		return find()
	}
	return nil, err
}

func (s *Service) FindConversationByID(id string) (*models.Conversation, error) {
	var convo models.Conversation
	err := s.DB.First(&convo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &convo, nil
}

// UpdateConversationLastMessage moves the lastMessage pointer. This is the
// only mutation a conversation row ever sees.
func (s *Service) UpdateConversationLastMessage(conversationID, messageID string) error {
	return s.DB.Model(&models.Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_id", messageID).Error
}

// CreateMessage persists a message in its initial state. The ID and
// CreatedAt are filled in by GORM on return.
func (s *Service) CreateMessage(msg *models.Message) error {
	return s.DB.Create(msg).Error
}

// MarkDelivered sets deliveredAt on a single message. Called only on the
// send path, after the send-time presence check.
func (s *Service) MarkDelivered(messageID string, t time.Time) error {
	return s.DB.Model(&models.Message{}).
		Where("id = ?", messageID).
		Update("delivered_at", t).Error
}

// MarkConversationRead sets readAt on every unread message addressed to
// readerID in the conversation and returns how many rows transitioned.
// Messages already read keep their original readAt, which makes repeated
// calls no-ops.
func (s *Service) MarkConversationRead(conversationID, readerID string, t time.Time) (int64, error) {
	res := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND recipient_id = ? AND read_at IS NULL", conversationID, readerID).
		Update("read_at", t)
	return res.RowsAffected, res.Error
}

// GetMessages returns the full history of a conversation, oldest first.
// This is the authoritative reconciliation source for clients that missed
// live events.
func (s *Service) GetMessages(conversationID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Where("conversation_id = ?", conversationID).
		Order("created_at asc").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}
