package chathub

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pingme/backend/internal/metrics"
	"pingme/backend/internal/models"
	"pingme/backend/internal/storage"
)

// Manager owns the message lifecycle (send, read, delivery state) and the
// connection lifecycle (register, deregister, presence broadcasts). It is
// called from each connection's read pump, so every method must be safe
// under concurrent invocation; the Presence registry carries the only
// shared mutable state.
type Manager struct {
	Presence *Registry
	Storage  storage.Storage
	Log      *zap.Logger

	// instanceID tags events published to Redis so this instance can skip
	// its own publishes when they come back on the subscription.
	instanceID string
}

func NewManager(s storage.Storage, log *zap.Logger) *Manager {
	return &Manager{
		Presence:   NewRegistry(),
		Storage:    s,
		Log:        log,
		instanceID: uuid.New().String(),
	}
}

// Register puts a client into the presence registry and announces it. A
// prior connection for the same user is displaced and closed; its eventual
// deregister is a no-op thanks to the registry's identity guard.
func (m *Manager) Register(c Client) {
	if prev, replaced := m.Presence.Register(c.GetUserID(), c); replaced {
		prev.Close()
		m.Log.Info("displaced prior connection", zap.String("user_id", c.GetUserID()))
	}
	metrics.OnlineConns.Set(float64(m.Presence.Len()))
	m.broadcastPresence(c.GetUserID(), true)
	m.Log.Info("client registered", zap.String("user_id", c.GetUserID()))
}

// Unregister tears down a client. Presence transitions (offline broadcast,
// last-seen write) happen only if this client was still the registered one;
// a stale disconnect racing a newer register changes nothing.
func (m *Manager) Unregister(c Client) {
	userID := c.GetUserID()
	if m.Presence.Deregister(userID, c) {
		metrics.OnlineConns.Set(float64(m.Presence.Len()))
		if err := m.Storage.UpdateLastSeen(userID, time.Now().UTC()); err != nil {
			m.Log.Warn("recording last seen", zap.String("user_id", userID), zap.Error(err))
		}
		m.broadcastPresence(userID, false)
		m.Log.Info("client deregistered", zap.String("user_id", userID))
	}
	c.Close()
}

// HandleIntent routes one client frame. Validation failures on socket
// intents are dropped silently per the wire contract; only the debug log
// sees them.
func (m *Manager) HandleIntent(c Client, intent models.Intent) {
	switch intent.Type {
	case models.IntentMessageSend:
		m.SendMessage(c.GetUserID(), intent)
	case models.IntentMessageRead:
		m.MarkRead(c.GetUserID(), intent.ConversationID)
	case models.IntentTypingStart:
		m.NotifyTyping(c.GetUserID(), intent.To, true)
	case models.IntentTypingStop:
		m.NotifyTyping(c.GetUserID(), intent.To, false)
	default:
		m.Log.Debug("unknown intent type", zap.String("type", intent.Type), zap.String("user_id", c.GetUserID()))
	}
}

// SendMessage runs the send path: resolve the conversation, persist the
// message, take the one-time send-time delivery check, then fan out the
// sender echo (with tempId) and the recipient copy. Persistence always
// completes before any event is emitted; a storage failure aborts the
// whole operation with nothing dispatched.
func (m *Manager) SendMessage(senderID string, intent models.Intent) {
	body := strings.TrimSpace(intent.Body)
	if intent.To == "" || body == "" || intent.To == senderID {
		m.Log.Debug("ignoring invalid send", zap.String("sender", senderID), zap.String("to", intent.To))
		return
	}

	convo, err := m.Storage.GetOrCreateConversation(senderID, intent.To)
	if err != nil {
		m.Log.Error("resolving conversation", zap.String("sender", senderID), zap.Error(err))
		return
	}

	msg := &models.Message{
		ConversationID: convo.ID,
		SenderID:       senderID,
		RecipientID:    intent.To,
		Body:           body,
	}
	if err := m.Storage.CreateMessage(msg); err != nil {
		m.Log.Error("persisting message", zap.String("conversation_id", convo.ID), zap.Error(err))
		return
	}

	// The one-time send-time check. Only this lookup decides the
	// persisted delivery state; a recipient connecting right afterwards
	// catches up via history fetch, and a recipient on another instance
	// still gets the live copy through the bridge without deliveredAt.
	recipientOnline := m.Presence.IsOnline(intent.To)
	if recipientOnline {
		now := time.Now().UTC()
		if err := m.Storage.MarkDelivered(msg.ID, now); err != nil {
			m.Log.Error("marking delivered", zap.String("message_id", msg.ID), zap.Error(err))
			return
		}
		msg.DeliveredAt = &now
	}

	if err := m.Storage.UpdateConversationLastMessage(convo.ID, msg.ID); err != nil {
		// The pointer is derivable from the messages table; keep going.
		m.Log.Warn("updating last message pointer", zap.String("conversation_id", convo.ID), zap.Error(err))
	}

	metrics.MessagesSent.Inc()

	m.sendTo(senderID, models.Event{
		Type: models.EventMessageNew,
		Data: models.MessageEvent{Message: *msg, TempID: intent.TempID},
	})
	m.sendTo(intent.To, models.Event{
		Type: models.EventMessageNew,
		Data: models.MessageEvent{Message: *msg},
	})
	if recipientOnline {
		metrics.MessagesDelivered.Inc()
	}
}

// MarkRead marks every unread message addressed to readerID in the
// conversation as read, then tells the other member if anything changed.
// A reader who is not a member is a silent no-op: nothing persisted,
// nothing emitted, nothing reported.
func (m *Manager) MarkRead(readerID, conversationID string) {
	if conversationID == "" {
		return
	}
	convo, err := m.Storage.FindConversationByID(conversationID)
	if err != nil {
		m.Log.Error("loading conversation", zap.String("conversation_id", conversationID), zap.Error(err))
		return
	}
	if convo == nil || !convo.HasMember(readerID) {
		return
	}

	now := time.Now().UTC()
	changed, err := m.Storage.MarkConversationRead(conversationID, readerID, now)
	if err != nil {
		m.Log.Error("marking read", zap.String("conversation_id", conversationID), zap.Error(err))
		return
	}
	if changed == 0 {
		return
	}
	metrics.ReadReceipts.Inc()

	m.sendTo(convo.OtherMember(readerID), models.Event{
		Type: models.EventMessageRead,
		Data: models.ReadEvent{ConversationID: conversationID, ReadAt: now},
	})
}

// broadcastPresence announces an online/offline transition to every local
// connection and forwards it to the other instances.
func (m *Manager) broadcastPresence(userID string, online bool) {
	event := models.Event{
		Type: models.EventPresenceUpdate,
		Data: models.PresenceEvent{UserID: userID, Online: online},
	}
	m.Presence.BroadcastAll(event)
	m.publish(models.BroadcastTarget, event)
}
