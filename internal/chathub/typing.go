package chathub

import (
	"pingme/backend/internal/models"
)

// NotifyTyping forwards a typing start/stop signal to the target via the
// dispatcher: delivered if they are connected here, bridged if they may be
// on another instance, gone otherwise. Nothing is stored, queued, or
// retried; last event wins at the receiving client.
func (m *Manager) NotifyTyping(fromID, toID string, typing bool) {
	if toID == "" || toID == fromID {
		return
	}

	eventType := models.EventTypingStop
	if typing {
		eventType = models.EventTypingStart
	}
	m.sendTo(toID, models.Event{
		Type: eventType,
		Data: models.TypingEvent{From: fromID},
	})
}
