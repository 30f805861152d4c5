package chathub

import (
	"go.uber.org/zap"

	"pingme/backend/internal/metrics"
	"pingme/backend/internal/models"
)

// sendTo resolves the user's current connection and performs a single
// best-effort send. No local connection means the event goes onto the
// Redis bridge in case the user is attached to another instance; if nobody
// has them, the event is simply gone. Delivery and read state are the only
// facts that survive a drop, because they live in the persisted message
// rows, not in the event.
func (m *Manager) sendTo(userID string, event models.Event) {
	c, ok := m.Presence.Lookup(userID)
	if !ok {
		m.publish(userID, event)
		return
	}

	if !c.TrySend(event) {
		metrics.EventsDropped.Inc()
		m.Log.Warn("client queue full, dropping event",
			zap.String("user_id", userID), zap.String("type", event.Type))
	}
}

// publish puts an event on the cross-instance bridge, tagged with this
// instance's id so the local subscriber skips it on the way back.
func (m *Manager) publish(target string, event models.Event) {
	env := models.EventEnvelope{
		Origin: m.instanceID,
		Target: target,
		Event:  event,
	}
	if err := m.Storage.PublishEvent(env); err != nil {
		m.Log.Warn("publishing event", zap.String("target", target), zap.Error(err))
	}
}
