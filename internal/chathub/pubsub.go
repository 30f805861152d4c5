package chathub

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pingme/backend/internal/metrics"
	"pingme/backend/internal/models"
)

// StartEventListener consumes the Redis event channel and delivers
// envelopes published by other instances to this instance's local
// connections. Envelopes this instance published itself are skipped, so
// local delivery never happens twice. Runs until ctx is cancelled.
func (m *Manager) StartEventListener(ctx context.Context, pubsub *redis.PubSub) {
	go func() {
		defer pubsub.Close()
		ch := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var env models.EventEnvelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					m.Log.Warn("unmarshalling bridged event", zap.Error(err))
					continue
				}
				if env.Origin == m.instanceID {
					continue
				}
				m.deliverLocal(env)
			}
		}
	}()
}

// deliverLocal hands a bridged envelope to local connections only. It never
// republishes, otherwise two instances would bounce events forever.
func (m *Manager) deliverLocal(env models.EventEnvelope) {
	if env.Target == models.BroadcastTarget {
		m.Presence.BroadcastAll(env.Event)
		return
	}
	c, ok := m.Presence.Lookup(env.Target)
	if !ok {
		return
	}
	if !c.TrySend(env.Event) {
		metrics.EventsDropped.Inc()
		m.Log.Warn("client queue full, dropping bridged event",
			zap.String("user_id", env.Target), zap.String("type", env.Event.Type))
	}
}
