package chathub

import "pingme/backend/internal/models"

// Client is the interface for one active connection. It abstracts the
// underlying transport so the hub, presence registry, and tests can treat
// connections uniformly.
type Client interface {
	// GetUserID returns the verified user identity attached to this
	// connection at handshake time.
	GetUserID() string

	// TrySend queues an outbound event without blocking. It reports false
	// if the client is closed or its queue is full; the event is then
	// simply dropped. Safe to call concurrently with Close: a displaced
	// connection may still be the target of in-flight broadcasts, and
	// those must degrade to a drop, never a send on a closed channel.
	TrySend(event models.Event) bool

	// Run starts the client's read and write pumps.
	Run()

	// Close shuts down the outbound queue, stopping the write pump. Safe
	// to call more than once.
	Close()
}
