package chathub

import (
	"sync"

	"pingme/backend/internal/models"
)

// Registry is the presence registry: the in-memory map of online user to
// active connection. It is the single piece of shared mutable state in the
// process and the only source of truth for "online". It is deliberately
// not persisted; on restart every user starts offline until they
// reconnect.
//
// One entry per user: a second connection for the same user displaces the
// first (last-connection-wins, no multi-device fan-out).
type Registry struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]Client)}
}

// Register stores the connection for userID and returns the connection it
// displaced, if any. The caller is responsible for closing the displaced
// client.
func (r *Registry) Register(userID string, c Client) (prev Client, replaced bool) {
	r.mu.Lock()
	prev, replaced = r.clients[userID]
	r.clients[userID] = c
	r.mu.Unlock()
	return prev, replaced
}

// Deregister removes the entry for userID only if it still points at c.
// The guard keeps a stale disconnect from knocking out a newer connection
// that registered for the same user in the meantime. Returns whether the
// entry was removed.
func (r *Registry) Deregister(userID string, c Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.clients[userID]; ok && current == c {
		delete(r.clients, userID)
		return true
	}
	return false
}

// Lookup returns the active connection for userID. Never blocks.
func (r *Registry) Lookup(userID string) (Client, bool) {
	r.mu.RLock()
	c, ok := r.clients[userID]
	r.mu.RUnlock()
	return c, ok
}

// IsOnline reports whether userID has an active connection.
func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// Len returns the number of online users.
func (r *Registry) Len() int {
	r.mu.RLock()
	n := len(r.clients)
	r.mu.RUnlock()
	return n
}

// BroadcastAll pushes an event to every registered connection. Sends are
// non-blocking: a client that is closed or whose queue is full misses the
// event rather than stalling the broadcast. Used only for presence
// updates, which clients can always re-derive from /users. The snapshot
// may contain clients displaced after the lock was released; TrySend
// turns those into drops.
func (r *Registry) BroadcastAll(event models.Event) {
	r.mu.RLock()
	snapshot := make([]Client, 0, len(r.clients))
	for _, c := range r.clients {
		snapshot = append(snapshot, c)
	}
	r.mu.RUnlock()

	for _, c := range snapshot {
		c.TrySend(event)
	}
}
