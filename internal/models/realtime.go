package models

import "time"

// Intent types accepted from a client connection.
const (
	IntentMessageSend = "message:send"
	IntentMessageRead = "message:read"
	IntentTypingStart = "typing:start"
	IntentTypingStop  = "typing:stop"
)

// Event types emitted to client connections.
const (
	EventMessageNew     = "message:new"
	EventMessageRead    = "message:read"
	EventTypingStart    = "typing:start"
	EventTypingStop     = "typing:stop"
	EventPresenceUpdate = "presence:update"
)

// Intent is the client-to-server frame. Fields not used by a given type
// are left empty.
type Intent struct {
	Type           string `json:"type"`
	To             string `json:"to,omitempty"`
	Body           string `json:"body,omitempty"`
	TempID         string `json:"tempId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
}

// Event is the server-to-client frame.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// MessageEvent is the message:new payload. TempID is the client-supplied
// correlation token, echoed back verbatim on the sender's copy only; the
// server never interprets it.
type MessageEvent struct {
	Message
	TempID string `json:"tempId,omitempty"`
}

// ReadEvent is the message:read payload sent to the other member after a
// bulk read transition.
type ReadEvent struct {
	ConversationID string    `json:"conversationId"`
	ReadAt         time.Time `json:"readAt"`
}

// TypingEvent is the typing:start / typing:stop payload.
type TypingEvent struct {
	From string `json:"from"`
}

// PresenceEvent is the presence:update payload broadcast to every
// connected client.
type PresenceEvent struct {
	UserID string `json:"userId"`
	Online bool   `json:"online"`
}

// EventEnvelope wraps an Event for the Redis bridge between instances.
// Target is a user id, or "*" for a broadcast. Origin identifies the
// publishing instance so a subscriber can skip its own publishes.
type EventEnvelope struct {
	Origin string `json:"origin"`
	Target string `json:"target"`
	Event  Event  `json:"event"`
}

// BroadcastTarget is the envelope target for events addressed to every
// connected client rather than a single user.
const BroadcastTarget = "*"
