package chathub_test

import (
	"sync"

	"pingme/backend/internal/models"
)

// MockClient stands in for a websocket connection. Events pushed by the
// hub land in RecvChannel for the test to inspect. TrySend and Close use
// the same lock discipline as the real client so races in the hub surface
// under -race instead of hiding behind a test double.
type MockClient struct {
	userID      string
	RecvChannel chan models.Event

	mu     sync.Mutex
	closed bool
}

func newMockClient(userID string) *MockClient {
	return &MockClient{
		userID:      userID,
		RecvChannel: make(chan models.Event, 16),
	}
}

func (c *MockClient) GetUserID() string {
	return c.userID
}

func (c *MockClient) TrySend(event models.Event) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.RecvChannel <- event:
		return true
	default:
		return false
	}
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.RecvChannel)
}

func (c *MockClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// drain empties the receive channel and returns everything that was queued.
func (c *MockClient) drain() []models.Event {
	var events []models.Event
	for {
		select {
		case ev, ok := <-c.RecvChannel:
			if !ok {
				return events
			}
			events = append(events, ev)
		default:
			return events
		}
	}
}
