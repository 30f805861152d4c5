package chathub_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"pingme/backend/internal/chathub"
	"pingme/backend/internal/models"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := chathub.NewRegistry()
	clientA := newMockClient("user_A")

	prev, replaced := reg.Register("user_A", clientA)
	assert.Nil(t, prev)
	assert.False(t, replaced)

	got, ok := reg.Lookup("user_A")
	assert.True(t, ok)
	assert.Same(t, clientA, got)

	_, ok = reg.Lookup("user_B")
	assert.False(t, ok)
}

// TestRegistry_LastConnectionWins verifies that a second connection for
// the same user displaces the first and that the displaced one is handed
// back to the caller.
func TestRegistry_LastConnectionWins(t *testing.T) {
	reg := chathub.NewRegistry()
	first := newMockClient("user_A")
	second := newMockClient("user_A")

	reg.Register("user_A", first)
	prev, replaced := reg.Register("user_A", second)

	assert.True(t, replaced)
	assert.Same(t, first, prev)

	got, ok := reg.Lookup("user_A")
	assert.True(t, ok)
	assert.Same(t, second, got)
}

// TestRegistry_StaleDeregisterIsIgnored covers the race where an old
// connection's teardown arrives after a newer connection already
// registered: the newer entry must survive.
func TestRegistry_StaleDeregisterIsIgnored(t *testing.T) {
	reg := chathub.NewRegistry()
	stale := newMockClient("user_A")
	fresh := newMockClient("user_A")

	reg.Register("user_A", stale)
	reg.Register("user_A", fresh)

	removed := reg.Deregister("user_A", stale)
	assert.False(t, removed, "stale deregister must not remove the newer entry")
	assert.True(t, reg.IsOnline("user_A"))

	removed = reg.Deregister("user_A", fresh)
	assert.True(t, removed)
	assert.False(t, reg.IsOnline("user_A"))
}

func TestRegistry_BroadcastAll(t *testing.T) {
	reg := chathub.NewRegistry()
	clientA := newMockClient("user_A")
	clientB := newMockClient("user_B")
	reg.Register("user_A", clientA)
	reg.Register("user_B", clientB)

	event := models.Event{
		Type: models.EventPresenceUpdate,
		Data: models.PresenceEvent{UserID: "user_C", Online: true},
	}
	reg.BroadcastAll(event)

	for _, c := range []*MockClient{clientA, clientB} {
		select {
		case got := <-c.RecvChannel:
			assert.Equal(t, models.EventPresenceUpdate, got.Type)
		default:
			t.Errorf("client %s did not receive broadcast", c.GetUserID())
		}
	}
}

// TestRegistry_ConcurrentRegisterDeregister hammers one key from many
// goroutines; the registry must never deadlock or leave a half-updated
// entry visible (run with -race).
func TestRegistry_ConcurrentRegisterDeregister(t *testing.T) {
	reg := chathub.NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := newMockClient("user_A")
			reg.Register("user_A", c)
			reg.Lookup("user_A")
			reg.Deregister("user_A", c)
		}()
	}
	wg.Wait()

	// Whatever interleaving happened, the map is either empty or holds
	// exactly one live entry for the key.
	assert.LessOrEqual(t, reg.Len(), 1)
}
