package websocket

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu      sync.Mutex
	written []interface{}
	failAll bool
}

func (f *fakeConn) SetWriteDeadline(t time.Time) error { return nil }

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errors.New("broken pipe")
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.written)
}

func newTestHub() *Hub {
	return NewHub(zerolog.Nop())
}

func TestHubJoinLeave(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	c := &Client{conn: &fakeConn{}}

	hub.Join(userID, c)
	assert.Equal(t, 1, hub.RoomSize(userID))

	hub.Leave(userID, c)
	assert.Equal(t, 0, hub.RoomSize(userID))
}

func TestHubBroadcastReachesEveryRoomClient(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()
	otherID := uuid.New()

	phone := &fakeConn{}
	tablet := &fakeConn{}
	stranger := &fakeConn{}

	hub.Join(userID, &Client{conn: phone})
	hub.Join(userID, &Client{conn: tablet})
	hub.Join(otherID, &Client{conn: stranger})

	delivered := hub.Broadcast(userID, AckEvent{Event: EventPong})

	assert.Equal(t, 2, delivered)
	assert.Equal(t, 1, phone.count())
	assert.Equal(t, 1, tablet.count())
	assert.Equal(t, 0, stranger.count(), "other user's room must not receive the event")
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := newTestHub()
	assert.Equal(t, 0, hub.Broadcast(uuid.New(), AckEvent{Event: EventPong}))
}

func TestHubEvictsFailedClient(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	healthy := &fakeConn{}
	broken := &fakeConn{failAll: true}

	hub.Join(userID, &Client{conn: healthy})
	hub.Join(userID, &Client{conn: broken})

	delivered := hub.Broadcast(userID, AckEvent{Event: EventPong})
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, hub.RoomSize(userID), "failed client should be evicted")

	// A second broadcast only touches the healthy client.
	delivered = hub.Broadcast(userID, AckEvent{Event: EventPong})
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 2, healthy.count())
}

func TestHubLeaveUnknownRoomIsNoop(t *testing.T) {
	hub := newTestHub()
	require.NotPanics(t, func() {
		hub.Leave(uuid.New(), &Client{conn: &fakeConn{}})
	})
}

func TestHubConcurrentJoinBroadcast(t *testing.T) {
	hub := newTestHub()
	userID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c := &Client{conn: &fakeConn{}}
			hub.Join(userID, c)
			hub.Leave(userID, c)
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast(userID, AckEvent{Event: EventPong})
		}()
	}
	wg.Wait()
}
