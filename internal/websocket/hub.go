package websocket

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Hub tracks which WebSocket clients have joined which user's notification
// room. A user may hold several connections (phone + tablet); each receives
// every event. Join/leave mirror the room lifecycle the mobile client drives
// explicitly when the notification screen mounts and unmounts.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uuid.UUID]map[*Client]struct{}
	log   zerolog.Logger
}

// NewHub creates an empty Hub.
func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*Client]struct{}),
		log:   log.With().Str("component", "notification_hub").Logger(),
	}
}

// Join adds a client to a user's room.
func (h *Hub) Join(userID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[userID] = room
	}
	room[c] = struct{}{}

	h.log.Debug().Str("user_id", userID.String()).Int("clients", len(room)).Msg("Client joined room")
}

// Leave removes a client from a user's room. Empty rooms are dropped so the
// map does not grow with every user who ever connected.
func (h *Hub) Leave(userID uuid.UUID, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, userID)
	}
}

// Broadcast sends a payload to every client in a user's room and returns how
// many clients received it. Clients whose write fails are evicted; their read
// loop will notice the broken connection and clean up.
func (h *Hub) Broadcast(userID uuid.UUID, v interface{}) int {
	h.mu.RLock()
	room := h.rooms[userID]
	clients := make([]*Client, 0, len(room))
	for c := range room {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	delivered := 0
	for _, c := range clients {
		if err := c.WriteTyped(v); err != nil {
			h.log.Warn().Err(err).Str("user_id", userID.String()).Msg("Broadcast write failed, evicting client")
			h.Leave(userID, c)
			continue
		}
		delivered++
	}
	return delivered
}

// RoomSize returns the number of clients in a user's room.
func (h *Hub) RoomSize(userID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
