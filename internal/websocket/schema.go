package websocket

import (
	"github.com/google/uuid"

	"github.com/onthi-app/onthi-backend/internal/model"
)

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionJoinRoom  Action = "join-notification-room"
	ActionLeaveRoom Action = "leave-notification-room"
	ActionPing      Action = "ping"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// RoomRequest is sent by the client to join or leave its notification room.
// The user field must match the authenticated user; mismatches are rejected.
type RoomRequest struct {
	Action Action    `json:"action"`
	UserID uuid.UUID `json:"user"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventNewNotification Event = "new-notification"
	EventJoined          Event = "joined"
	EventLeft            Event = "left"
	EventError           Event = "error"
	EventPong            Event = "pong"
)

// NotificationEvent pushes a freshly published notification into the room.
type NotificationEvent struct {
	Event        Event              `json:"event"`
	Notification model.Notification `json:"notification"`
}

type AckEvent struct {
	Event Event `json:"event"`
}

type ErrorEvent struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}
