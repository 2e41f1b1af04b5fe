package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a per-user message, delivered both over the REST list
// endpoint and pushed live over the WebSocket hub.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Subject   string    `json:"subject"`
	Content   string    `json:"content"`
	Type      string    `json:"type,omitempty"`
	Link      string    `json:"link,omitempty"`
	IsRead    bool      `json:"isRead"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublishNotificationRequest is the admin payload for pushing a notification.
type PublishNotificationRequest struct {
	UserID  uuid.UUID `json:"user" binding:"required"`
	Subject string    `json:"subject" binding:"required,max=255"`
	Content string    `json:"content" binding:"required,max=2000"`
	Type    string    `json:"type" binding:"omitempty,max=50"`
	Link    string    `json:"link" binding:"omitempty,max=500"`
}
