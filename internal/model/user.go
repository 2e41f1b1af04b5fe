package model

import (
	"time"

	"github.com/google/uuid"
)

// UserRole enumerates account roles.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents an account (local or Google-federated).
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	GoogleID     *string   `json:"-"`
	AvatarURL    string    `json:"avatarUrl,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// RegisterRequest is the payload for local account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the payload for email + password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries the ID token obtained by the mobile client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// UpdateProfileRequest is the payload for profile updates.
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,min=2,max=100"`
	AvatarURL string `json:"avatarUrl" binding:"omitempty,url"`
}
