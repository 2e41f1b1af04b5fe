package authoring

import "time"

// ToastType selects success or error styling.
type ToastType string

const (
	ToastSuccess ToastType = "success"
	ToastError   ToastType = "error"
)

// ToastPosition places the toast on screen. Most toasts sit at the bottom;
// submission failures render at the top where the user is looking.
type ToastPosition string

const (
	PositionBottom ToastPosition = "bottom"
	PositionTop    ToastPosition = "top"
)

// Toast is a transient, auto-dismissing notification. This is the only
// user-visible success/error channel in the authoring flow.
type Toast struct {
	Type     ToastType
	Title    string
	Body     string
	Position ToastPosition
	Duration time.Duration
}

// Notifier displays toasts. cmd/author prints them to the terminal; a UI
// shell would render them natively.
type Notifier interface {
	Notify(t Toast)
}
