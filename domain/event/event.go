package event

import (
	"time"
)

// Names of the events delivered to subscribers.
const (
	Connect         = "connect"
	NewMessage      = "new_message"
	OnlineUsers     = "online_users"
	Disconnect      = "disconnect"
	RequestUpdate   = "request_update"
	NewNotification = "new_notification"
)

// DisconnectReason is the payload of a client initiated Disconnect event.
const DisconnectReason = "client disconnect"

// Event is one delivery to the subscribers of Name.
// Payload is nil for Connect, a string for Disconnect and a domain value
// (domain.Message, domain.OnlineUsers, domain.RequestUpdate,
// domain.Notification) otherwise.
type Event struct {
	Name    string
	Payload any
	At      time.Time
}

// Handler receives the events of the name it was registered for.
// A returned error is logged and does not stop the other handlers.
type Handler func(evt Event) error
