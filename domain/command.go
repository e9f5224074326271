package domain

// Action names a client can emit on its socket.
const (
	ActionSendMessage      = "send_message"
	ActionRequestUpdate    = "request_update"
	ActionSendNotification = "send_notification"
)

// OutgoingMessage is the payload of ActionSendMessage.
// Type defaults to MessageGeneral when empty.
type OutgoingMessage struct {
	Text       string      `json:"text"`
	To         string      `json:"to,omitempty"`
	Type       MessageType `json:"type"`
	TargetRole Role        `json:"targetRole,omitempty"`
}

// RequestUpdate is the payload of ActionRequestUpdate, echoed back verbatim.
type RequestUpdate struct {
	RequestID string `json:"requestId"`
	Update    any    `json:"update"`
}

// OutgoingNotification is the payload of ActionSendNotification.
type OutgoingNotification struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	UserID     string `json:"userId,omitempty"`
	TargetRole Role   `json:"targetRole,omitempty"`
}
