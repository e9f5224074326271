// Package domain contains core concepts of the chat system.
// This file defines the participants of a simulated chat.
// No runtime, network, or UI logic should be added here.
package domain

import "fmt"

type Role string

const (
	RoleUser   Role = "user"
	RoleStaff  Role = "staff"
	RoleSystem Role = "system"
)

// Identity is a known id/name/role triple of the participant directory.
type Identity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// Participant is a roster entry, one per connect call.
// SocketID is derived from the id and the connection time and is not unique
// across fast reconnects.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	SocketID string `json:"socketId"`
}

func NewParticipant(id, name string, role Role, unixMillis int64) Participant {
	return Participant{
		ID:       id,
		Name:     name,
		Role:     role,
		SocketID: fmt.Sprintf("mock_%s_%d", id, unixMillis),
	}
}

// Sender is the attribution attached to a chat message.
type Sender struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

var SystemSender = Sender{ID: "system", Name: "System", Role: RoleSystem}

func (i Identity) Sender() Sender {
	return Sender{ID: i.ID, Name: i.Name, Role: i.Role}
}
