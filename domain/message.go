// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable once delivered.
package domain

import (
	"time"
)

type MessageType string

const (
	MessageGeneral MessageType = "general"
	MessageSupport MessageType = "support"
	MessageRequest MessageType = "request"
	MessageSystem  MessageType = "system"
)

// Message is the payload of a delivered chat event.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Sender    Sender      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
}

// OnlineUsers is a roster snapshot.
type OnlineUsers struct {
	Count int           `json:"count"`
	Users []Participant `json:"users"`
}

// Notification keeps the fields sent by the client and adds the
// counterpart attribution. Timestamp is absent on notifications derived
// from a request update.
type Notification struct {
	Message    string     `json:"message"`
	Type       string     `json:"type"`
	UserID     string     `json:"userId,omitempty"`
	TargetRole Role       `json:"targetRole,omitempty"`
	From       string     `json:"from"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}
