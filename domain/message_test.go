package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMessage_Json_Shape(t *testing.T) {
	req := require.New(t)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	bytes, err := json.Marshal(Message{
		ID:        "m1",
		Text:      "hi",
		Sender:    Sender{ID: "1", Name: "John Doe", Role: RoleUser},
		Timestamp: at,
		Type:      MessageGeneral,
	})

	req.NoError(err)
	req.JSONEq(`{
		"id": "m1",
		"text": "hi",
		"sender": {"id": "1", "name": "John Doe", "role": "user"},
		"timestamp": "2024-03-01T09:00:00Z",
		"type": "general"
	}`, string(bytes))
}

func TestOnlineUsers_Json_Shape(t *testing.T) {
	req := require.New(t)

	bytes, err := json.Marshal(OnlineUsers{
		Count: 1,
		Users: []Participant{NewParticipant("1", "John Doe", RoleUser, 1709283600000)},
	})

	req.NoError(err)
	req.JSONEq(`{
		"count": 1,
		"users": [{"id": "1", "name": "John Doe", "role": "user", "socketId": "mock_1_1709283600000"}]
	}`, string(bytes))
}

func TestNotification_Json_Shape_Omits_Missing_Fields(t *testing.T) {
	req := require.New(t)

	bytes, err := json.Marshal(Notification{
		Message: "Request 42 has been updated",
		Type:    "request_update",
		From:    "Sarah Chen",
	})

	req.NoError(err)
	req.JSONEq(`{"message": "Request 42 has been updated", "type": "request_update", "from": "Sarah Chen"}`, string(bytes))
}
