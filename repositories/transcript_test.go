package repositories

import (
	"chat-sim/domain"
	"chat-sim/domain/event"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func Test_Store_And_List_Transcript(t *testing.T) {
	req := require.New(t)
	repository := NewTranscriptRepository(openInMemory(t), slog.Default(), nil)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// Given events stored out of order
	records := []Record{
		{ID: uuid.New(), Name: event.OnlineUsers, At: at.Add(2 * time.Millisecond), Payload: domain.OnlineUsers{
			Count: 1,
			Users: []domain.Participant{domain.NewParticipant("1", "John Doe", domain.RoleUser, 5)},
		}},
		{ID: uuid.New(), Name: event.Connect, At: at},
		{ID: uuid.New(), Name: event.NewMessage, At: at.Add(time.Millisecond), Payload: domain.Message{
			ID: "m1", Text: "hi", Sender: domain.SystemSender, Timestamp: at, Type: domain.MessageSystem,
		}},
		{ID: uuid.New(), Name: event.Disconnect, At: at.Add(3 * time.Millisecond), Payload: event.DisconnectReason},
	}
	for _, record := range records {
		req.NoError(repository.Store(record))
	}

	// When listing everything
	fetched, err := repository.List("")
	req.NoError(err)

	// Then records come back in delivery order
	req.Equal([]string{event.Connect, event.NewMessage, event.OnlineUsers, event.Disconnect},
		lo.Map(fetched, func(r Record, _ int) string { return r.Name }))
	req.Equal(records[1].ID, fetched[0].ID)
	req.Equal(at, fetched[0].At)
	req.Nil(fetched[0].Payload)
	req.Equal(event.DisconnectReason, fetched[3].Payload)

	// And payloads keep their JSON shape
	message := fetched[1].Payload.(map[string]any)
	req.Equal("hi", message["text"])
	req.Equal(map[string]any{"id": "system", "name": "System", "role": "system"}, message["sender"])
	online := fetched[2].Payload.(map[string]any)
	req.Equal(float64(1), online["count"])
	req.Equal("mock_1_5", online["users"].([]any)[0].(map[string]any)["socketId"])
}

func Test_List_Transcript_By_Name(t *testing.T) {
	req := require.New(t)
	repository := NewTranscriptRepository(openInMemory(t), slog.Default(), nil)
	at := time.Now().UTC()

	for i, name := range []string{event.NewMessage, event.NewNotification, event.NewMessage} {
		req.NoError(repository.Store(Record{
			ID:      uuid.New(),
			Name:    name,
			At:      at.Add(time.Duration(i) * time.Second),
			Payload: map[string]any{"rank": i},
		}))
	}

	fetched, err := repository.List(event.NewMessage)

	req.NoError(err)
	req.Len(fetched, 2)
	req.Equal(float64(0), fetched[0].Payload.(map[string]any)["rank"])
	req.Equal(float64(2), fetched[1].Payload.(map[string]any)["rank"])
}

func Test_List_Transcript_And_Limit(t *testing.T) {
	req := require.New(t)
	limit := 2
	repository := NewTranscriptRepository(openInMemory(t), slog.Default(), &limit)
	at := time.Now().UTC()

	for i := 0; i < 3; i++ {
		req.NoError(repository.Store(Record{ID: uuid.New(), Name: event.Connect, At: at.Add(time.Duration(i) * time.Minute)}))
	}

	fetched, err := repository.List("")

	req.NoError(err)
	req.Len(fetched, limit)
	req.Equal(at.Add(time.Minute), fetched[1].At)
}

func Test_Store_Rejects_Unencodable_Payload(t *testing.T) {
	req := require.New(t)
	repository := NewTranscriptRepository(openInMemory(t), slog.Default(), nil)

	err := repository.Store(Record{ID: uuid.New(), Name: event.RequestUpdate, At: time.Now(), Payload: make(chan int)})

	req.Error(err)
}

func Test_List_Transcript_Keeps_Store_Order_At_Same_Instant(t *testing.T) {
	req := require.New(t)
	repository := NewTranscriptRepository(openInMemory(t), slog.Default(), nil)
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	// Given a request update and its notification delivered at the same instant
	for _, name := range []string{event.RequestUpdate, event.NewNotification, event.NewMessage, event.Connect} {
		req.NoError(repository.Store(Record{ID: uuid.New(), Name: name, At: at}))
	}

	// When listing everything
	fetched, err := repository.List("")

	// Then they come back in the order they were stored
	req.NoError(err)
	req.Equal([]string{event.RequestUpdate, event.NewNotification, event.NewMessage, event.Connect},
		lo.Map(fetched, func(r Record, _ int) string { return r.Name }))
}
