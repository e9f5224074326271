package sink

import (
	"chat-sim/domain/event"
	"chat-sim/repositories"
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// TranscriptSink records every delivered event.
type TranscriptSink struct {
	repository repositories.ITranscriptRepository
	log        *slog.Logger
}

func NewTranscriptSink(repository repositories.ITranscriptRepository, log *slog.Logger) TranscriptSink {
	return TranscriptSink{repository: repository, log: log}
}

func (t TranscriptSink) Consume(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.repository.Store(repositories.Record{
		ID:      uuid.New(),
		Name:    e.Name,
		Payload: e.Payload,
		At:      e.At,
	})
}
