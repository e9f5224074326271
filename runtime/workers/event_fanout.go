package workers

import (
	"chat-sim/contract"
	"chat-sim/domain/event"
	"context"
	"log/slog"
	"time"
)

// EventFanout forwards every event observed on a simulator to the sinks.
//
// It is best effort: no retries, and a sink slower than sinkTimeout sees its
// context canceled. Sinks are called one after the other, in the order they
// were given, so each sink sees events in delivery order.
type EventFanout struct {
	log         *slog.Logger
	events      <-chan event.Event
	sinkTimeout time.Duration
	sinks       []contract.EventSink
}

func NewEventFanout(log *slog.Logger, events <-chan event.Event, sinkTimeout time.Duration,
	sinks ...contract.EventSink) *EventFanout {
	return &EventFanout{log: log, events: events, sinkTimeout: sinkTimeout, sinks: sinks}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt, ok := <-w.events:
			if !ok {
				w.log.Debug("Observer channel closed, stopping fanout")
				return nil
			}
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping fanout")
			return nil
		}
	}
}

// Fanout One sink after the other for each event
func (w *EventFanout) Fanout(ctx context.Context, evt event.Event) {
	for _, sink := range w.sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, evt); err != nil {
			w.log.Warn("Sink failed to consume event", "event", evt.Name, "error", err)
		}
		cancel()
	}
}
