package workers

import (
	"chat-sim/domain/event"
	"chat-sim/mocks"
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestEventFanout_Fanout(t *testing.T) {
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	first := mocks.NewMockEventSink(ctrl)
	second := mocks.NewMockEventSink(ctrl)

	evt := event.Event{Name: event.NewMessage, At: time.Now()}
	fanout := NewEventFanout(log, nil, time.Second, first, second)

	// Given the first sink fails
	// Then the second one is still consumed, after the first
	gomock.InOrder(
		first.EXPECT().Consume(gomock.Any(), evt).Return(fmt.Errorf("disk full")),
		second.EXPECT().Consume(gomock.Any(), evt).Return(nil),
	)

	// When an event is fanned out
	fanout.Fanout(context.Background(), evt)
}

func TestEventFanout_SinkTimeout(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	slow := mocks.NewMockEventSink(ctrl)

	sinkTimeout := 20 * time.Millisecond
	fanout := NewEventFanout(log, nil, sinkTimeout, slow)

	// Given a sink waiting for its context
	slow.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.Event) error {
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	// When an event is fanned out
	begin := time.Now()
	fanout.Fanout(context.Background(), event.Event{Name: event.Connect})

	// Then the sink is canceled after the timeout
	req.Less(time.Since(begin), time.Second)
}

func TestEventFanout_Run_Drains_Events_In_Order(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockEventSink(ctrl)
	events := make(chan event.Event, 3)

	var names []string
	done := make(chan struct{})
	sink.EXPECT().Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, evt event.Event) error {
			names = append(names, evt.Name)
			if len(names) == 3 {
				close(done)
			}
			return nil
		}).
		Times(3)

	events <- event.Event{Name: event.Connect}
	events <- event.Event{Name: event.NewMessage}
	events <- event.Event{Name: event.OnlineUsers}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan error)
	go func() { stopped <- NewEventFanout(log, events, time.Second, sink).Run(ctx) }()

	select {
	case <-done:
	case <-time.After(time.Second):
		req.Fail("Events were not fanned out in time")
	}
	req.Equal([]string{event.Connect, event.NewMessage, event.OnlineUsers}, names)

	// When the context is canceled the worker ends without error
	cancel()
	req.NoError(<-stopped)
}

func TestEventFanout_Run_Stops_On_Closed_Channel(t *testing.T) {
	req := require.New(t)
	events := make(chan event.Event)
	close(events)

	err := NewEventFanout(logs.GetLoggerFromLevel(slog.LevelDebug), events, time.Second).Run(context.Background())

	req.NoError(err)
}
