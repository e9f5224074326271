package runtime

import (
	"chat-sim/errors"
	"context"
	"log/slog"
	"sync"
	"time"
)

// EventLoop is the real time Scheduler.
// Timers only post tasks; every task runs on the goroutine executing Run,
// one after the other. Run is meant to be owned by a supervisor.
type EventLoop struct {
	log     *slog.Logger
	tasks   chan func()
	stopped chan struct{}
	once    sync.Once
}

func NewEventLoop(log *slog.Logger, bufferSize int) *EventLoop {
	return &EventLoop{
		log:     log,
		tasks:   make(chan func(), bufferSize),
		stopped: make(chan struct{}),
	}
}

func (l *EventLoop) Now() time.Time { return time.Now() }

// Schedule never blocks the caller. Tasks due after the loop stopped are dropped.
func (l *EventLoop) Schedule(delay time.Duration, task func()) {
	time.AfterFunc(delay, func() { l.post(task) })
}

func (l *EventLoop) post(task func()) {
	select {
	case <-l.stopped:
		l.log.Debug("Scheduled task dropped", "error", errors.ErrLoopStopped)
		return
	default:
	}
	select {
	case l.tasks <- task:
	case <-l.stopped:
		l.log.Debug("Scheduled task dropped", "error", errors.ErrLoopStopped)
	}
}

// Run executes posted tasks until ctx is done.
// A panicking task propagates to the caller so the supervisor restarts the loop;
// tasks still queued are kept for the next Run.
func (l *EventLoop) Run(ctx context.Context) error {
	for {
		select {
		case task := <-l.tasks:
			task()
		case <-ctx.Done():
			l.once.Do(func() { close(l.stopped) })
			l.log.Debug("Context done, stopping event loop")
			return nil
		}
	}
}
