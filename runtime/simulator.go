// Package runtime runs the simulated socket: sessions, roster, subscribers
// and the scheduling of synthetic server events.
package runtime

import (
	"chat-sim/contract"
	"chat-sim/domain"
	"chat-sim/domain/event"
	"chat-sim/errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Options struct {
	ConnectDelay       time.Duration
	MessageDelay       time.Duration
	RequestUpdateDelay time.Duration
	NotificationDelay  time.Duration
	// AutoReplyProbability is the chance, in [0, 1], that a sent message
	// gets an answer from the counterpart.
	AutoReplyProbability float64
	AutoReplyMinDelay    time.Duration
	AutoReplyJitter      time.Duration
	// Observer receives a copy of every delivered event when not nil.
	// Sends never block; events are dropped when the channel is full.
	Observer chan<- event.Event
}

func DefaultOptions() Options {
	return Options{
		ConnectDelay:         100 * time.Millisecond,
		MessageDelay:         100 * time.Millisecond,
		RequestUpdateDelay:   200 * time.Millisecond,
		NotificationDelay:    100 * time.Millisecond,
		AutoReplyProbability: 0.3,
		AutoReplyMinDelay:    time.Second,
		AutoReplyJitter:      2 * time.Second,
	}
}

type session struct {
	id        string
	role      domain.Role
	connected bool
}

// Simulator imitates a chat server behind a single client socket.
// State changes are guarded by mu; synthetic events are produced by tasks
// of the scheduler. Deliveries hold deliverMu, so handlers never run
// concurrently, whichever goroutine triggered them.
type Simulator struct {
	mu        sync.Mutex
	deliverMu sync.Mutex
	log       *slog.Logger
	scheduler contract.Scheduler
	random    contract.RandomSource
	directory domain.Directory
	options   Options
	registry  *Registry
	roster    *Roster
	session   session
	socket    *Socket
}

func NewSimulator(log *slog.Logger, scheduler contract.Scheduler, random contract.RandomSource,
	directory domain.Directory, options Options) *Simulator {
	return &Simulator{
		log:       log,
		scheduler: scheduler,
		random:    random,
		directory: directory,
		options:   options,
		registry:  NewRegistry(log),
		roster:    NewRoster(),
	}
}

// Connect opens a session for the identity and returns its socket.
// Connecting again overwrites the session and appends another roster entry.
// The greeting (connect, welcome message, online users) arrives after ConnectDelay.
func (s *Simulator) Connect(id string, role domain.Role) *Socket {
	s.log.Info("Socket connecting", "id", id, "role", role)
	participant := domain.NewParticipant(id, s.directory.Name(id), role, s.scheduler.Now().UnixMilli())

	s.mu.Lock()
	s.session = session{id: id, role: role, connected: true}
	s.roster.Add(participant)
	socket := &Socket{sim: s, id: id}
	s.socket = socket
	s.mu.Unlock()

	s.scheduler.Schedule(s.options.ConnectDelay, func() { s.greet(participant) })
	return socket
}

func (s *Simulator) greet(participant domain.Participant) {
	s.deliver(event.Connect, nil)

	users := s.roster.Snapshot()
	s.deliver(event.NewMessage, domain.Message{
		ID:        uuid.NewString(),
		Text:      fmt.Sprintf("Welcome %s! Simulated chat is working. %d users online.", participant.Name, len(users)),
		Sender:    domain.SystemSender,
		Timestamp: s.scheduler.Now(),
		Type:      domain.MessageSystem,
	})
	s.deliver(event.OnlineUsers, domain.OnlineUsers{Count: len(users), Users: users})
}

// Disconnect closes the active socket, if any. Deliveries already
// scheduled are not cancelled.
// It delivers synchronously: calling it from inside an event handler
// deadlocks, schedule it instead.
func (s *Simulator) Disconnect() {
	s.mu.Lock()
	socket := s.socket
	s.socket = nil
	s.mu.Unlock()

	if socket != nil {
		socket.Disconnect()
	}
}

func (s *Simulator) disconnect(id string) {
	s.mu.Lock()
	s.session.connected = false
	s.mu.Unlock()

	removed := s.roster.RemoveByID(id)
	s.log.Info("Socket disconnected", "id", id, "removed", removed)
	s.deliver(event.Disconnect, event.DisconnectReason)
}

// SendMessage emits a chat message on the active socket.
// Without a connected socket the message is dropped and an error is logged.
func (s *Simulator) SendMessage(message domain.OutgoingMessage) {
	socket, err := s.activeSocket()
	if err != nil {
		s.log.Error("Message dropped", "error", err)
		return
	}
	s.log.Debug("Sending message", "text", message.Text, "type", message.Type)
	socket.Emit(domain.ActionSendMessage, message)
}

func (s *Simulator) SendRequestUpdate(requestID string, update any) {
	socket, err := s.activeSocket()
	if err != nil {
		s.log.Error("Request update dropped", "request_id", requestID, "error", err)
		return
	}
	socket.Emit(domain.ActionRequestUpdate, domain.RequestUpdate{RequestID: requestID, Update: update})
}

func (s *Simulator) SendNotification(notification domain.OutgoingNotification) {
	socket, err := s.activeSocket()
	if err != nil {
		s.log.Error("Notification dropped", "error", err)
		return
	}
	socket.Emit(domain.ActionSendNotification, notification)
}

func (s *Simulator) activeSocket() (*Socket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.socket == nil || !s.session.connected {
		return nil, errors.ErrNotConnected
	}
	return s.socket, nil
}

// Socket returns the active socket, nil once Disconnect was called.
func (s *Simulator) Socket() *Socket {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.socket
}

func (s *Simulator) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.connected
}

func (s *Simulator) Roster() []domain.Participant {
	return s.roster.Snapshot()
}

func (s *Simulator) currentSession() session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// deliver fans the event out to the subscribers, then to the observer.
func (s *Simulator) deliver(name string, payload any) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	evt := event.Event{Name: name, Payload: payload, At: s.scheduler.Now()}
	invoked := s.registry.Deliver(evt)
	s.log.Debug("Event delivered", "event", name, "handlers", invoked)

	if s.options.Observer == nil {
		return
	}
	select {
	case s.options.Observer <- evt:
	default:
		s.log.Debug("Observer event lost", "event", name)
	}
}
