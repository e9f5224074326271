package runtime

import (
	"chat-sim/domain"
	"chat-sim/domain/event"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const autoReplyResolution = 1000

var cannedReplies = []string{
	"Thanks for the message!",
	"I'll look into that right away.",
	"Got it, working on it now.",
	"Thanks for letting me know.",
	"I'll get back to you soon.",
}

// dispatch maps an emitted action to the events the server would send back.
func (s *Simulator) dispatch(action string, payload any) {
	switch action {
	case domain.ActionSendMessage:
		if message, ok := payloadAs[domain.OutgoingMessage](payload); ok {
			s.scheduler.Schedule(s.options.MessageDelay, func() { s.echoMessage(message) })
			return
		}
	case domain.ActionRequestUpdate:
		if update, ok := payloadAs[domain.RequestUpdate](payload); ok {
			s.scheduler.Schedule(s.options.RequestUpdateDelay, func() { s.echoRequestUpdate(update) })
			return
		}
	case domain.ActionSendNotification:
		if notification, ok := payloadAs[domain.OutgoingNotification](payload); ok {
			s.scheduler.Schedule(s.options.NotificationDelay, func() { s.echoNotification(notification) })
			return
		}
	default:
		s.log.Debug("Unknown action ignored", "action", action)
		return
	}
	s.log.Debug("Unexpected payload ignored", "action", action, "payload", fmt.Sprintf("%T", payload))
}

func payloadAs[T any](payload any) (T, bool) {
	switch p := payload.(type) {
	case T:
		return p, true
	case *T:
		if p != nil {
			return *p, true
		}
	}
	var zero T
	return zero, false
}

func (s *Simulator) echoMessage(message domain.OutgoingMessage) {
	current := s.currentSession()
	s.deliver(event.NewMessage, domain.Message{
		ID:   uuid.NewString(),
		Text: message.Text,
		Sender: domain.Sender{
			ID:   current.id,
			Name: s.directory.Name(current.id),
			Role: current.role,
		},
		Timestamp: s.scheduler.Now(),
		Type:      lo.Ternary(message.Type == "", domain.MessageGeneral, message.Type),
	})

	if !s.shouldAutoReply() {
		return
	}
	s.scheduler.Schedule(s.autoReplyDelay(), s.autoReply)
}

func (s *Simulator) shouldAutoReply() bool {
	threshold := int(math.Round(s.options.AutoReplyProbability * autoReplyResolution))
	return s.random.Intn(autoReplyResolution) < threshold
}

// autoReplyDelay is uniform in [AutoReplyMinDelay, AutoReplyMinDelay+AutoReplyJitter)
// at millisecond resolution.
func (s *Simulator) autoReplyDelay() time.Duration {
	jitter := int(s.options.AutoReplyJitter / time.Millisecond)
	if jitter <= 0 {
		return s.options.AutoReplyMinDelay
	}
	return s.options.AutoReplyMinDelay + time.Duration(s.random.Intn(jitter))*time.Millisecond
}

func (s *Simulator) autoReply() {
	counterpart := s.directory.Counterpart(s.currentSession().role)
	s.deliver(event.NewMessage, domain.Message{
		ID:        uuid.NewString(),
		Text:      cannedReplies[s.random.Intn(len(cannedReplies))],
		Sender:    counterpart.Sender(),
		Timestamp: s.scheduler.Now(),
		Type:      domain.MessageGeneral,
	})
}

func (s *Simulator) echoRequestUpdate(update domain.RequestUpdate) {
	s.deliver(event.RequestUpdate, update)

	counterpart := s.directory.Counterpart(s.currentSession().role)
	s.deliver(event.NewNotification, domain.Notification{
		Message: fmt.Sprintf("Request %s has been updated", update.RequestID),
		Type:    "request_update",
		From:    counterpart.Name,
	})
}

func (s *Simulator) echoNotification(notification domain.OutgoingNotification) {
	counterpart := s.directory.Counterpart(s.currentSession().role)
	now := s.scheduler.Now()
	s.deliver(event.NewNotification, domain.Notification{
		Message:    notification.Message,
		Type:       notification.Type,
		UserID:     notification.UserID,
		TargetRole: notification.TargetRole,
		From:       counterpart.Name,
		Timestamp:  &now,
	})
}
