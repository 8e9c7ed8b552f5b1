package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/ignite/campaign-tracker/internal/domain"
)

// Memory is an in-memory Store with change notification. It backs tests and
// standalone runs where no DATABASE_URL is configured.
type Memory struct {
	mu       sync.RWMutex
	messages []domain.SentMessage
	events   []domain.DeliveryEvent
	watchers []chan struct{}
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// AppendMessage records one sent message and assigns a fresh id.
func (s *Memory) AppendMessage(_ context.Context, m *domain.SentMessage) error {
	s.mu.Lock()
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	s.messages = append(s.messages, *m)
	s.mu.Unlock()
	s.signal()
	return nil
}

// Messages returns a copy of the message log in insertion order.
func (s *Memory) Messages(_ context.Context) ([]domain.SentMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SentMessage, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// AppendEvent records one delivery event and assigns a fresh id.
func (s *Memory) AppendEvent(_ context.Context, e *domain.DeliveryEvent) error {
	s.mu.Lock()
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	s.events = append(s.events, *e)
	s.mu.Unlock()
	s.signal()
	return nil
}

// Events returns a copy of the event log in insertion order.
func (s *Memory) Events(_ context.Context) ([]domain.DeliveryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.DeliveryEvent, len(s.events))
	copy(out, s.events)
	return out, nil
}

// Watch returns a channel that receives a signal after each append. The
// channel is buffered and signals coalesce: a slow consumer sees at least one
// signal for any burst of appends.
func (s *Memory) Watch(ctx context.Context) (<-chan struct{}, error) {
	ch := make(chan struct{}, 1)
	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}()

	return ch, nil
}

func (s *Memory) signal() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.watchers {
		select {
		case w <- struct{}{}:
		default:
		}
	}
}
