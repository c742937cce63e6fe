package audit

import (
	"context"
	"log/slog"
	"sync"

	id "anamnesis/pkg/domain"
)

// Sink receives audit events.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// defaultPerUserLimit caps the events InMemoryStore keeps for one user.
const defaultPerUserLimit = 100

// InMemoryStore keeps the most recent events per user. Older events are
// dropped once a user reaches the limit.
type InMemoryStore struct {
	mu     sync.RWMutex
	limit  int
	events map[id.UserID][]Event
}

func NewInMemoryStore() *InMemoryStore {
	return NewInMemoryStoreWithLimit(defaultPerUserLimit)
}

func NewInMemoryStoreWithLimit(limit int) *InMemoryStore {
	if limit <= 0 {
		limit = defaultPerUserLimit
	}
	return &InMemoryStore{limit: limit, events: make(map[id.UserID][]Event)}
}

func (s *InMemoryStore) Append(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events := append(s.events[event.UserID], event)
	if over := len(events) - s.limit; over > 0 {
		events = append(events[:0:0], events[over:]...)
	}
	s.events[event.UserID] = events
	return nil
}

func (s *InMemoryStore) ListByUser(_ context.Context, userID id.UserID) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Event{}, s.events[userID]...), nil
}

// LogSink writes events to a structured logger. It backs deployments without
// a broker.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Append(ctx context.Context, event Event) error {
	s.logger.InfoContext(ctx, "audit event",
		"event_id", event.ID.String(),
		"action", event.Action,
		"user_id", event.UserID.String(),
		"reason", event.Reason,
		"request_id", event.RequestID,
		"platform", event.Platform,
	)
	return nil
}
