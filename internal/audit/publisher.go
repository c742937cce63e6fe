package audit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"anamnesis/pkg/requestcontext"
)

// Publisher stamps events and fans them out to every sink.
type Publisher struct {
	sinks []Sink
	now   func() time.Time
}

func NewPublisher(sinks ...Sink) *Publisher {
	return &Publisher{sinks: sinks, now: time.Now}
}

// Emit fills ID, timestamp and request metadata, then appends to all sinks.
// Every sink is attempted; failures are joined.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = p.now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Platform == "" {
		event.Platform = requestcontext.ClientPlatform(ctx)
	}
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Append(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
