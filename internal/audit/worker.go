package audit

import (
	"context"
	"errors"
	"log/slog"
)

// ErrBufferFull is returned when the worker inbox cannot take more events.
var ErrBufferFull = errors.New("audit buffer full")

// Worker decouples a slow sink from request handling. Append enqueues and Run
// drains the inbox into the sink.
type Worker struct {
	sink   Sink
	inbox  chan Event
	logger *slog.Logger
}

func NewWorker(sink Sink, buffer int, logger *slog.Logger) *Worker {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{sink: sink, inbox: make(chan Event, buffer), logger: logger}
}

// Append enqueues without blocking.
func (w *Worker) Append(_ context.Context, event Event) error {
	select {
	case w.inbox <- event:
		return nil
	default:
		return ErrBufferFull
	}
}

// Run delivers events until ctx is cancelled, then flushes what is buffered.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.deliver(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.deliver(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) deliver(ctx context.Context, event Event) {
	if err := w.sink.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "audit delivery failed",
			"action", event.Action,
			"user_id", event.UserID.String(),
			"error", err,
		)
	}
}
