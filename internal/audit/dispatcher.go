package audit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Lifecycle actions.
const (
	ActionCreated   = "turno.creado"
	ActionConfirmed = "turno.confirmado"
	ActionCancelled = "turno.cancelado"
)

type Event struct {
	Action  string
	TurnoID string
	At      time.Time

	// Metadata is a snapshot of the turno at the time of the event.
	Metadata any
}

// Sink consumes dispatched events. Errors are logged and never retried.
type Sink interface {
	Name() string
	Handle(ctx context.Context, ev Event) error
}

const (
	queueSize   = 100
	sinkTimeout = 10 * time.Second
)

// Dispatcher delivers events to its sinks on a single background worker.
// Dispatch never blocks; events are dropped when the queue is full.
type Dispatcher struct {
	sinks []Sink
	queue chan Event

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewDispatcher(sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		queue: make(chan Event, queueSize),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), sinkTimeout)
			if err := s.Handle(ctx, ev); err != nil {
				log.Error().
					Err(err).
					Str("sink", s.Name()).
					Str("action", ev.Action).
					Str("turno_id", ev.TurnoID).
					Msg("audit sink failed")
			}
			cancel()
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		log.Warn().
			Str("action", ev.Action).
			Str("turno_id", ev.TurnoID).
			Msg("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits until the queued ones are handled
// or ctx ends. Later Dispatch calls are dropped.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
