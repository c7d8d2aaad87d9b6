// Package report carries structured store-failure events away from the
// workflows that hit them. Reporting is advisory: a Reporter never changes
// the outcome of the operation that failed, and the production path never
// blocks the caller.
package report

import (
	"context"
	"sync"
	"time"

	"scorehub/pkg/logger"
)

// Operations an event can describe.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// Event describes a store operation that failed: where it was aimed, what it
// was doing, and (for writes) the payload that was being written.
type Event struct {
	Path      string      `json:"path"`
	Operation string      `json:"operation"`
	Data      interface{} `json:"data,omitempty"`
	At        time.Time   `json:"at"`
}

// Reporter receives failure events. Implementations must be safe for
// concurrent use.
type Reporter interface {
	Report(ctx context.Context, ev Event)
}

// LogReporter writes events to the structured log at error level.
type LogReporter struct {
	log *logger.Logger
}

func NewLogReporter(log *logger.Logger) *LogReporter {
	return &LogReporter{log: log.WithComponent("report")}
}

func (r *LogReporter) Report(_ context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	r.log.WithFields(map[string]interface{}{
		"path":        ev.Path,
		"operation":   ev.Operation,
		"data":        ev.Data,
		"occurred_at": ev.At,
	}).Error("store operation failed")
}

// AsyncReporter decorates another Reporter with a buffered channel and a
// single publisher goroutine. Report hands the event off and returns
// immediately; when the buffer is full the event is dropped with a warning
// instead of blocking the workflow that is already handling a failure.
type AsyncReporter struct {
	inner Reporter
	log   *logger.Logger

	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

func NewAsyncReporter(inner Reporter, buffer int, log *logger.Logger) *AsyncReporter {
	if buffer <= 0 {
		buffer = 64
	}
	return &AsyncReporter{
		inner:  inner,
		log:    log.WithComponent("report"),
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
}

// Start launches the publisher goroutine.
func (r *AsyncReporter) Start() {
	go func() {
		defer close(r.done)
		for ev := range r.events {
			r.inner.Report(context.Background(), ev)
		}
	}()
}

// Report enqueues the event, stamping its time at enqueue so the published
// record reflects when the failure happened rather than when it drained.
func (r *AsyncReporter) Report(_ context.Context, ev Event) {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	select {
	case r.events <- ev:
	default:
		r.log.WithFields(map[string]interface{}{
			"path":      ev.Path,
			"operation": ev.Operation,
		}).Warn("report buffer full, dropping event")
	}
}

// Stop drains buffered events and waits for the publisher to finish.
func (r *AsyncReporter) Stop() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.events)
	r.mu.Unlock()

	<-r.done
}
