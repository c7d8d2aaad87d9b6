package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"scorehub/pkg/logger"
)

func observedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.Logger{Logger: zap.New(core)}, logs
}

func TestLogReporter_Report(t *testing.T) {
	log, logs := observedLogger()
	reporter := NewLogReporter(log)

	reporter.Report(context.Background(), Event{
		Path:      "users/user-1",
		Operation: OpWrite,
		Data:      map[string]string{"display_name": "Fan abcde"},
	})

	entries := logs.FilterMessage("store operation failed").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "users/user-1", fields["path"])
	assert.Equal(t, "write", fields["operation"])
	assert.NotNil(t, fields["data"])
}

func TestAsyncReporter_DeliversToInner(t *testing.T) {
	capture := NewCapture()
	log, _ := observedLogger()

	reporter := NewAsyncReporter(capture, 16, log)
	reporter.Start()

	for i := 0; i < 5; i++ {
		reporter.Report(context.Background(), Event{Path: "users/user-1", Operation: OpWrite})
	}
	reporter.Stop()

	events := capture.Events()
	require.Len(t, events, 5)
	for _, ev := range events {
		assert.Equal(t, "users/user-1", ev.Path)
		assert.Equal(t, OpWrite, ev.Operation)
		assert.False(t, ev.At.IsZero(), "event should be stamped at enqueue")
	}
}

func TestAsyncReporter_FullBufferDropsWithoutBlocking(t *testing.T) {
	capture := NewCapture()
	log, logs := observedLogger()

	// No Start: nothing consumes, so the buffer fills immediately.
	reporter := NewAsyncReporter(capture, 1, log)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 3; i++ {
			reporter.Report(context.Background(), Event{Path: "presence/user-1", Operation: OpWrite})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Report blocked on a full buffer")
	}

	assert.NotEmpty(t, logs.FilterMessage("report buffer full, dropping event").All())

	// Draining afterwards delivers only what fit in the buffer.
	reporter.Start()
	reporter.Stop()
	assert.Len(t, capture.Events(), 1)
}

func TestAsyncReporter_ReportAfterStop(t *testing.T) {
	capture := NewCapture()
	log, _ := observedLogger()

	reporter := NewAsyncReporter(capture, 4, log)
	reporter.Start()
	reporter.Stop()

	// Must be a quiet no-op, not a panic on a closed channel.
	reporter.Report(context.Background(), Event{Path: "users/user-1", Operation: OpRead})
	assert.Empty(t, capture.Events())

	// Stop twice is safe too.
	reporter.Stop()
}
