package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLogger returns a debug-level JSON logger writing to a buffer.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, buf
}

// lastRecord decodes the last JSON log line in the buffer.
func lastRecord(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &record))
	return record
}

func TestEnrichLogger(t *testing.T) {
	logger, buf := newTestLogger()

	enriched := EnrichLogger(logger, "orders-worker")
	require.NotNil(t, enriched)

	enriched.Info("hello")
	record := lastRecord(t, buf)
	assert.Equal(t, "orders-worker", record["consumer"])
}

func TestEnrichLoggerNil(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "x"))
}

func TestLogEventFailed(t *testing.T) {
	logger, buf := newTestLogger()

	LogEventFailed(logger, "evt-1", "order.created", "422", "cannot process")

	record := lastRecord(t, buf)
	assert.Equal(t, "ERROR", record["level"])
	assert.Equal(t, "event processing failed", record["msg"])
	assert.Equal(t, "evt-1", record["event_id"])
	assert.Equal(t, "order.created", record["event_type"])
	assert.Equal(t, "422", record["code"])
	assert.Equal(t, "cannot process", record["error"])
}

func TestLogEventEnqueued(t *testing.T) {
	logger, buf := newTestLogger()

	LogEventEnqueued(logger, "evt-2", "order.created", 7)

	record := lastRecord(t, buf)
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "evt-2", record["event_id"])
	assert.Equal(t, float64(7), record["queue_depth"])
}

func TestLogConsumerStop(t *testing.T) {
	logger, buf := newTestLogger()

	LogConsumerStop(logger, 12, 3)

	record := lastRecord(t, buf)
	assert.Equal(t, "consumer stopped", record["msg"])
	assert.Equal(t, float64(12), record["processed"])
	assert.Equal(t, float64(3), record["failed"])
}

// TestNilLoggerSafe verifies every helper tolerates a nil logger.
func TestNilLoggerSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogConsumerStart(nil)
		LogConsumerStop(nil, 0, 0)
		LogEventEnqueued(nil, "", "", 0)
		LogEventProcessed(nil, "", "", 0)
		LogEventFailed(nil, "", "", "", "")
		LogJournalError(nil, "", errors.New("x"))
		LogQueueClosed(nil)
	})
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	elapsed := done()
	assert.GreaterOrEqual(t, elapsed, float64(0))
}
