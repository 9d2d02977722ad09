package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// findMetric finds a metric by name in the collected data.
func findMetric(rm *metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

// sumInt64 totals all data points of an int64 counter.
func sumInt64(t *testing.T, m *metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum data for %s", m.Name)

	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

// TestMetricsRecorder exercises the full recorder against an in-memory
// reader. A single test owns the lazily initialized instruments, since
// they bind to the provider active at first use.
func TestMetricsRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	originalProvider := otel.GetMeterProvider()
	otel.SetMeterProvider(provider)
	defer func() {
		otel.SetMeterProvider(originalProvider)
		if err := provider.Shutdown(context.Background()); err != nil {
			t.Logf("Error shutting down meter provider: %v", err)
		}
	}()

	recorder := NewMetricsRecorder()
	ctx := context.Background()

	recorder.RecordEnqueue(ctx, "order.created", 3)
	recorder.RecordEnqueue(ctx, "order.created", 4)
	recorder.RecordProcessed(ctx, "order.created", 25*time.Millisecond, false)
	recorder.RecordProcessed(ctx, "order.created", 10*time.Millisecond, true)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))

	enqueued := findMetric(&rm, "eventq.events.enqueued")
	require.NotNil(t, enqueued, "enqueued counter not found")
	assert.Equal(t, int64(2), sumInt64(t, enqueued))

	processed := findMetric(&rm, "eventq.events.processed")
	require.NotNil(t, processed, "processed counter not found")
	assert.Equal(t, int64(2), sumInt64(t, processed))

	failures := findMetric(&rm, "eventq.events.failures")
	require.NotNil(t, failures, "failures counter not found")
	assert.Equal(t, int64(1), sumInt64(t, failures))

	depth := findMetric(&rm, "eventq.queue.depth")
	require.NotNil(t, depth, "depth histogram not found")
	depthHist, ok := depth.Data.(metricdata.Histogram[int64])
	require.True(t, ok)
	var depthCount uint64
	for _, dp := range depthHist.DataPoints {
		depthCount += dp.Count
	}
	assert.Equal(t, uint64(2), depthCount)

	latency := findMetric(&rm, "eventq.processing.latency_ms")
	require.NotNil(t, latency, "latency histogram not found")
	latencyHist, ok := latency.Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var latencyCount uint64
	for _, dp := range latencyHist.DataPoints {
		latencyCount += dp.Count
	}
	assert.Equal(t, uint64(2), latencyCount)
}
