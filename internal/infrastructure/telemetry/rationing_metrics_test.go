package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	byName := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			byName[m.Name] = m
		}
	}
	return byName
}

func sumFor(t *testing.T, m metricdata.Metrics, attr attribute.KeyValue) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(attr.Key); ok && v.Emit() == attr.Value.Emit() {
			total += dp.Value
		}
	}
	return total
}

func TestNewRationingMetrics(t *testing.T) {
	t.Run("nil meter", func(t *testing.T) {
		_, err := NewRationingMetrics(nil)
		assert.ErrorIs(t, err, ErrMeterNil)
	})

	t.Run("noop meter", func(t *testing.T) {
		m, err := NewRationingMetrics(noop.NewMeterProvider().Meter("test"))
		require.NoError(t, err)

		assert.NotPanics(t, func() {
			m.RecordPlaced(context.Background(), "EU", 2)
			m.RecordRejected(context.Background(), "GlobalLimitExceeded", "EU")
		})
	})
}

func TestRationingMetrics_Records(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewRationingMetrics(provider.Meter("test"))
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordPlaced(ctx, "EU", 3)
	m.RecordPlaced(ctx, "EU", 1)
	m.RecordPlaced(ctx, "US", 2)
	m.RecordRejected(ctx, "RegionLimitExceeded", "EU")
	m.RecordPlacementDuration(ctx, 30*time.Millisecond, OutcomePlaced)
	m.RecordLockWait(ctx, time.Millisecond)

	metrics := collect(t, reader)

	assert.Equal(t, int64(2), sumFor(t, metrics["shop_orders_placed_total"], AttrRegion.String("EU")))
	assert.Equal(t, int64(4), sumFor(t, metrics["shop_order_items_sold_total"], AttrRegion.String("EU")))
	assert.Equal(t, int64(2), sumFor(t, metrics["shop_order_items_sold_total"], AttrRegion.String("US")))
	assert.Equal(t, int64(1), sumFor(t, metrics["shop_order_rejections_total"], AttrRejectionKind.String("RegionLimitExceeded")))

	hist, ok := metrics["shop_order_placement_duration_seconds"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)

	assert.Contains(t, metrics, "shop_sale_day_lock_wait_seconds")
}
