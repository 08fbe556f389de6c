package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics constructor receives a nil meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// Placement outcomes used as the outcome attribute
const (
	OutcomePlaced   = "placed"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// RationingMetrics records order placement activity against the daily caps.
type RationingMetrics struct {
	ordersPlaced      *Counter
	itemsSold         *Counter
	rejections        *Counter
	placementDuration *Histogram
	lockWait          *Histogram
}

// NewRationingMetrics creates the rationing instruments on meter.
func NewRationingMetrics(meter metric.Meter) (*RationingMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   RationingMetrics
		err error
	)

	m.ordersPlaced, err = NewCounter(meter,
		"shop_orders_placed_total",
		"Total number of orders committed",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	m.itemsSold, err = NewCounter(meter,
		"shop_order_items_sold_total",
		"Total number of units counted against the daily caps",
		"{units}",
	)
	if err != nil {
		return nil, err
	}

	m.rejections, err = NewCounter(meter,
		"shop_order_rejections_total",
		"Total number of order placements rejected, by kind",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	m.placementDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "shop_order_placement_duration_seconds",
		Description: "Duration of order placement, including lock wait",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	m.lockWait, err = NewHistogram(meter, HistogramOpts{
		Name:        "shop_sale_day_lock_wait_seconds",
		Description: "Time spent waiting for the sale day lock",
		Unit:        "s",
		Boundaries:  LockWaitBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordPlaced records a committed order and its units.
func (m *RationingMetrics) RecordPlaced(ctx context.Context, region string, items int) {
	m.ordersPlaced.Inc(ctx, AttrRegion.String(region))
	m.itemsSold.Add(ctx, int64(items), AttrRegion.String(region))
}

// RecordRejected records a placement refused with the given rejection kind.
func (m *RationingMetrics) RecordRejected(ctx context.Context, kind, region string) {
	m.rejections.Inc(ctx, AttrRejectionKind.String(kind), AttrRegion.String(region))
}

// RecordPlacementDuration records how long a placement took for outcome.
func (m *RationingMetrics) RecordPlacementDuration(ctx context.Context, d time.Duration, outcome string) {
	m.placementDuration.RecordDuration(ctx, d, AttrOutcome.String(outcome))
}

// RecordLockWait records the wait for the sale day lock.
func (m *RationingMetrics) RecordLockWait(ctx context.Context, d time.Duration) {
	m.lockWait.RecordDuration(ctx, d)
}
