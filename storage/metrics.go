package storage

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the per-operation instruments of the storage service.
type Metrics struct {
	operations metric.Int64Counter
	duration   metric.Float64Histogram
}

// NewMetrics creates the storage instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	operations, err := meter.Int64Counter(
		"storage_operations_total",
		metric.WithDescription("Storage service operations by name and outcome"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"storage_operation_duration_seconds",
		metric.WithDescription("Storage service operation latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{operations: operations, duration: duration}, nil
}

// observe records one operation. Safe on a nil receiver and meant to run in
// a defer, so errp is read after the operation assigned its named return.
func (m *Metrics) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if errp != nil && *errp != nil {
		outcome = "error"
	}

	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("outcome", outcome),
	)
	m.operations.Add(ctx, 1, attrs)
	m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}
