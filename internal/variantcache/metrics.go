package variantcache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/alexisbeaulieu97/barbar/internal/variantcache"

// lookup results recorded on the lookups counter.
const (
	resultMemory = "memory"
	resultDisk   = "disk"
	resultRender = "render"
	resultError  = "error"
)

type metrics struct {
	lookups  metric.Int64Counter
	corrupt  metric.Int64Counter
	evicted  metric.Int64Counter
	duration metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	if meter == nil {
		meter = otel.Meter(instrumentationName)
	}

	m := &metrics{}
	var err error

	m.lookups, err = meter.Int64Counter("barbar.variant.lookups",
		metric.WithDescription("Icon lookups by the tier that served them"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	m.corrupt, err = meter.Int64Counter("barbar.variant.corrupt_artifacts",
		metric.WithDescription("Disk artifacts that failed to decode and were deleted"),
		metric.WithUnit("{artifact}"),
	)
	if err != nil {
		return nil, err
	}

	m.evicted, err = meter.Int64Counter("barbar.variant.evictions",
		metric.WithDescription("Rendered icons evicted from the in-memory cache"),
		metric.WithUnit("{icon}"),
	)
	if err != nil {
		return nil, err
	}

	m.duration, err = meter.Float64Histogram("barbar.variant.render.duration",
		metric.WithDescription("Time spent rendering a variant on a full miss"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (m *metrics) lookup(result string) {
	m.lookups.Add(context.Background(), 1, metric.WithAttributes(attribute.String("result", result)))
}

func (m *metrics) corruptArtifact() {
	m.corrupt.Add(context.Background(), 1)
}

func (m *metrics) eviction() {
	m.evicted.Add(context.Background(), 1)
}

func (m *metrics) rendered(seconds float64) {
	m.duration.Record(context.Background(), seconds)
}
