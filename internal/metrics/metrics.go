// Package metrics instruments the DP traversal driver with
// OpenTelemetry counters/histograms. No SDK or exporter is wired here
// (none is a dependency of this module) — calling otel.Meter without a
// registered MeterProvider yields the no-op implementation, so these
// calls are a real instrumentation point an embedding application can
// light up later by registering a provider, at zero cost until then.
package metrics

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	meter           = otel.Meter("github.com/z0vix/blockdp")
	boardsFinalized metric.Int64Counter
	heightSeconds   metric.Float64Histogram
)

func init() {
	var err error
	boardsFinalized, err = meter.Int64Counter(
		"blockdp.boards_finalized",
		metric.WithDescription("boards finalized by the DP traversal driver"),
	)
	if err != nil {
		log.Printf("metrics: boards_finalized counter: %v", err)
	}

	heightSeconds, err = meter.Float64Histogram(
		"blockdp.height_duration_seconds",
		metric.WithDescription("wall-clock time spent finalizing one population height"),
		metric.WithUnit("s"),
	)
	if err != nil {
		log.Printf("metrics: height_duration_seconds histogram: %v", err)
	}
}

// RecordHeight reports that `boards` entries were finalized at
// population height `height`, taking `elapsed` of wall-clock time.
func RecordHeight(height int, boards int, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.Int("height", height))
	boardsFinalized.Add(context.Background(), int64(boards), attrs)
	heightSeconds.Record(context.Background(), elapsed.Seconds(), attrs)
}
