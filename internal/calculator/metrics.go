package calculator

import (
	"context"
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OTel instruments — initialized once via InitMetrics().
var (
	eventsCounter metric.Int64Counter
	opsCounter    metric.Int64Counter
	opsHistogram  metric.Float64Histogram
	errorCounter  metric.Int64Counter
	resultGauge   metric.Float64Gauge
)

// Scrape-side collectors served on /metrics.
var (
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "calculator_sessions_active",
		Help: "Number of live calculator sessions.",
	})

	nonFiniteResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_non_finite_results_total",
		Help: "Computations that produced ±Inf or NaN.",
	}, []string{"operation"})
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	eventsCounter, err = meter.Int64Counter("calculator.events.total",
		metric.WithDescription("Total number of state events applied"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return fmt.Errorf("creating events counter: %w", err)
	}

	opsCounter, err = meter.Int64Counter("calculator.computations.total",
		metric.WithDescription("Total number of computations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of rejected calculator requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The finite result of the last computation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}

// recordEvent updates the instruments for one applied event. elapsed is in
// milliseconds.
func recordEvent(ctx context.Context, e Event, st State, elapsed float64) {
	eventsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", e.Kind())))

	c, ok := e.(Compute)
	if !ok {
		return
	}

	attrs := metric.WithAttributes(attribute.String("operation", c.Op.Name()))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)

	if math.IsInf(st.Result, 0) || math.IsNaN(st.Result) {
		nonFiniteResults.WithLabelValues(c.Op.Name()).Inc()
		return
	}
	resultGauge.Record(ctx, st.Result, attrs)
}
