package observability

import (
	"context"
	"net/http"

	"go-chi-calculator/internal/handlers"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises rejected-request handling: records the error on
// the span, increments the provided error counter, logs with trace context,
// and writes the JSON error response. A nil counter is skipped.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, msg string, err error, status int, w http.ResponseWriter) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)

	if counter != nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", opName)))
	}

	logger.Warn(msg,
		zap.String("operation", opName),
		zap.Int("status", status),
		zap.Error(err),
		zap.String("request_id", RequestIDFromContext(ctx)),
	)

	handlers.WriteError(w, status, msg)
}
