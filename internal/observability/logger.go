package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// InitLogger replaces Logger with a production JSON logger writing at level
// ("debug", "info", "warn", "error"). An empty level means info.
func InitLogger(level string) error {
	cfg := zap.NewProductionConfig()

	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("parse log level: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}

	Logger = l
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx.
//
// ctx itself is attached as a zap.Any("context", ctx) field. The otelzap
// core recognises a field holding a context.Context and emits the record
// with it, so exported OTLP log records carry the native TraceID/SpanID
// and logs can be joined to traces in the backend. The string fields keep
// stdout JSON greppable.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)

	if !span.IsValid() {
		return Logger
	}

	return Logger.With(
		zap.Any("context", ctx),
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
