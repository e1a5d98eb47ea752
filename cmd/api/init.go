package main

import (
	"context"
	"errors"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
)

// initTelemetry installs the tracing, metric and (optionally) log
// providers plus the calculator's instruments. The returned shutdown
// flushes every provider that was started.
func initTelemetry(ctx context.Context, cfg config) (func(context.Context) error, error) {
	var shutdowns []func(context.Context) error

	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	traceShutdown, err := observability.InitTracing(ctx)
	if err != nil {
		return nil, err
	}
	shutdowns = append(shutdowns, traceShutdown)

	metricShutdown, err := observability.InitMetrics(ctx)
	if err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}
	shutdowns = append(shutdowns, metricShutdown)

	if err := calculator.InitMetrics(); err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	if cfg.LogsExport {
		logShutdown, err := observability.InitLogging(ctx)
		if err != nil {
			return nil, errors.Join(err, shutdown(ctx))
		}
		shutdowns = append(shutdowns, logShutdown)
	}

	return shutdown, nil
}
