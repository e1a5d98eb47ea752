package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"
)

// NewRouter wires the middleware chain, the calculator routes backed by
// store, and the health and metrics endpoints.
func NewRouter(store *calculator.SessionStore) http.Handler {

	r := chi.NewRouter()

	r.Use(observability.RequestIDMiddleware)
	r.Use(observability.TracingMiddleware)
	r.Use(observability.LoggingMiddleware)
	r.Use(middleware.Recoverer)

	r.Get("/health", handlers.Health)

	r.Handle("/metrics", observability.PrometheusHandler())

	calculator.RegisterRoutes(r, store)

	return r
}
