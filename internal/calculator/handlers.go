package calculator

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

func elapsedMillis(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}

// ---------------------------------------------------------------------------
// Handlers — one-shot operations
// ---------------------------------------------------------------------------

// Add handles POST /calculator/add
func Add(w http.ResponseWriter, r *http.Request) { handleOneShot(w, r, OpAdd) }

// Subtract handles POST /calculator/subtract
func Subtract(w http.ResponseWriter, r *http.Request) { handleOneShot(w, r, OpSubtract) }

// Multiply handles POST /calculator/multiply
func Multiply(w http.ResponseWriter, r *http.Request) { handleOneShot(w, r, OpMultiply) }

// Divide handles POST /calculator/divide. A zero divisor is not an error:
// the result is ±Inf or NaN.
func Divide(w http.ResponseWriter, r *http.Request) { handleOneShot(w, r, OpDivide) }

// handleOneShot runs a fresh State through SetFirstOperand, SetSecondOperand
// and Compute(op), then reports the result.
func handleOneShot(w http.ResponseWriter, r *http.Request, op Operator) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)
	opName := op.Name()

	ctx, span := tracer.Start(ctx, "calculator."+opName,
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, opName, "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(
		attribute.Float64("calculator.operand.a", float64(req.A)),
		attribute.Float64("calculator.operand.b", float64(req.B)),
	)

	start := time.Now()
	st := Replay(
		SetFirstOperand{Value: float64(req.A)},
		SetSecondOperand{Value: float64(req.B)},
	)
	compute := Compute{Op: op}
	st.Update(compute)
	elapsed := elapsedMillis(start)

	recordEvent(ctx, compute, st, elapsed)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", st.Result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(attribute.Float64("calculator.result", st.Result))
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", st.First),
		zap.Float64("b", st.Second),
		zap.Float64("result", st.Result),
		zap.String("request_id", requestID),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, CalcResponse{
		Operation: opName,
		A:         Number(st.First),
		B:         Number(st.Second),
		Result:    Number(st.Result),
		Display:   st.View(),
	})
}

// ---------------------------------------------------------------------------
// Handler — event replay (nested spans)
// ---------------------------------------------------------------------------

// ReplayEvents handles POST /calculator/replay — folds a list of events over a
// fresh State, creating a child span for every event.
func ReplayEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "calculator.replay",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("replay.events_count", len(req.Events)))

	var st State
	steps := make([]ReplayStep, 0, len(req.Events))

	for i, er := range req.Events {
		_, stepSpan := tracer.Start(ctx, fmt.Sprintf("calculator.replay.event.%d.%s", i, er.Type),
			trace.WithAttributes(
				attribute.Int("replay.event.index", i),
				attribute.String("replay.event.type", er.Type),
			),
		)

		e, err := er.Event()
		if err != nil {
			stepSpan.RecordError(err)
			stepSpan.SetStatus(codes.Error, err.Error())
			stepSpan.End()

			err = fmt.Errorf("event %d: %w", i, err)
			observability.RecordError(ctx, span, logger, errorCounter, "replay", err.Error(), err, http.StatusBadRequest, w)
			return
		}

		start := time.Now()
		st.Update(e)
		elapsed := elapsedMillis(start)

		recordEvent(ctx, e, st, elapsed)

		stepSpan.AddEvent("event.applied", trace.WithAttributes(
			attribute.Float64("first", st.First),
			attribute.Float64("second", st.Second),
			attribute.Float64("result", st.Result),
		))
		stepSpan.SetStatus(codes.Ok, "")
		stepSpan.End()

		logger.Debug("replay event applied",
			zap.Int("index", i),
			zap.String("kind", e.Kind()),
			zap.Float64("result", st.Result),
			zap.Float64("duration_ms", elapsed),
		)

		steps = append(steps, ReplayStep{Kind: e.Kind(), Display: st.View()})
	}

	span.AddEvent("replay.complete", trace.WithAttributes(
		attribute.Float64("final_result", st.Result),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("replay completed",
		zap.Int("events", len(req.Events)),
		zap.Float64("result", st.Result),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, ReplayResponse{
		Steps: steps,
		State: NewSnapshot("", st),
	})
}

// ---------------------------------------------------------------------------
// Handlers — sessions
// ---------------------------------------------------------------------------

// Sessions serves the per-session calculator endpoints.
type Sessions struct {
	store *SessionStore
}

func NewSessions(store *SessionStore) *Sessions {
	return &Sessions{store: store}
}

// Create handles POST /calculator/sessions
func (h *Sessions) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	id, st := h.store.Create()
	activeSessions.Inc()

	logger.Info("session created",
		zap.String("session_id", id),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusCreated, NewSnapshot(id, st))
}

// Get handles GET /calculator/sessions/{id}
func (h *Sessions) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.get",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	st, err := h.store.Get(id)
	if err != nil {
		h.fail(w, r.WithContext(ctx), span, "get", err)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, NewSnapshot(id, st))
}

// SetFirst handles PUT /calculator/sessions/{id}/first
func (h *Sessions) SetFirst(w http.ResponseWriter, r *http.Request) {
	h.setOperand(w, r, "first", func(v float64) Event { return SetFirstOperand{Value: v} })
}

// SetSecond handles PUT /calculator/sessions/{id}/second
func (h *Sessions) SetSecond(w http.ResponseWriter, r *http.Request) {
	h.setOperand(w, r, "second", func(v float64) Event { return SetSecondOperand{Value: v} })
}

func (h *Sessions) setOperand(w http.ResponseWriter, r *http.Request, field string, event func(float64) Event) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	opName := "set_" + field

	ctx, span := tracer.Start(ctx, "calculator.session."+opName,
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()
	r = r.WithContext(ctx)

	var req OperandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, r, span, opName, fmt.Errorf("invalid request body: %w", err))
		return
	}

	h.dispatch(w, r, span, id, event(ParseOperand(req.Text)))
}

// Compute handles POST /calculator/sessions/{id}/compute/{op}
func (h *Sessions) Compute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(ctx, "calculator.session.compute",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()
	r = r.WithContext(ctx)

	op, err := ParseOperator(operatorParam(r))
	if err != nil {
		h.fail(w, r, span, "compute", err)
		return
	}
	span.SetAttributes(attribute.String("calculator.operation", op.Name()))

	h.dispatch(w, r, span, id, Compute{Op: op})
}

// operatorParam returns the decoded {op} segment. chi matches on the raw
// path, so "%2B" and "%2F" arrive still escaped.
func operatorParam(r *http.Request) string {
	raw := chi.URLParam(r, "op")
	if op, err := url.PathUnescape(raw); err == nil {
		return op
	}
	return raw
}

// Delete handles DELETE /calculator/sessions/{id}
func (h *Sessions) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ctx, span := tracer.Start(r.Context(), "calculator.session.delete",
		trace.WithAttributes(attribute.String("session.id", id)),
	)
	defer span.End()

	if err := h.store.Delete(id); err != nil {
		h.fail(w, r.WithContext(ctx), span, "delete", err)
		return
	}
	activeSessions.Dec()

	observability.LoggerWithTrace(ctx).Info("session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Sessions) dispatch(w http.ResponseWriter, r *http.Request, span trace.Span, id string, e Event) {
	ctx := r.Context()

	start := time.Now()
	st, err := h.store.Dispatch(id, e)
	elapsed := elapsedMillis(start)
	if err != nil {
		h.fail(w, r, span, e.Kind(), err)
		return
	}

	recordEvent(ctx, e, st, elapsed)
	span.SetAttributes(attribute.Float64("calculator.result", st.Result))
	span.SetStatus(codes.Ok, "")

	observability.LoggerWithTrace(ctx).Info("session event applied",
		zap.String("session_id", id),
		zap.String("kind", e.Kind()),
		zap.Float64("first", st.First),
		zap.Float64("second", st.Second),
		zap.Float64("result", st.Result),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, NewSnapshot(id, st))
}

func (h *Sessions) fail(w http.ResponseWriter, r *http.Request, span trace.Span, opName string, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, ErrSessionNotFound) {
		status = http.StatusNotFound
	}

	ctx := r.Context()
	observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, opName, err.Error(), err, status, w)
}
