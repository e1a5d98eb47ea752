package observability

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	RequestIDKey    contextKey = "request_id"
	RequestIDHeader            = "X-Request-ID"
)

func NewRequestID() string {
	return uuid.New().String()
}

// RequestIDFromHeader returns a caller-supplied ID in canonical form when it
// is a valid UUID, and a fresh ID otherwise.
func RequestIDFromHeader(v string) string {
	id, err := uuid.Parse(v)
	if err != nil {
		return NewRequestID()
	}
	return id.String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
