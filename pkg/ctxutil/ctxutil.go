package ctxutil

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type ctxKey string

const (
	sessionIDKey   ctxKey = "session_id"
	sessionSlotKey ctxKey = "session_slot"
	requestIDKey   ctxKey = "request_id"
)

// WithSessionID stores the tutoring session ID in the context and records it
// in the enclosing session slot, if any.
func WithSessionID(ctx context.Context, id uuid.UUID) context.Context {
	if slot, ok := ctx.Value(sessionSlotKey).(*sessionSlot); ok {
		slot.set(id)
	}
	return context.WithValue(ctx, sessionIDKey, id)
}

// SessionIDFromCtx extracts the session ID from the context.
// Returns uuid.Nil and false if the value is missing, nil UUID, or wrong type.
func SessionIDFromCtx(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(sessionIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false
	}
	return id, true
}

type sessionSlot struct {
	mu sync.Mutex
	id uuid.UUID
}

func (s *sessionSlot) set(id uuid.UUID) {
	s.mu.Lock()
	s.id = id
	s.mu.Unlock()
}

// WithSessionSlot lets an outer handler observe the session ID assigned by
// an inner one via SessionIDFromSlot.
func WithSessionSlot(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionSlotKey, &sessionSlot{})
}

// SessionIDFromSlot returns the session ID recorded in the context's slot.
func SessionIDFromSlot(ctx context.Context) (uuid.UUID, bool) {
	slot, ok := ctx.Value(sessionSlotKey).(*sessionSlot)
	if !ok {
		return uuid.Nil, false
	}
	slot.mu.Lock()
	defer slot.mu.Unlock()
	return slot.id, slot.id != uuid.Nil
}

// WithRequestID stores the request ID in the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromCtx extracts the request ID from the context.
// Returns an empty string if absent.
func RequestIDFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
