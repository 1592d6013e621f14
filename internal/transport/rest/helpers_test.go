package rest

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/pkg/ctxutil"
)

//go:generate moq -out mocks_test.go -pkg rest . quizService markingService sessionStore

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mapStore backs a sessionStoreMock with a map so handlers can round-trip.
func mapStore(sessions ...*domain.Session) *sessionStoreMock {
	var mu sync.Mutex
	m := make(map[uuid.UUID]*domain.Session, len(sessions))
	for _, s := range sessions {
		m[s.ID] = s
	}
	return &sessionStoreMock{
		LoadFunc: func(_ context.Context, id uuid.UUID) (*domain.Session, error) {
			mu.Lock()
			defer mu.Unlock()
			if s, ok := m[id]; ok {
				return s.Clone(), nil
			}
			return domain.NewSession(id, "Plants"), nil
		},
		SaveFunc: func(_ context.Context, s *domain.Session) error {
			mu.Lock()
			defer mu.Unlock()
			m[s.ID] = s.Clone()
			return nil
		},
	}
}

func withSession(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(ctxutil.WithSessionID(r.Context(), id))
}

func jsonRequest(t *testing.T, method, target, body string, id uuid.UUID) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return withSession(req, id)
}
