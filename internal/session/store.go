// Package session keeps per-student tutoring state between requests and
// issues the signed cookie tokens that identify it.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// Store loads and saves sessions. Load returns a fresh session for an
// unknown id; callers own the returned value until they Save it.
type Store interface {
	Load(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

// MemoryStore is a process-local Store. Sessions are lost on restart.
type MemoryStore struct {
	defaultTopic string

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore(defaultTopic string) *MemoryStore {
	return &MemoryStore{
		defaultTopic: defaultTopic,
		sessions:     make(map[uuid.UUID]*domain.Session),
	}
}

func (m *MemoryStore) Load(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[id]; ok {
		return s.Clone(), nil
	}
	return domain.NewSession(id, m.defaultTopic), nil
}

func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	if s == nil || s.ID == uuid.Nil {
		return errors.New("save session: missing id")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.ID] = s.Clone()
	return nil
}

// Len returns the number of stored sessions.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

var _ Store = (*MemoryStore)(nil)
