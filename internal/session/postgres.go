package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// repository is the persistence port implemented by the Postgres session repo.
type repository interface {
	Load(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	DeleteStale(ctx context.Context, before time.Time) (int64, error)
}

// PostgresStore is a Store backed by a database repository.
type PostgresStore struct {
	repo         repository
	defaultTopic string
}

// NewPostgresStore wraps repo as a Store.
func NewPostgresStore(repo repository, defaultTopic string) *PostgresStore {
	return &PostgresStore{repo: repo, defaultTopic: defaultTopic}
}

func (p *PostgresStore) Load(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	s, err := p.repo.Load(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NewSession(id, p.defaultTopic), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (p *PostgresStore) Save(ctx context.Context, s *domain.Session) error {
	if err := p.repo.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Purge deletes sessions idle for longer than retention.
func (p *PostgresStore) Purge(ctx context.Context, retention time.Duration, now time.Time) (int64, error) {
	n, err := p.repo.DeleteStale(ctx, now.Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return n, nil
}

var _ Store = (*PostgresStore)(nil)
