//go:build integration

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedSession inserts an empty session row updated at updatedAt and returns its id.
func SeedSession(t *testing.T, pool *pgxpool.Pool, updatedAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(),
		`INSERT INTO sessions (id, topic, created_at, updated_at) VALUES ($1, $2, $3, $3)`,
		id, "Cycles", updatedAt.UTC().Truncate(time.Microsecond),
	)
	if err != nil {
		t.Fatalf("SeedSession: %v", err)
	}
	return id
}

// SessionExists reports whether a session row with id exists.
func SessionExists(t *testing.T, pool *pgxpool.Pool, id uuid.UUID) bool {
	t.Helper()

	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("SessionExists: %v", err)
	}
	return exists
}
