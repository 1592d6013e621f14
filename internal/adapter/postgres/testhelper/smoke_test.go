//go:build integration

package testhelper

import (
	"testing"
	"time"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	id := SeedSession(t, pool, time.Now())

	if !SessionExists(t, pool, id) {
		t.Fatalf("expected session %s in DB", id)
	}
}
