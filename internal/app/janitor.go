package app

import (
	"context"
	"log/slog"
	"time"
)

type sessionPurger interface {
	Purge(ctx context.Context, retention time.Duration, now time.Time) (int64, error)
}

// janitor periodically deletes persisted sessions idle past the retention
// window. cmd/cleanup does the same once for cron-driven deployments.
type janitor struct {
	purger    sessionPurger
	retention time.Duration
	interval  time.Duration
	log       *slog.Logger
	now       func() time.Time
}

func newJanitor(purger sessionPurger, retention, interval time.Duration, logger *slog.Logger) *janitor {
	return &janitor{
		purger:    purger,
		retention: retention,
		interval:  interval,
		log:       logger.With("component", "janitor"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (j *janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.sweep(ctx)
		}
	}
}

func (j *janitor) sweep(ctx context.Context) {
	deleted, err := j.purger.Purge(ctx, j.retention, j.now())
	if err != nil {
		if ctx.Err() == nil {
			j.log.ErrorContext(ctx, "purge sessions", slog.String("error", err.Error()))
		}
		return
	}
	if deleted > 0 {
		j.log.InfoContext(ctx, "purged stale sessions", slog.Int64("deleted", deleted))
	}
}
