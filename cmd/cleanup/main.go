// Command cleanup deletes persisted sessions that have been idle for longer
// than the configured retention period. It is intended to be invoked by an
// external cron job; the server can do the same in-process when
// database.purge_interval is set.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/projectmoneymatter/psle-science-tutor/internal/adapter/postgres"
	sessionrepo "github.com/projectmoneymatter/psle-science-tutor/internal/adapter/postgres/session"
	"github.com/projectmoneymatter/psle-science-tutor/internal/app"
	"github.com/projectmoneymatter/psle-science-tutor/internal/config"
	"github.com/projectmoneymatter/psle-science-tutor/internal/session"
	"github.com/projectmoneymatter/psle-science-tutor/internal/syllabus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if !cfg.Database.Enabled() {
		logger.Error("database.dsn is not set")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	store := session.NewPostgresStore(sessionrepo.New(pool), syllabus.MustLoad().DefaultTopic())

	now := time.Now().UTC()
	retention := cfg.Database.Retention()

	deleted, err := store.Purge(ctx, retention, now)
	if err != nil {
		logger.Error("purge failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", now.Add(-retention)),
		)
		os.Exit(1)
	}

	logger.Info("purge completed",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", now.Add(-retention)),
	)
}
