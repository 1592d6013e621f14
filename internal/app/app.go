package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/projectmoneymatter/psle-science-tutor/internal/adapter/objectstore"
	"github.com/projectmoneymatter/psle-science-tutor/internal/adapter/postgres"
	sessionrepo "github.com/projectmoneymatter/psle-science-tutor/internal/adapter/postgres/session"
	"github.com/projectmoneymatter/psle-science-tutor/internal/config"
	"github.com/projectmoneymatter/psle-science-tutor/internal/provider"
	"github.com/projectmoneymatter/psle-science-tutor/internal/service/marking"
	"github.com/projectmoneymatter/psle-science-tutor/internal/session"
	"github.com/projectmoneymatter/psle-science-tutor/internal/syllabus"
)

// Run is the application entry point. It loads configuration, connects the
// optional database and archive, and serves the HTTP API until ctx is
// cancelled or SIGINT/SIGTERM arrives.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("llm_provider", cfg.LLM.Provider),
		slog.String("llm_model", cfg.LLM.Model),
		slog.String("session_store", cfg.Session.Store),
	)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := syllabus.Load()
	if err != nil {
		return fmt.Errorf("load syllabus: %w", err)
	}

	var pool *pgxpool.Pool
	if cfg.Database.Enabled() {
		pool, err = openDatabase(ctx, cfg.Database, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	var (
		store  session.Store
		purger *session.PostgresStore
	)
	switch cfg.Session.Store {
	case config.StorePostgres:
		purger = session.NewPostgresStore(sessionrepo.New(pool), catalog.DefaultTopic())
		store = purger
	default:
		store = session.NewMemoryStore(catalog.DefaultTopic())
	}

	var archive marking.ImageArchive
	if cfg.Storage.Enabled() {
		a, err := objectstore.New(cfg.Storage, logger)
		if err != nil {
			return err
		}
		archive = a
		logger.Info("worksheet archive enabled", slog.String("bucket", cfg.Storage.Bucket))
	}

	model, err := provider.New(cfg.LLM, UserAgent(), logger)
	if err != nil {
		return err
	}

	deps := Deps{
		Model:   model,
		Store:   store,
		Tokens:  session.NewTokenManager(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.TTL),
		Catalog: catalog,
		Archive: archive,
	}
	if pool != nil {
		deps.DB = pool
	}

	handler, closeHandler := NewHandler(cfg, deps, logger)
	defer closeHandler()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if purger != nil && cfg.Database.PurgeInterval > 0 {
		j := newJanitor(purger, cfg.Database.Retention(), cfg.Database.PurgeInterval, logger)
		g.Go(func() error {
			j.run(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		applied, err := postgres.MigrateDSN(ctx, cfg.DSN)
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("database migrated", slog.Int("applied", applied))
	}

	logger.Info("database connected",
		slog.Int("max_conns", int(cfg.MaxConns)),
	)
	return pool, nil
}
