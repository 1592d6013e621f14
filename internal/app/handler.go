package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/projectmoneymatter/psle-science-tutor/internal/config"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
	"github.com/projectmoneymatter/psle-science-tutor/internal/service/marking"
	"github.com/projectmoneymatter/psle-science-tutor/internal/service/quiz"
	"github.com/projectmoneymatter/psle-science-tutor/internal/session"
	"github.com/projectmoneymatter/psle-science-tutor/internal/syllabus"
	"github.com/projectmoneymatter/psle-science-tutor/internal/transport/middleware"
	"github.com/projectmoneymatter/psle-science-tutor/internal/transport/rest"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the collaborators the HTTP API is built from. DB and Archive
// are optional.
type Deps struct {
	Model   llm.Model
	Store   session.Store
	Tokens  *session.TokenManager
	Catalog *syllabus.Catalog
	Archive marking.ImageArchive
	DB      Pinger
}

// NewHandler assembles services, handlers and the middleware chain. The
// returned func stops background work owned by the handler.
func NewHandler(cfg *config.Config, deps Deps, logger *slog.Logger) (http.Handler, func()) {
	quizSvc := quiz.NewService(logger, deps.Model)
	markingSvc := marking.NewService(logger, deps.Model, deps.Archive)

	handlers := rest.Handlers{
		Health:    rest.NewHealthHandler(deps.DB, Version, cfg.LLM.Provider+"/"+cfg.LLM.Model),
		Topics:    rest.NewTopicsHandler(deps.Catalog),
		Quiz:      rest.NewQuizHandler(quizSvc, deps.Store, logger),
		Worksheet: rest.NewWorksheetHandler(markingSvc, deps.Store, cfg.Upload.MaxBytes, logger),
		Dashboard: rest.NewDashboardHandler(deps.Store, logger),
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
	router := rest.NewRouter(handlers, limiter.Limit("model", cfg.RateLimit.ModelPerMinute))

	chain := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Session(deps.Tokens, cfg.Session, logger),
	)

	return chain(router), limiter.Stop
}
