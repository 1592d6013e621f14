package rest

import "net/http"

// Handlers groups every REST handler mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Topics    *TopicsHandler
	Quiz      *QuizHandler
	Worksheet *WorksheetHandler
	Dashboard *DashboardHandler
}

// NewRouter mounts the REST routes. limitModel wraps the routes that call
// the generative model.
func NewRouter(h Handlers, limitModel func(http.Handler) http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("GET /api/topics", h.Topics.List)

	mux.Handle("POST /api/quiz/questions", limitModel(http.HandlerFunc(h.Quiz.Generate)))
	mux.HandleFunc("GET /api/quiz/current", h.Quiz.Current)
	mux.HandleFunc("POST /api/quiz/answers", h.Quiz.Answer)

	mux.Handle("POST /api/worksheets/mark", limitModel(http.HandlerFunc(h.Worksheet.Mark)))
	mux.HandleFunc("GET /api/worksheets/feedback", h.Worksheet.Feedback)

	mux.HandleFunc("GET /api/dashboard", h.Dashboard.Get)

	return mux
}
