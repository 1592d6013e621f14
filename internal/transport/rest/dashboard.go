package rest

import (
	"log/slog"
	"net/http"

	"github.com/projectmoneymatter/psle-science-tutor/internal/service/dashboard"
)

// DashboardHandler serves the progress summary.
type DashboardHandler struct {
	sessions sessions
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(store sessionStore, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{sessions: sessions{store: store, log: logger.With("handler", "dashboard")}}
}

// Get handles GET /api/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Summarize(sess))
}
