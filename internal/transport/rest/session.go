package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/pkg/ctxutil"
)

// sessionStore is the subset of session.Store used by handlers.
type sessionStore interface {
	Load(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
}

// sessions loads and saves the request's session, writing an error
// response itself when that fails.
type sessions struct {
	store sessionStore
	log   *slog.Logger
}

func (s sessions) load(w http.ResponseWriter, r *http.Request) (*domain.Session, bool) {
	id, ok := ctxutil.SessionIDFromCtx(r.Context())
	if !ok {
		s.log.ErrorContext(r.Context(), "no session id in context")
		writeError(w, http.StatusInternalServerError, codeInternal, "session unavailable")
		return nil, false
	}

	sess, err := s.store.Load(r.Context(), id)
	if err != nil {
		s.log.ErrorContext(r.Context(), "load session",
			slog.String("session_id", id.String()),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "session unavailable")
		return nil, false
	}
	return sess, true
}

func (s sessions) save(w http.ResponseWriter, r *http.Request, sess *domain.Session) bool {
	if err := s.store.Save(r.Context(), sess); err != nil {
		s.log.ErrorContext(r.Context(), "save session",
			slog.String("session_id", sess.ID.String()),
			slog.String("error", err.Error()),
		)
		writeError(w, http.StatusInternalServerError, codeInternal, "could not save progress")
		return false
	}
	return true
}
