package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/config"
	"github.com/projectmoneymatter/psle-science-tutor/pkg/ctxutil"
)

type sessionTokens interface {
	Issue(sessionID uuid.UUID) (string, error)
	Validate(token string) (uuid.UUID, error)
	TTL() time.Duration
}

// Session identifies the tutoring session from a signed cookie. A missing,
// expired or tampered cookie starts a new session and sets a fresh cookie.
func Session(tokens sessionTokens, cfg config.SessionConfig, logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(cfg.CookieName); err == nil {
				if id, err := tokens.Validate(c.Value); err == nil {
					next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), id)))
					return
				}
				logger.DebugContext(r.Context(), "session cookie rejected",
					slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
				)
			}

			id := uuid.New()
			token, err := tokens.Issue(id)
			if err != nil {
				logger.ErrorContext(r.Context(), "issue session token", slog.String("error", err.Error()))
				writeError(w, http.StatusInternalServerError, "internal", "could not start session")
				return
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(tokens.TTL().Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			next.ServeHTTP(w, r.WithContext(ctxutil.WithSessionID(r.Context(), id)))
		})
	}
}
