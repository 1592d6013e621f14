package quiz

import (
	"context"
	"log/slog"
	"time"
)

// model is the text-only half of llm.Model.
type model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Service generates multiple-choice questions and checks answers against
// the session's current question.
type Service struct {
	model model
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new quiz service.
func NewService(log *slog.Logger, model model) *Service {
	return &Service{
		model: model,
		log:   log.With("service", "quiz"),
		now:   func() time.Time { return time.Now().UTC() },
	}
}
