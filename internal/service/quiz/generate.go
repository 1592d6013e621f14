package quiz

import (
	"context"
	"errors"
	"log/slog"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

// Generate asks the model for one question on the input topic. Fields the
// model omits take their defaults. Errors are *domain.ValidationError,
// *domain.ExternalCallError or *domain.ExtractionError.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*domain.QuizQuestion, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	topic, difficulty := input.topic(), input.difficulty()
	prompt := llm.BuildQuizPrompt(topic, difficulty)

	raw, err := s.model.GenerateText(ctx, prompt)
	if err != nil {
		return nil, asExternalCallError("generate question", err)
	}

	rec, err := llm.Extract(raw)
	if err != nil {
		s.log.WarnContext(ctx, "question response not parseable",
			slog.String("topic", topic),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	q := domain.QuizQuestionFromRecord(rec)
	q.Topic = topic
	q.Difficulty = difficulty

	if !q.IsComplete() {
		s.log.WarnContext(ctx, "question is incomplete",
			slog.String("question_id", q.ID.String()),
			slog.Any("options", q.PresentKeys()),
			slog.String("correct_answer", string(q.CorrectAnswer)),
		)
	}

	return &q, nil
}

// GenerateQuestion generates a question and makes it the session's current
// question. The session is left untouched on error.
func (s *Service) GenerateQuestion(ctx context.Context, sess *domain.Session, input GenerateInput) (*domain.QuizQuestion, error) {
	q, err := s.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess.SetCurrentQuestion(*q, now)
	sess.UpdatedAt = now

	s.log.InfoContext(ctx, "question generated",
		slog.String("session_id", sess.ID.String()),
		slog.String("question_id", q.ID.String()),
		slog.String("topic", q.Topic),
		slog.String("difficulty", q.Difficulty.String()),
	)

	return q, nil
}

func asExternalCallError(op string, err error) error {
	var callErr *domain.ExternalCallError
	if errors.As(err, &callErr) {
		return err
	}
	return &domain.ExternalCallError{Op: op, Err: err}
}
