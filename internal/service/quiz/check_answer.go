package quiz

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// CheckAnswer grades an answer against the session's current question and
// updates the score. Repeated checks of the same question each count.
func (s *Service) CheckAnswer(ctx context.Context, sess *domain.Session, input AnswerInput) (*AnswerResult, error) {
	q := sess.CurrentQuestion
	if q == nil {
		return nil, fmt.Errorf("current question: %w", domain.ErrNotFound)
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if input.QuestionID != uuid.Nil && input.QuestionID != q.ID {
		return nil, domain.NewValidationError("question_id", "does not match the current question")
	}

	answer, _ := domain.ParseOptionKey(input.Answer)
	correct := answer == q.CorrectAnswer
	points := sess.RecordAnswer(q.ID, correct)
	sess.UpdatedAt = s.now()

	s.log.InfoContext(ctx, "answer checked",
		slog.String("session_id", sess.ID.String()),
		slog.String("question_id", q.ID.String()),
		slog.Bool("correct", correct),
		slog.Int("quiz_score", sess.QuizScore),
	)

	return &AnswerResult{
		QuestionID:     q.ID,
		Answer:         answer,
		Correct:        correct,
		CorrectAnswer:  q.CorrectAnswer,
		CorrectOption:  q.Options[q.CorrectAnswer],
		Explanation:    q.DisplayExplanation(),
		PointsAwarded:  points,
		QuizScore:      sess.QuizScore,
		TotalQuestions: sess.TotalQuestions,
		CorrectAnswers: sess.CorrectAnswers,
	}, nil
}
