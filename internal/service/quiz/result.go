package quiz

import (
	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// AnswerResult is the outcome of checking one answer.
type AnswerResult struct {
	QuestionID     uuid.UUID        `json:"question_id"`
	Answer         domain.OptionKey `json:"answer"`
	Correct        bool             `json:"correct"`
	CorrectAnswer  domain.OptionKey `json:"correct_answer"`
	CorrectOption  string           `json:"correct_option"`
	Explanation    string           `json:"explanation"`
	PointsAwarded  int              `json:"points_awarded"`
	QuizScore      int              `json:"quiz_score"`
	TotalQuestions int              `json:"total_questions"`
	CorrectAnswers int              `json:"correct_answers"`
}
