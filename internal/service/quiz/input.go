package quiz

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

const maxTopicLength = 100

// GenerateInput holds the parameters for generating a question.
// An empty Difficulty means Medium.
type GenerateInput struct {
	Topic      string
	Difficulty string
}

// Validate checks all fields and collects all errors.
func (i GenerateInput) Validate() error {
	var errs []domain.FieldError

	topic := strings.TrimSpace(i.Topic)
	if topic == "" {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "required"})
	}
	if utf8.RuneCountInString(topic) > maxTopicLength {
		errs = append(errs, domain.FieldError{Field: "topic", Message: "max 100 characters"})
	}

	if d := strings.TrimSpace(i.Difficulty); d != "" {
		if _, ok := domain.LookupDifficulty(d); !ok {
			errs = append(errs, domain.FieldError{Field: "difficulty", Message: "must be Easy, Medium or Hard"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i GenerateInput) topic() string {
	return strings.TrimSpace(i.Topic)
}

func (i GenerateInput) difficulty() domain.Difficulty {
	return domain.ParseDifficulty(i.Difficulty)
}

// AnswerInput holds a student's answer to the current question.
// QuestionID is optional; when set it must match the current question.
type AnswerInput struct {
	QuestionID uuid.UUID
	Answer     string
}

// Validate checks all fields and collects all errors.
func (i AnswerInput) Validate() error {
	if strings.TrimSpace(i.Answer) == "" {
		return domain.NewValidationError("answer", "required")
	}
	if _, ok := domain.ParseOptionKey(i.Answer); !ok {
		return domain.NewValidationError("answer", "must be one of A, B, C, D")
	}
	return nil
}
