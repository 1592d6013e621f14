package quiz

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

var fixedNow = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

// newTestService creates a Service with the given mock and a fixed clock.
func newTestService(t *testing.T, mock *modelMock) *Service {
	t.Helper()
	return &Service{
		model: mock,
		log:   slog.Default(),
		now:   func() time.Time { return fixedNow },
	}
}

const completeQuestion = "```json\n" + `{
	"question": "Which process turns water into water vapour?",
	"options": {"A": "Condensation", "B": "Evaporation", "C": "Freezing", "D": "Melting"},
	"correct_answer": "B",
	"explanation": "Water gains heat and evaporates."
}` + "\n```"

func respond(text string, err error) *modelMock {
	return &modelMock{
		GenerateTextFunc: func(ctx context.Context, prompt string) (string, error) {
			return text, err
		},
	}
}

// ---------------------------------------------------------------------------
// Generate / GenerateQuestion
// ---------------------------------------------------------------------------

func TestGenerateQuestion_Success(t *testing.T) {
	t.Parallel()

	mock := respond(completeQuestion, nil)
	svc := newTestService(t, mock)
	sess := domain.NewSession(uuid.New(), "Cycles")

	q, err := svc.GenerateQuestion(context.Background(), sess, GenerateInput{Topic: " Energy ", Difficulty: "hard"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if q.Question != "Which process turns water into water vapour?" {
		t.Errorf("question: got %q", q.Question)
	}
	if q.CorrectAnswer != domain.OptionB {
		t.Errorf("correct answer: got %q, want B", q.CorrectAnswer)
	}
	if q.Topic != "Energy" || q.Difficulty != domain.DifficultyHard {
		t.Errorf("topic/difficulty: got %q/%q", q.Topic, q.Difficulty)
	}
	if !q.IsComplete() {
		t.Error("question should be complete")
	}

	calls := mock.GenerateTextCalls()
	if len(calls) != 1 {
		t.Fatalf("GenerateText calls: got %d, want 1", len(calls))
	}
	if !strings.Contains(calls[0].Prompt, "Topic: Energy") || !strings.Contains(calls[0].Prompt, "Difficulty Level: Hard") {
		t.Errorf("prompt does not carry topic and difficulty:\n%s", calls[0].Prompt)
	}

	if sess.CurrentQuestion == nil || sess.CurrentQuestion.ID != q.ID {
		t.Fatal("session current question not set")
	}
	if sess.Topic != "Energy" {
		t.Errorf("session topic: got %q", sess.Topic)
	}
	if len(sess.History) != 1 || sess.History[0].QuestionID != q.ID || sess.History[0].Answered {
		t.Errorf("history: got %+v", sess.History)
	}
	if !sess.UpdatedAt.Equal(fixedNow) {
		t.Errorf("updated_at: got %v", sess.UpdatedAt)
	}
}

func TestGenerate_DefaultDifficultyMedium(t *testing.T) {
	t.Parallel()

	mock := respond(completeQuestion, nil)
	svc := newTestService(t, mock)

	q, err := svc.Generate(context.Background(), GenerateInput{Topic: "Systems"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Difficulty != domain.DifficultyMedium {
		t.Errorf("difficulty: got %q, want Medium", q.Difficulty)
	}
	if !strings.Contains(mock.GenerateTextCalls()[0].Prompt, "Difficulty Level: Medium") {
		t.Error("prompt should use Medium")
	}
}

func TestGenerate_AcceptsTopicOutsideCatalog(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, respond(completeQuestion, nil))

	q, err := svc.Generate(context.Background(), GenerateInput{Topic: "Magnets"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Topic != "Magnets" {
		t.Errorf("topic: got %q", q.Topic)
	}
}

func TestGenerate_MissingFieldsTakeDefaults(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, respond(`{"question": "Only a question"}`, nil))

	q, err := svc.Generate(context.Background(), GenerateInput{Topic: "Cycles"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Question != "Only a question" {
		t.Errorf("question: got %q", q.Question)
	}
	if len(q.Options) != 0 {
		t.Errorf("options: got %v, want empty", q.Options)
	}
	if q.CorrectAnswer != "" {
		t.Errorf("correct answer: got %q, want empty", q.CorrectAnswer)
	}
	if q.DisplayExplanation() != "No explanation available." {
		t.Errorf("explanation default: got %q", q.DisplayExplanation())
	}
	if q.IsComplete() {
		t.Error("question should be incomplete")
	}
}

func TestGenerate_ExtractionError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, respond("I cannot help with that.", nil))
	sess := domain.NewSession(uuid.New(), "Cycles")

	_, err := svc.GenerateQuestion(context.Background(), sess, GenerateInput{Topic: "Cycles"})

	var extErr *domain.ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected *domain.ExtractionError, got %T (%v)", err, err)
	}
	if extErr.Raw != "I cannot help with that." {
		t.Errorf("raw: got %q", extErr.Raw)
	}
	if msg := domain.UserMessage("question", err); !strings.HasPrefix(msg, "Error parsing question response: ") {
		t.Errorf("user message: got %q", msg)
	}
	if sess.CurrentQuestion != nil || len(sess.History) != 0 {
		t.Error("session should be untouched on error")
	}
}

func TestGenerate_ExternalCallError(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, respond("", errors.New("network unreachable")))
	sess := domain.NewSession(uuid.New(), "Cycles")

	_, err := svc.GenerateQuestion(context.Background(), sess, GenerateInput{Topic: "Cycles"})

	if !errors.Is(err, domain.ErrExternalCall) {
		t.Fatalf("expected ErrExternalCall, got %v", err)
	}
	if msg := domain.UserMessage("question", err); msg != "Error generating question: network unreachable" {
		t.Errorf("user message: got %q", msg)
	}
	if sess.CurrentQuestion != nil {
		t.Error("session should be untouched on error")
	}
}

func TestGenerate_ExternalCallErrorPassesThrough(t *testing.T) {
	t.Parallel()

	orig := &domain.ExternalCallError{Op: "gemini: generate text", Err: errors.New("quota")}
	svc := newTestService(t, respond("", orig))

	_, err := svc.Generate(context.Background(), GenerateInput{Topic: "Cycles"})
	if err != orig {
		t.Errorf("expected provider error unchanged, got %v", err)
	}
}

func TestGenerate_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input GenerateInput
		field string
	}{
		{"empty topic", GenerateInput{Topic: "  "}, "topic"},
		{"long topic", GenerateInput{Topic: strings.Repeat("x", 101)}, "topic"},
		{"bad difficulty", GenerateInput{Topic: "Cycles", Difficulty: "Extreme"}, "difficulty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := respond(completeQuestion, nil)
			svc := newTestService(t, mock)

			_, err := svc.Generate(context.Background(), tt.input)

			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Errors[0].Field != tt.field {
				t.Errorf("field: got %q, want %q", ve.Errors[0].Field, tt.field)
			}
			if len(mock.GenerateTextCalls()) != 0 {
				t.Error("model should not be called on invalid input")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// CheckAnswer
// ---------------------------------------------------------------------------

func sessionWithQuestion(t *testing.T) *domain.Session {
	t.Helper()
	sess := domain.NewSession(uuid.New(), "Cycles")
	sess.SetCurrentQuestion(domain.QuizQuestion{
		ID:            uuid.New(),
		Topic:         "Cycles",
		Difficulty:    domain.DifficultyMedium,
		Question:      "Which process turns water into water vapour?",
		Options:       map[domain.OptionKey]string{"A": "Condensation", "B": "Evaporation", "C": "Freezing", "D": "Melting"},
		CorrectAnswer: domain.OptionB,
		Explanation:   "Water gains heat and evaporates.",
	}, fixedNow)
	return sess
}

func TestCheckAnswer_Correct(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &modelMock{})
	sess := sessionWithQuestion(t)

	res, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: " b "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.Correct || res.PointsAwarded != domain.PointsPerCorrectAnswer {
		t.Errorf("result: got %+v", res)
	}
	if res.CorrectOption != "Evaporation" {
		t.Errorf("correct option: got %q", res.CorrectOption)
	}
	if sess.QuizScore != 10 || sess.TotalQuestions != 1 || sess.CorrectAnswers != 1 {
		t.Errorf("session counters: score=%d total=%d correct=%d", sess.QuizScore, sess.TotalQuestions, sess.CorrectAnswers)
	}
	if !sess.History[0].Answered || !sess.History[0].Correct {
		t.Errorf("history not updated: %+v", sess.History[0])
	}
}

func TestCheckAnswer_LowercaseKeysFromModel(t *testing.T) {
	t.Parallel()

	const lowercase = `{
		"question": "Which part of a plant absorbs water?",
		"options": {"a": "Roots", "b": "Leaves", "c": "Flowers", "d": "Fruits"},
		"correct_answer": "a",
		"explanation": "Roots take in water from the soil."
	}`
	svc := newTestService(t, respond(lowercase, nil))
	sess := domain.NewSession(uuid.New(), "Systems")

	q, err := svc.GenerateQuestion(context.Background(), sess, GenerateInput{Topic: "Systems"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []domain.OptionKey{domain.OptionA, domain.OptionB, domain.OptionC, domain.OptionD}
	if got := q.PresentKeys(); !slices.Equal(got, want) {
		t.Errorf("present keys: got %v, want %v", got, want)
	}

	res, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: "a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Correct || res.PointsAwarded != domain.PointsPerCorrectAnswer {
		t.Errorf("result: got %+v", res)
	}
	if res.CorrectAnswer != domain.OptionA || res.CorrectOption != "Roots" {
		t.Errorf("correct answer: got %q %q", res.CorrectAnswer, res.CorrectOption)
	}
	if sess.QuizScore != domain.PointsPerCorrectAnswer {
		t.Errorf("score: got %d", sess.QuizScore)
	}
}

func TestCheckAnswer_Wrong(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &modelMock{})
	sess := sessionWithQuestion(t)

	res, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: "A", QuestionID: sess.CurrentQuestion.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Correct || res.PointsAwarded != 0 {
		t.Errorf("result: got %+v", res)
	}
	if res.CorrectAnswer != domain.OptionB || res.Explanation != "Water gains heat and evaporates." {
		t.Errorf("result: got %+v", res)
	}
	if sess.QuizScore != 0 || sess.TotalQuestions != 1 || sess.CorrectAnswers != 0 {
		t.Errorf("session counters: score=%d total=%d correct=%d", sess.QuizScore, sess.TotalQuestions, sess.CorrectAnswers)
	}
}

func TestCheckAnswer_RepeatedChecksCount(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &modelMock{})
	sess := sessionWithQuestion(t)

	for range 2 {
		if _, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: "B"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if sess.QuizScore != 20 || sess.TotalQuestions != 2 {
		t.Errorf("score=%d total=%d, want 20 and 2", sess.QuizScore, sess.TotalQuestions)
	}
}

func TestCheckAnswer_NoCurrentQuestion(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &modelMock{})
	sess := domain.NewSession(uuid.New(), "Cycles")

	_, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: "A"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckAnswer_InvalidAnswer(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &modelMock{})
	sess := sessionWithQuestion(t)

	for _, answer := range []string{"", "E", "AB"} {
		_, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: answer})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("answer %q: expected validation error, got %v", answer, err)
		}
	}
	if sess.TotalQuestions != 0 {
		t.Error("invalid answers should not be counted")
	}
}

func TestCheckAnswer_StaleQuestionID(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &modelMock{})
	sess := sessionWithQuestion(t)

	_, err := svc.CheckAnswer(context.Background(), sess, AnswerInput{Answer: "B", QuestionID: uuid.New()})

	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Field != "question_id" {
		t.Fatalf("expected question_id validation error, got %v", err)
	}
}
