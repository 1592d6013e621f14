package domain

import (
	"time"

	"github.com/google/uuid"
)

// PointsPerCorrectAnswer is awarded for each correctly answered question.
const PointsPerCorrectAnswer = 10

// HistoryItem records one generated question and, once checked, its outcome.
type HistoryItem struct {
	QuestionID uuid.UUID  `json:"question_id"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty"`
	Question   string     `json:"question"`
	Answered   bool       `json:"answered"`
	Correct    bool       `json:"correct"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Session is the per-student tutoring state. It is loaded by the request
// handler, passed by pointer to the services that mutate it, and saved back.
type Session struct {
	ID              uuid.UUID          `json:"id"`
	QuizScore       int                `json:"quiz_score"`
	TotalQuestions  int                `json:"total_questions"`
	CorrectAnswers  int                `json:"correct_answers"`
	Topic           string             `json:"topic"`
	CurrentQuestion *QuizQuestion      `json:"current_question,omitempty"`
	History         []HistoryItem      `json:"history"`
	LastFeedback    *WorksheetFeedback `json:"last_feedback,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// NewSession returns an empty session with the given ID and default topic.
func NewSession(id uuid.UUID, topic string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Topic:     topic,
		History:   []HistoryItem{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Accuracy returns the percentage of checked answers that were correct.
func (s *Session) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100
}

// SetCurrentQuestion makes q the displayed question and appends it to history.
func (s *Session) SetCurrentQuestion(q QuizQuestion, now time.Time) {
	s.CurrentQuestion = &q
	s.Topic = q.Topic
	s.History = append(s.History, HistoryItem{
		QuestionID: q.ID,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Question:   q.Question,
		CreatedAt:  now,
	})
}

// RecordAnswer updates the counters for a checked answer and marks the
// matching history item. Returns the points awarded.
func (s *Session) RecordAnswer(questionID uuid.UUID, correct bool) int {
	s.TotalQuestions++
	points := 0
	if correct {
		s.CorrectAnswers++
		points = PointsPerCorrectAnswer
		s.QuizScore += points
	}
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i].QuestionID == questionID {
			s.History[i].Answered = true
			s.History[i].Correct = correct
			break
		}
	}
	return points
}

// Clone returns a deep copy of the session.
func (s *Session) Clone() *Session {
	c := *s
	c.History = append([]HistoryItem(nil), s.History...)
	if c.History == nil {
		c.History = []HistoryItem{}
	}
	if s.CurrentQuestion != nil {
		q := *s.CurrentQuestion
		q.Options = make(map[OptionKey]string, len(s.CurrentQuestion.Options))
		for k, v := range s.CurrentQuestion.Options {
			q.Options[k] = v
		}
		c.CurrentQuestion = &q
	}
	if s.LastFeedback != nil {
		f := *s.LastFeedback
		f.MissingKeywords = append([]string(nil), s.LastFeedback.MissingKeywords...)
		c.LastFeedback = &f
	}
	return &c
}
