package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/service/quiz"
)

// quizService defines the minimal interface needed by QuizHandler.
type quizService interface {
	GenerateQuestion(ctx context.Context, sess *domain.Session, in quiz.GenerateInput) (*domain.QuizQuestion, error)
	CheckAnswer(ctx context.Context, sess *domain.Session, in quiz.AnswerInput) (*quiz.AnswerResult, error)
}

// QuizHandler serves the quiz endpoints.
type QuizHandler struct {
	svc      quizService
	sessions sessions
	log      *slog.Logger
}

// NewQuizHandler creates a QuizHandler.
func NewQuizHandler(svc quizService, store sessionStore, logger *slog.Logger) *QuizHandler {
	log := logger.With("handler", "quiz")
	return &QuizHandler{svc: svc, sessions: sessions{store: store, log: log}, log: log}
}

type generateRequest struct {
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

type answerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

// Generate handles POST /api/quiz/questions. An empty topic falls back to
// the session's topic.
func (h *QuizHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	sess, ok := h.sessions.load(w, r)
	if !ok {
		return
	}

	topic := req.Topic
	if strings.TrimSpace(topic) == "" {
		topic = sess.Topic
	}

	q, err := h.svc.GenerateQuestion(r.Context(), sess, quiz.GenerateInput{Topic: topic, Difficulty: req.Difficulty})
	if err != nil {
		writeServiceError(w, r, h.log, "question", err)
		return
	}

	if !h.sessions.save(w, r, sess) {
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

// Current handles GET /api/quiz/current.
func (h *QuizHandler) Current(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.load(w, r)
	if !ok {
		return
	}
	if sess.CurrentQuestion == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "no current question")
		return
	}
	writeJSON(w, http.StatusOK, sess.CurrentQuestion)
}

// Answer handles POST /api/quiz/answers.
func (h *QuizHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}

	var questionID uuid.UUID
	if req.QuestionID != "" {
		id, err := uuid.Parse(req.QuestionID)
		if err != nil {
			writeServiceError(w, r, h.log, "answer", domain.NewValidationError("question_id", "must be a UUID"))
			return
		}
		questionID = id
	}

	sess, ok := h.sessions.load(w, r)
	if !ok {
		return
	}

	result, err := h.svc.CheckAnswer(r.Context(), sess, quiz.AnswerInput{QuestionID: questionID, Answer: req.Answer})
	if err != nil {
		writeServiceError(w, r, h.log, "answer", err)
		return
	}

	if !h.sessions.save(w, r, sess) {
		return
	}
	writeJSON(w, http.StatusOK, result)
}

const maxJSONBody = 64 << 10

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
