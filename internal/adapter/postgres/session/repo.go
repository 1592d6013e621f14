// Package session implements tutoring-session persistence using PostgreSQL.
// Scalar state lives in the sessions table with the current question and the
// last worksheet feedback as JSONB; the question history is kept in
// quiz_history, one row per generated question.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/projectmoneymatter/psle-science-tutor/internal/adapter/postgres"
	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

const (
	sessionsTable = "sessions"
	historyTable  = "quiz_history"
)

var (
	psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	sessionColumns = []string{
		"id", "quiz_score", "total_questions", "correct_answers", "topic",
		"current_question", "last_feedback", "created_at", "updated_at",
	}
	historyColumns = []string{
		"session_id", "position", "question_id", "topic", "difficulty",
		"question", "answered", "correct", "created_at",
	}
)

const upsertSuffix = `ON CONFLICT (id) DO UPDATE SET
	quiz_score = EXCLUDED.quiz_score,
	total_questions = EXCLUDED.total_questions,
	correct_answers = EXCLUDED.correct_answers,
	topic = EXCLUDED.topic,
	current_question = EXCLUDED.current_question,
	last_feedback = EXCLUDED.last_feedback,
	updated_at = EXCLUDED.updated_at`

// Repo provides session persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
	tx *postgres.TxManager
}

// New creates a new session repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db, tx: postgres.NewTxManager(db)}
}

type sessionRow struct {
	ID              uuid.UUID `db:"id"`
	QuizScore       int       `db:"quiz_score"`
	TotalQuestions  int       `db:"total_questions"`
	CorrectAnswers  int       `db:"correct_answers"`
	Topic           string    `db:"topic"`
	CurrentQuestion []byte    `db:"current_question"`
	LastFeedback    []byte    `db:"last_feedback"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type historyRow struct {
	QuestionID uuid.UUID `db:"question_id"`
	Topic      string    `db:"topic"`
	Difficulty string    `db:"difficulty"`
	Question   string    `db:"question"`
	Answered   bool      `db:"answered"`
	Correct    bool      `db:"correct"`
	CreatedAt  time.Time `db:"created_at"`
}

// Load returns the session with its history ordered by position.
// Returns domain.ErrNotFound if the session does not exist.
func (r *Repo) Load(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.Select(sessionColumns...).
		From(sessionsTable).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select session: %w", err)
	}

	var row sessionRow
	if err := pgxscan.Get(ctx, q, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, "session", id)
	}

	sess, err := toDomain(row)
	if err != nil {
		return nil, err
	}

	query, args, err = psql.Select(historyColumns[2:]...).
		From(historyTable).
		Where(squirrel.Eq{"session_id": id}).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select history: %w", err)
	}

	var rows []historyRow
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "quiz_history", id)
	}

	sess.History = make([]domain.HistoryItem, 0, len(rows))
	for _, h := range rows {
		sess.History = append(sess.History, domain.HistoryItem{
			QuestionID: h.QuestionID,
			Topic:      h.Topic,
			Difficulty: domain.Difficulty(h.Difficulty),
			Question:   h.Question,
			Answered:   h.Answered,
			Correct:    h.Correct,
			CreatedAt:  h.CreatedAt,
		})
	}

	return sess, nil
}

// historyBatchSize bounds one multi-row insert well below the 65535
// bind-parameter limit of the Postgres protocol.
const historyBatchSize = 1000

func historyInsert(s *domain.Session, start, end int) squirrel.InsertBuilder {
	insert := psql.Insert(historyTable).Columns(historyColumns...)
	for i := start; i < end; i++ {
		h := s.History[i]
		insert = insert.Values(
			s.ID, i, h.QuestionID, h.Topic, string(h.Difficulty),
			h.Question, h.Answered, h.Correct, h.CreatedAt.UTC(),
		)
	}
	return insert
}

// Save upserts the session and replaces its history in one transaction.
func (r *Repo) Save(ctx context.Context, s *domain.Session) error {
	upsert, err := upsertQuery(s)
	if err != nil {
		return err
	}

	return r.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		query, args, err := upsert.ToSql()
		if err != nil {
			return fmt.Errorf("build upsert session: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "session", s.ID)
		}

		query, args, err = psql.Delete(historyTable).Where(squirrel.Eq{"session_id": s.ID}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete history: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, "quiz_history", s.ID)
		}

		for start := 0; start < len(s.History); start += historyBatchSize {
			end := min(start+historyBatchSize, len(s.History))
			query, args, err := historyInsert(s, start, end).ToSql()
			if err != nil {
				return fmt.Errorf("build insert history: %w", err)
			}
			if _, err := q.Exec(ctx, query, args...); err != nil {
				return postgres.MapError(err, "quiz_history", s.ID)
			}
		}
		return nil
	})
}

// DeleteStale removes sessions not updated since before, together with
// their history, and returns the number of sessions removed.
func (r *Repo) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	query, args, err := psql.Delete(sessionsTable).
		Where(squirrel.Lt{"updated_at": before.UTC()}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete stale sessions: %w", err)
	}

	ct, err := q.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete stale sessions: %w", err)
	}
	return ct.RowsAffected(), nil
}

func upsertQuery(s *domain.Session) (squirrel.InsertBuilder, error) {
	current, err := marshalNullable(s.CurrentQuestion)
	if err != nil {
		return squirrel.InsertBuilder{}, fmt.Errorf("session %s: marshal current question: %w", s.ID, err)
	}
	feedback, err := marshalNullable(s.LastFeedback)
	if err != nil {
		return squirrel.InsertBuilder{}, fmt.Errorf("session %s: marshal last feedback: %w", s.ID, err)
	}

	return psql.Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			s.ID, s.QuizScore, s.TotalQuestions, s.CorrectAnswers, s.Topic,
			current, feedback, s.CreatedAt.UTC(), s.UpdatedAt.UTC(),
		).
		Suffix(upsertSuffix), nil
}

func toDomain(row sessionRow) (*domain.Session, error) {
	s := &domain.Session{
		ID:             row.ID,
		QuizScore:      row.QuizScore,
		TotalQuestions: row.TotalQuestions,
		CorrectAnswers: row.CorrectAnswers,
		Topic:          row.Topic,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}

	if len(row.CurrentQuestion) > 0 {
		var q domain.QuizQuestion
		if err := json.Unmarshal(row.CurrentQuestion, &q); err != nil {
			return nil, fmt.Errorf("session %s: unmarshal current question: %w", row.ID, err)
		}
		s.CurrentQuestion = &q
	}
	if len(row.LastFeedback) > 0 {
		var f domain.WorksheetFeedback
		if err := json.Unmarshal(row.LastFeedback, &f); err != nil {
			return nil, fmt.Errorf("session %s: unmarshal last feedback: %w", row.ID, err)
		}
		s.LastFeedback = &f
	}
	return s, nil
}

// marshalNullable returns nil (stored as NULL) for a nil pointer.
func marshalNullable[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
