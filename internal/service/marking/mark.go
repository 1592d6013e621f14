package marking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

const parseFailurePrefix = "Could not parse AI response. Raw feedback: "

// MarkWorksheet sends the fixed rubric and the image to the model and
// converts the reply into feedback. Errors are *domain.ExternalCallError
// or *domain.ExtractionError.
func (s *Service) MarkWorksheet(ctx context.Context, img llm.Image) (*domain.WorksheetFeedback, error) {
	raw, err := s.model.GenerateWithImage(ctx, llm.BuildMarkingPrompt(), img)
	if err != nil {
		var callErr *domain.ExternalCallError
		if errors.As(err, &callErr) {
			return nil, err
		}
		return nil, &domain.ExternalCallError{Op: "mark worksheet", Err: err}
	}

	rec, err := llm.Extract(raw)
	if err != nil {
		return nil, err
	}

	fb := domain.WorksheetFeedbackFromRecord(rec)
	return &fb, nil
}

// Mark is MarkWorksheet with failures folded into the feedback shape, so
// callers always get a renderable record. The image is archived first when
// an archive is configured; archive failures are only logged. The result
// becomes the session's last feedback.
func (s *Service) Mark(ctx context.Context, sess *domain.Session, img llm.Image) domain.WorksheetFeedback {
	archiveKey := s.archiveImage(ctx, sess, img)

	var fb domain.WorksheetFeedback
	result, err := s.MarkWorksheet(ctx, img)
	if err != nil {
		fb = failedFeedback(err)
		s.log.WarnContext(ctx, "worksheet marking failed",
			slog.String("session_id", sess.ID.String()),
			slog.String("error", err.Error()),
		)
	} else {
		fb = *result
	}
	fb.ArchiveKey = archiveKey

	sess.LastFeedback = &fb
	sess.UpdatedAt = s.now()

	if !fb.Error {
		awarded, total := fb.Marks()
		s.log.InfoContext(ctx, "worksheet marked",
			slog.String("session_id", sess.ID.String()),
			slog.String("verdict", fb.Verdict.String()),
			slog.String("score", fmt.Sprintf("%d/%d", awarded, total)),
			slog.Int("missing_keywords", len(fb.MissingKeywords)),
		)
	}

	return fb
}

func failedFeedback(err error) domain.WorksheetFeedback {
	var extErr *domain.ExtractionError
	if errors.As(err, &extErr) {
		return domain.FailedFeedback(parseFailurePrefix+extErr.Raw, extErr.Raw)
	}
	return domain.FailedFeedback(domain.UserMessage("worksheet", err), "")
}

func (s *Service) archiveImage(ctx context.Context, sess *domain.Session, img llm.Image) string {
	if s.archive == nil {
		return ""
	}

	key := ArchiveKey(sess.ID, uuid.New(), img)
	if err := s.archive.Put(ctx, key, img); err != nil {
		s.log.WarnContext(ctx, "archive worksheet image",
			slog.String("session_id", sess.ID.String()),
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return ""
	}
	return key
}

// ArchiveKey returns the object key for an uploaded worksheet image.
func ArchiveKey(sessionID, imageID uuid.UUID, img llm.Image) string {
	return "worksheets/" + sessionID.String() + "/" + imageID.String() + img.Extension()
}
