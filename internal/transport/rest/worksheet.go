package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

const (
	uploadField = "file"
	pdfHint     = "PDF detected. Please convert to PNG/JPG or upload an image file."
)

var allowedExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

// markingService defines the minimal interface needed by WorksheetHandler.
type markingService interface {
	Mark(ctx context.Context, sess *domain.Session, img llm.Image) domain.WorksheetFeedback
}

// WorksheetHandler serves worksheet upload and feedback endpoints.
type WorksheetHandler struct {
	svc      markingService
	sessions sessions
	maxBytes int64
	log      *slog.Logger
}

// NewWorksheetHandler creates a WorksheetHandler accepting uploads up to maxBytes.
func NewWorksheetHandler(svc markingService, store sessionStore, maxBytes int64, logger *slog.Logger) *WorksheetHandler {
	log := logger.With("handler", "worksheet")
	return &WorksheetHandler{svc: svc, sessions: sessions{store: store, log: log}, maxBytes: maxBytes, log: log}
}

// Mark handles POST /api/worksheets/mark. Once the image is accepted the
// response is always 200 with a feedback record; marking failures are
// flagged inside it.
func (h *WorksheetHandler) Mark(w http.ResponseWriter, r *http.Request) {
	img, ok := h.readImage(w, r)
	if !ok {
		return
	}

	sess, ok := h.sessions.load(w, r)
	if !ok {
		return
	}

	fb := h.svc.Mark(r.Context(), sess, img)

	if !h.sessions.save(w, r, sess) {
		return
	}
	writeJSON(w, http.StatusOK, fb)
}

// Feedback handles GET /api/worksheets/feedback.
func (h *WorksheetHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.load(w, r)
	if !ok {
		return
	}
	if sess.LastFeedback == nil {
		writeError(w, http.StatusNotFound, codeNotFound, "no worksheet has been marked yet")
		return
	}
	writeJSON(w, http.StatusOK, sess.LastFeedback)
}

func (h *WorksheetHandler) readImage(w http.ResponseWriter, r *http.Request) (llm.Image, bool) {
	// Multipart framing needs a little room beyond the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "upload is too large")
			return llm.Image{}, false
		}
		writeError(w, http.StatusBadRequest, codeBadRequest, "multipart field \"file\" is required")
		return llm.Image{}, false
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext == ".pdf" {
		writeError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, pdfHint)
		return llm.Image{}, false
	}
	if ext != "" && !allowedExtensions[ext] {
		writeError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, "only PNG and JPG images are accepted")
		return llm.Image{}, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "could not read upload")
		return llm.Image{}, false
	}
	if int64(len(data)) > h.maxBytes {
		writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "upload is too large")
		return llm.Image{}, false
	}

	img, err := llm.NewImage(data)
	if err != nil {
		h.log.InfoContext(r.Context(), "upload rejected",
			slog.String("filename", header.Filename),
			slog.String("error", err.Error()),
		)
		writeServiceError(w, r, h.log, "worksheet", err)
		return llm.Image{}, false
	}
	return img, true
}
