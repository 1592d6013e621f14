package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// Error codes carried in error records.
const (
	codeBadRequest       = "bad_request"
	codeValidation       = "validation_failed"
	codeNotFound         = "not_found"
	codeUnsupportedMedia = "unsupported_media"
	codeTooLarge         = "payload_too_large"
	codeExternalCall     = "external_call_failed"
	codeExtraction       = "extraction_failed"
	codeInternal         = "internal"
)

// errorResponse is the error record shape shared by every endpoint.
type errorResponse struct {
	Error       bool                `json:"error"`
	Code        string              `json:"code"`
	Message     string              `json:"message"`
	RawResponse string              `json:"raw_response,omitempty"`
	Fields      []domain.FieldError `json:"fields,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: true, Code: code, Message: message})
}

// writeServiceError maps service errors onto HTTP. action names the
// student-facing operation ("question", "worksheet") for model failures.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, action string, err error) {
	var (
		validationErr *domain.ValidationError
		extractionErr *domain.ExtractionError
		callErr       *domain.ExternalCallError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:   true,
			Code:    codeValidation,
			Message: validationErr.Error(),
			Fields:  validationErr.Errors,
		})
	case errors.As(err, &extractionErr):
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Error:       true,
			Code:        codeExtraction,
			Message:     domain.UserMessage(action, err),
			RawResponse: extractionErr.Raw,
		})
	case errors.As(err, &callErr):
		writeError(w, http.StatusBadGateway, codeExternalCall, domain.UserMessage(action, err))
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, domain.ErrUnsupportedMedia):
		writeError(w, http.StatusUnsupportedMediaType, codeUnsupportedMedia, err.Error())
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
	}
}
