package domain

import (
	"strconv"
	"strings"
)

// Verdict is the coarse grading-severity label attached to worksheet feedback.
// The set is open: unknown values are carried through and rendered neutrally.
type Verdict string

const (
	VerdictCorrect Verdict = "Correct"
	VerdictStrict  Verdict = "Strict"
	VerdictLenient Verdict = "Lenient"
	VerdictUnknown Verdict = "N/A"
)

func (v Verdict) String() string { return string(v) }

// Indicator returns the colour marker shown next to the verdict.
func (v Verdict) Indicator() string {
	switch v {
	case VerdictCorrect:
		return "🟢"
	case VerdictStrict:
		return "🔴"
	case VerdictLenient:
		return "🟡"
	default:
		return "⚪"
	}
}

const (
	defaultScore        = "0/2"
	defaultAwardedMarks = 0
	defaultTotalMarks   = 2
)

// WorksheetFeedback is the marker's result for one uploaded worksheet.
// The Error, Message and RawResponse fields let a failed marking share the
// same shape as a successful one.
type WorksheetFeedback struct {
	Transcription   string   `json:"transcription"`
	Score           string   `json:"score"`
	Verdict         Verdict  `json:"verdict"`
	MissingKeywords []string `json:"missing_keywords"`
	FeedbackText    string   `json:"feedback_text"`
	ModelAnswer     string   `json:"model_answer"`

	Error       bool   `json:"error"`
	Message     string `json:"message,omitempty"`
	RawResponse string `json:"raw_response,omitempty"`

	// ArchiveKey is the object-storage key of the marked image, when archived.
	ArchiveKey string `json:"archive_key,omitempty"`
}

// WorksheetFeedbackFromRecord converts an extracted record into feedback,
// substituting defaults for absent or mistyped fields.
func WorksheetFeedbackFromRecord(rec Record) WorksheetFeedback {
	return WorksheetFeedback{
		Transcription:   rec.String("transcription", ""),
		Score:           rec.String("score", defaultScore),
		Verdict:         Verdict(rec.String("verdict", string(VerdictUnknown))),
		MissingKeywords: rec.Strings("missing_keywords"),
		FeedbackText:    rec.String("feedback_text", ""),
		ModelAnswer:     rec.String("model_answer", ""),
	}
}

// FailedFeedback builds the error-flagged feedback record.
func FailedFeedback(message, raw string) WorksheetFeedback {
	return WorksheetFeedback{
		Score:           defaultScore,
		Verdict:         VerdictUnknown,
		MissingKeywords: []string{},
		Error:           true,
		Message:         message,
		RawResponse:     raw,
	}
}

// Marks parses the feedback score.
func (f WorksheetFeedback) Marks() (awarded, total int) {
	return ParseScore(f.Score)
}

// Fraction returns awarded/total clamped to [0, 1]; 0 when total is 0.
func (f WorksheetFeedback) Fraction() float64 {
	awarded, total := f.Marks()
	if total <= 0 {
		return 0
	}
	p := float64(awarded) / float64(total)
	if p > 1 {
		return 1
	}
	return p
}

// HasAllKeywords reports whether no required keyword was missing.
func (f WorksheetFeedback) HasAllKeywords() bool {
	return len(f.MissingKeywords) == 0
}

// ParseScore parses an "X/Y" score string. Any malformed input yields (0, 2).
func ParseScore(s string) (awarded, total int) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return defaultAwardedMarks, defaultTotalMarks
	}
	a, errA := strconv.Atoi(strings.TrimSpace(parts[0]))
	t, errT := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errA != nil || errT != nil || a < 0 || t < 0 {
		return defaultAwardedMarks, defaultTotalMarks
	}
	return a, t
}
