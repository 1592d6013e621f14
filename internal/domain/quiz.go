package domain

import (
	"slices"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Difficulty is the advisory difficulty level passed to the question prompt.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// LookupDifficulty matches s case-insensitively.
func LookupDifficulty(s string) (Difficulty, bool) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, true
		}
	}
	return "", false
}

// ParseDifficulty is LookupDifficulty with a Medium fallback.
func ParseDifficulty(s string) Difficulty {
	if d, ok := LookupDifficulty(s); ok {
		return d
	}
	return DifficultyMedium
}

// OptionKey identifies one of the multiple-choice options.
type OptionKey string

const (
	OptionA OptionKey = "A"
	OptionB OptionKey = "B"
	OptionC OptionKey = "C"
	OptionD OptionKey = "D"
)

// OptionKeys is the fixed key set of a well-formed question, in display order.
var OptionKeys = []OptionKey{OptionA, OptionB, OptionC, OptionD}

func (k OptionKey) IsValid() bool {
	return slices.Contains(OptionKeys, k)
}

// ParseOptionKey normalizes user input such as " b " to OptionB.
func ParseOptionKey(s string) (OptionKey, bool) {
	k := OptionKey(strings.ToUpper(strings.TrimSpace(s)))
	return k, k.IsValid()
}

const (
	noQuestionText    = "No question generated"
	noExplanationText = "No explanation available."
)

// QuizQuestion is a generated multiple-choice question.
// It is held as the session's current question and never validated beyond
// structural JSON validity: callers render whatever fields are present.
type QuizQuestion struct {
	ID            uuid.UUID            `json:"id"`
	Topic         string               `json:"topic"`
	Difficulty    Difficulty           `json:"difficulty"`
	Question      string               `json:"question"`
	Options       map[OptionKey]string `json:"options"`
	CorrectAnswer OptionKey            `json:"correct_answer"`
	Explanation   string               `json:"explanation"`
}

// normalizeOptionKey maps keys such as "a" or " b" onto A-D. Anything else
// keeps its trimmed spelling.
func normalizeOptionKey(s string) OptionKey {
	if k, ok := ParseOptionKey(s); ok {
		return k
	}
	return OptionKey(strings.TrimSpace(s))
}

// QuizQuestionFromRecord converts an extracted record into a QuizQuestion.
// Absent or mistyped fields take their zero defaults. Option keys and the
// correct answer are normalized to A-D; when two keys collide, the one
// already spelled canonically wins.
func QuizQuestionFromRecord(rec Record) QuizQuestion {
	raw := rec.StringMap("options")
	options := make(map[OptionKey]string, len(raw))
	for k, v := range raw {
		key := normalizeOptionKey(k)
		if _, taken := options[key]; taken && string(key) != k {
			continue
		}
		options[key] = v
	}
	return QuizQuestion{
		ID:            uuid.New(),
		Question:      rec.String("question", ""),
		Options:       options,
		CorrectAnswer: normalizeOptionKey(rec.String("correct_answer", "")),
		Explanation:   rec.String("explanation", ""),
	}
}

// DisplayQuestion returns the question text or a placeholder.
func (q QuizQuestion) DisplayQuestion() string {
	if q.Question == "" {
		return noQuestionText
	}
	return q.Question
}

// DisplayExplanation returns the explanation or a placeholder.
func (q QuizQuestion) DisplayExplanation() string {
	if q.Explanation == "" {
		return noExplanationText
	}
	return q.Explanation
}

// PresentKeys returns the option keys present on the question: A-D first in
// order, then any unexpected keys sorted.
func (q QuizQuestion) PresentKeys() []OptionKey {
	keys := make([]OptionKey, 0, len(q.Options))
	for _, k := range OptionKeys {
		if _, ok := q.Options[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range q.Options {
		if !k.IsValid() {
			extra = append(extra, string(k))
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		keys = append(keys, OptionKey(k))
	}
	return keys
}

// IsComplete reports whether all four options are present and the correct
// answer is one of them. Advisory only.
func (q QuizQuestion) IsComplete() bool {
	for _, k := range OptionKeys {
		if _, ok := q.Options[k]; !ok {
			return false
		}
	}
	return q.CorrectAnswer.IsValid()
}
