package llm

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

const (
	jsonFence    = "```json"
	genericFence = "```"
)

// StripFences removes one markdown code fence around a model response.
// Exactly three cases are recognised: a json-tagged fence, a bare fence,
// or no fence at all. Text outside the fence is discarded; unfenced
// commentary is left in place.
func StripFences(raw string) string {
	text := strings.TrimSpace(raw)

	if _, after, ok := strings.Cut(text, jsonFence); ok {
		body, _, _ := strings.Cut(after, genericFence)
		return strings.TrimSpace(body)
	}

	if _, after, ok := strings.Cut(text, genericFence); ok {
		body, _, _ := strings.Cut(after, genericFence)
		return strings.TrimSpace(body)
	}

	return text
}

// Extract parses a raw model response into a Record after fence stripping.
// On failure it returns a *domain.ExtractionError carrying the parse error
// and the first domain.RawExcerptLimit runes of raw.
func Extract(raw string) (domain.Record, error) {
	body := StripFences(raw)

	var rec domain.Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, domain.NewExtractionError(err, raw)
	}
	if rec == nil {
		return nil, domain.NewExtractionError(errors.New("response is not a JSON object"), raw)
	}
	return rec, nil
}

// Format renders a record the way a well-behaved model would return it:
// indented JSON inside a json-tagged fence.
func Format(rec domain.Record) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(jsonFence + "\n")
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(rec); err != nil {
		return "", err
	}
	buf.WriteString(genericFence)
	return buf.String(), nil
}
