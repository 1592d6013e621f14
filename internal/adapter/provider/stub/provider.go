// Package stub provides an offline llm.Model that returns canned, well-formed
// responses. It is selected with LLM_PROVIDER=stub for local development.
package stub

import (
	"context"
	"regexp"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

var topicLine = regexp.MustCompile(`(?m)^Topic: (.+)$`)

// Provider answers every prompt without network access.
type Provider struct{}

// New creates a stub provider.
func New() *Provider { return &Provider{} }

// GenerateText returns a fenced question record mentioning the prompt's topic.
func (p *Provider) GenerateText(ctx context.Context, prompt string) (string, error) {
	topic := "Science"
	if m := topicLine.FindStringSubmatch(prompt); m != nil {
		topic = m[1]
	}
	return llm.Format(domain.Record{
		"question": "Which of the following best describes a key idea in " + topic + "?",
		"options": map[string]any{
			"A": "It involves a change that can be observed and explained.",
			"B": "It only happens in living things.",
			"C": "It never involves energy.",
			"D": "It cannot be investigated in a fair test.",
		},
		"correct_answer": "A",
		"explanation":    "Scientific ideas in " + topic + " describe observable changes. The other options make absolute claims that are not true.",
	})
}

// GenerateWithImage returns fixed worksheet feedback regardless of the image.
func (p *Provider) GenerateWithImage(ctx context.Context, prompt string, img llm.Image) (string, error) {
	return llm.Format(domain.Record{
		"transcription":    "The water dried up because it was hot.",
		"score":            "1/2",
		"verdict":          "Strict",
		"missing_keywords": []any{"gained heat", "evaporated"},
		"feedback_text":    "You lost marks because you said 'dried up' instead of 'gained heat and evaporated'.",
		"model_answer":     "The water gained heat from the surroundings and evaporated into water vapour.",
	})
}
