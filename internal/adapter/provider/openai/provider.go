// Package openai implements llm.Model on any OpenAI-compatible chat
// completions endpoint, including the Gemini compatibility layer.
package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sdk "github.com/sashabaranov/go-openai"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

var (
	errNoChoices     = errors.New("model returned no choices")
	errEmptyResponse = errors.New("model returned no text")
)

// Config holds the client settings. Timeout 0 disables the HTTP client timeout.
type Config struct {
	Name      string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
}

// Provider issues one chat completion per call. The client does not retry.
type Provider struct {
	client    *sdk.Client
	name      string
	model     string
	maxTokens int
	log       *slog.Logger
}

// New creates a Provider. Name labels errors and logs ("openai", "gemini").
func New(cfg Config, logger *slog.Logger) *Provider {
	clientCfg := sdk.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	name := cfg.Name
	if name == "" {
		name = "openai"
	}

	return &Provider{
		client:    sdk.NewClientWithConfig(clientCfg),
		name:      name,
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		log:       logger.With("adapter", name),
	}
}

// GenerateText sends a text-only prompt.
func (p *Provider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return p.send(ctx, "generate text", sdk.ChatCompletionMessage{
		Role:    sdk.ChatMessageRoleUser,
		Content: prompt,
	})
}

// GenerateWithImage sends the prompt and the image as a data URL.
func (p *Provider) GenerateWithImage(ctx context.Context, prompt string, img llm.Image) (string, error) {
	dataURL := "data:" + img.MediaType + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
	return p.send(ctx, "generate with image", sdk.ChatCompletionMessage{
		Role: sdk.ChatMessageRoleUser,
		MultiContent: []sdk.ChatMessagePart{
			{
				Type: sdk.ChatMessagePartTypeText,
				Text: prompt,
			},
			{
				Type: sdk.ChatMessagePartTypeImageURL,
				ImageURL: &sdk.ChatMessageImageURL{
					URL:    dataURL,
					Detail: sdk.ImageURLDetailHigh,
				},
			},
		},
	})
}

func (p *Provider) send(ctx context.Context, op string, msg sdk.ChatCompletionMessage) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, sdk.ChatCompletionRequest{
		Model:     p.model,
		Messages:  []sdk.ChatCompletionMessage{msg},
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		return "", p.callError(op, err)
	}
	if len(resp.Choices) == 0 {
		return "", p.callError(op, errNoChoices)
	}

	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", p.callError(op, errEmptyResponse)
	}

	p.log.DebugContext(ctx, "chat completion",
		slog.String("op", op),
		slog.String("finish_reason", string(resp.Choices[0].FinishReason)),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return text, nil
}

func (p *Provider) callError(op string, err error) error {
	return &domain.ExternalCallError{Op: p.name + ": " + op, Err: err}
}
