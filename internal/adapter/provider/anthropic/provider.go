// Package anthropic implements llm.Model on the Anthropic Messages API.
package anthropic

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

var errEmptyResponse = errors.New("model returned no text")

// Config holds the client settings. Timeout 0 disables the per-request timeout.
type Config struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Timeout   time.Duration
	UserAgent string
}

// Provider sends one Messages request per call. SDK retries are disabled.
type Provider struct {
	client    sdk.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Provider.
func New(cfg Config, logger *slog.Logger) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, option.WithHeader("User-Agent", cfg.UserAgent))
	}

	return &Provider{
		client:    sdk.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		log:       logger.With("adapter", "anthropic"),
	}
}

// GenerateText sends a text-only prompt.
func (p *Provider) GenerateText(ctx context.Context, prompt string) (string, error) {
	return p.send(ctx, "generate text", sdk.NewTextBlock(prompt))
}

// GenerateWithImage sends the image followed by the prompt in one user turn.
func (p *Provider) GenerateWithImage(ctx context.Context, prompt string, img llm.Image) (string, error) {
	encoded := base64.StdEncoding.EncodeToString(img.Data)
	return p.send(ctx, "generate with image",
		sdk.NewImageBlockBase64(img.MediaType, encoded),
		sdk.NewTextBlock(prompt),
	)
}

func (p *Provider) send(ctx context.Context, op string, blocks ...sdk.ContentBlockParamUnion) (string, error) {
	msg, err := p.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(blocks...),
		},
	})
	if err != nil {
		return "", &domain.ExternalCallError{Op: "anthropic: " + op, Err: err}
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &domain.ExternalCallError{Op: "anthropic: " + op, Err: errEmptyResponse}
	}

	p.log.DebugContext(ctx, "anthropic response",
		slog.String("op", op),
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return sb.String(), nil
}
