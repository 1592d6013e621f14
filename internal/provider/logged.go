package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

// Logged decorates a Model with one log line per call.
type Logged struct {
	next llm.Model
	log  *slog.Logger
}

// NewLogged wraps next.
func NewLogged(next llm.Model, provider, model string, logger *slog.Logger) *Logged {
	return &Logged{
		next: next,
		log:  logger.With("provider", provider, "model", model),
	}
}

func (l *Logged) GenerateText(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	out, err := l.next.GenerateText(ctx, prompt)
	l.record(ctx, "generate_text", start, len(out), err)
	return out, err
}

func (l *Logged) GenerateWithImage(ctx context.Context, prompt string, img llm.Image) (string, error) {
	start := time.Now()
	out, err := l.next.GenerateWithImage(ctx, prompt, img)
	l.record(ctx, "generate_with_image", start, len(out), err,
		slog.String("media_type", img.MediaType),
		slog.Int("image_bytes", len(img.Data)),
	)
	return out, err
}

func (l *Logged) record(ctx context.Context, op string, start time.Time, size int, err error, extra ...slog.Attr) {
	attrs := append([]slog.Attr{
		slog.String("op", op),
		slog.Duration("duration", time.Since(start)),
	}, extra...)

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		l.log.LogAttrs(ctx, slog.LevelError, "model call failed", attrs...)
		return
	}
	attrs = append(attrs, slog.Int("response_bytes", size))
	l.log.LogAttrs(ctx, slog.LevelInfo, "model call", attrs...)
}
