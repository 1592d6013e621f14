// Package marking grades photographed worksheet answers with a multimodal model.
package marking

import (
	"context"
	"log/slog"
	"time"

	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

// model is the multimodal half of llm.Model.
type model interface {
	GenerateWithImage(ctx context.Context, prompt string, img llm.Image) (string, error)
}

// ImageArchive stores uploaded worksheet images under a key.
type ImageArchive interface {
	Put(ctx context.Context, key string, img llm.Image) error
}

// Service marks worksheets. The archive is optional.
type Service struct {
	model   model
	archive ImageArchive
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new marking service. archive may be nil.
func NewService(log *slog.Logger, model model, archive ImageArchive) *Service {
	return &Service{
		model:   model,
		archive: archive,
		log:     log.With("service", "marking"),
		now:     func() time.Time { return time.Now().UTC() },
	}
}
