package llm

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // register decoder for image.DecodeConfig
	_ "image/png"  // register decoder for image.DecodeConfig
	"net/http"

	"github.com/projectmoneymatter/psle-science-tutor/internal/domain"
)

// Model is the text-in/text-out contract with the generative model.
// Each call is one synchronous request; implementations must not retry.
type Model interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt string, img Image) (string, error)
}

const (
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
	mediaTypePDF  = "application/pdf"
)

// Image is an uploaded worksheet photo ready to send to a multimodal model.
type Image struct {
	Data      []byte
	MediaType string
	Width     int
	Height    int
}

// NewImage sniffs data and accepts PNG or JPEG only. Anything else yields
// an error wrapping domain.ErrUnsupportedMedia.
func NewImage(data []byte) (Image, error) {
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty upload: %w", domain.ErrUnsupportedMedia)
	}

	mediaType := http.DetectContentType(data)
	switch mediaType {
	case MediaTypePNG, MediaTypeJPEG:
	case mediaTypePDF:
		return Image{}, fmt.Errorf("PDF detected, please convert to PNG/JPG or upload an image file: %w", domain.ErrUnsupportedMedia)
	default:
		return Image{}, fmt.Errorf("%s: %w", mediaType, domain.ErrUnsupportedMedia)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode %s: %v: %w", mediaType, err, domain.ErrUnsupportedMedia)
	}

	return Image{
		Data:      data,
		MediaType: mediaType,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}

// Extension returns the file extension matching the image media type.
func (i Image) Extension() string {
	if i.MediaType == MediaTypeJPEG {
		return ".jpg"
	}
	return ".png"
}
