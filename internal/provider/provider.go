// Package provider builds the configured llm.Model.
package provider

import (
	"fmt"
	"log/slog"

	"github.com/projectmoneymatter/psle-science-tutor/internal/adapter/provider/anthropic"
	"github.com/projectmoneymatter/psle-science-tutor/internal/adapter/provider/openai"
	"github.com/projectmoneymatter/psle-science-tutor/internal/adapter/provider/stub"
	"github.com/projectmoneymatter/psle-science-tutor/internal/config"
	"github.com/projectmoneymatter/psle-science-tutor/internal/llm"
)

// New returns the model named by cfg.Provider, wrapped with call logging.
// cfg must already be validated.
func New(cfg config.LLMConfig, userAgent string, logger *slog.Logger) (llm.Model, error) {
	var m llm.Model
	switch cfg.Provider {
	case config.ProviderAnthropic:
		m = anthropic.New(anthropic.Config{
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
			UserAgent: userAgent,
		}, logger)
	case config.ProviderOpenAI, config.ProviderGemini:
		m = openai.New(openai.Config{
			Name:      cfg.Provider,
			APIKey:    cfg.APIKey,
			Model:     cfg.Model,
			BaseURL:   cfg.BaseURL,
			MaxTokens: cfg.MaxTokens,
			Timeout:   cfg.Timeout,
		}, logger)
	case config.ProviderStub:
		m = stub.New()
	default:
		return nil, fmt.Errorf("provider: unknown provider %q", cfg.Provider)
	}

	return NewLogged(m, cfg.Provider, cfg.Model, logger), nil
}
