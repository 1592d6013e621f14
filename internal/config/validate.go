package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Provider-dependent defaults (model, base URL) are filled in here.
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0 (got %v)", c.Session.TTL)
	}

	switch c.Session.Store {
	case StoreMemory:
	case StorePostgres:
		if !c.Database.Enabled() {
			return fmt.Errorf("session.store %q requires database.dsn", StorePostgres)
		}
	default:
		return fmt.Errorf("session.store must be one of %s, %s (got %q)", StoreMemory, StorePostgres, c.Session.Store)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	if c.Database.RetentionDays <= 0 {
		return fmt.Errorf("database.retention_days must be > 0 (got %d)", c.Database.RetentionDays)
	}

	if c.Database.PurgeInterval < 0 {
		return fmt.Errorf("database.purge_interval must be >= 0 (got %v)", c.Database.PurgeInterval)
	}

	if c.Storage.Enabled() {
		if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			return fmt.Errorf("storage: access_key and secret_key are required when endpoint is set")
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("storage.bucket is required when endpoint is set")
		}
	}

	if c.RateLimit.ModelPerMinute <= 0 {
		return fmt.Errorf("rate_limit.model_per_minute must be > 0 (got %d)", c.RateLimit.ModelPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %v)", c.RateLimit.CleanupInterval)
	}

	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload.max_bytes must be > 0 (got %d)", c.Upload.MaxBytes)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	l.Provider = strings.ToLower(strings.TrimSpace(l.Provider))

	known := []string{ProviderGemini, ProviderOpenAI, ProviderAnthropic, ProviderStub}
	if !slices.Contains(known, l.Provider) {
		return fmt.Errorf("provider must be one of %s (got %q)", strings.Join(known, ", "), l.Provider)
	}
	if l.Provider != ProviderStub && l.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %q", l.Provider)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0 (got %v)", l.Timeout)
	}

	if l.Model == "" {
		l.Model = defaultModels[l.Provider]
	}
	if l.Provider == ProviderGemini && l.BaseURL == "" {
		l.BaseURL = GeminiBaseURL
	}
	return nil
}
