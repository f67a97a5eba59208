package llm

import (
	"context"
	"fmt"
	"net/http"

	"quiz-forge/internal/config"
	"quiz-forge/internal/domain"
)

// NewTextGenerator builds the model client selected by cfg.Provider.
func NewTextGenerator(ctx context.Context, cfg config.LLMConfig) (domain.TextGenerator, error) {
	// The generation loop owns the overall deadline; this only guards a hung connection.
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 10,
		},
	}

	var (
		generator domain.TextGenerator
		err       error
	)
	switch cfg.Provider {
	case "ollama":
		generator, err = NewOllamaGenerator(cfg.ServerURL, cfg.Model, httpClient)
	case "openai":
		generator, err = NewOpenAIGenerator(cfg.APIKey, cfg.Model, cfg.ServerURL, httpClient)
	case "gemini":
		generator, err = NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.ServerURL, httpClient)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return generator, nil
}
