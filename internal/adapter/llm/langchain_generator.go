package llm

import (
	"context"
	"fmt"
	"net/http"

	"quiz-forge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	defaultOllamaServerURL = "http://localhost:11434"
	defaultOllamaModel     = "qwen3:0.6b"
	defaultOpenAIModel     = "gpt-4o-mini"
)

// LangchainGenerator implements domain.TextGenerator on top of any LangchainGo model.
type LangchainGenerator struct {
	model    llms.Model
	provider string
}

func NewLangchainGenerator(model llms.Model, provider string) *LangchainGenerator {
	return &LangchainGenerator{model: model, provider: provider}
}

// NewOllamaGenerator connects to an Ollama server.
func NewOllamaGenerator(serverURL, modelName string, httpClient *http.Client) (*LangchainGenerator, error) {
	if serverURL == "" {
		serverURL = defaultOllamaServerURL
	}
	if modelName == "" {
		modelName = defaultOllamaModel
	}
	opts := []ollama.Option{
		ollama.WithServerURL(serverURL),
		ollama.WithModel(modelName),
	}
	if httpClient != nil {
		opts = append(opts, ollama.WithHTTPClient(httpClient))
	}
	model, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo Ollama client: %w", err)
	}
	return NewLangchainGenerator(model, "ollama"), nil
}

// NewOpenAIGenerator talks to the OpenAI API, or a compatible server when baseURL is set.
func NewOpenAIGenerator(apiKey, modelName, baseURL string, httpClient *http.Client) (*LangchainGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key cannot be empty")
	}
	if modelName == "" {
		modelName = defaultOpenAIModel
	}
	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(modelName),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, openai.WithHTTPClient(httpClient))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create LangchainGo OpenAI client: %w", err)
	}
	return NewLangchainGenerator(model, "openai"), nil
}

// Generate sends prompt as a single human message.
func (g *LangchainGenerator) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	response, err := llms.GenerateFromSinglePrompt(ctx, g.model, prompt, llms.WithTemperature(temperature))
	if err != nil {
		return "", fmt.Errorf("%s call failed: %w", g.provider, err)
	}
	return response, nil
}

var _ domain.TextGenerator = (*LangchainGenerator)(nil)
