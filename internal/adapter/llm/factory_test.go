package llm

import (
	"context"
	"testing"
	"time"

	"quiz-forge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextGenerator(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LLMConfig
		wantErr bool
	}{
		{"ollama", config.LLMConfig{Provider: "ollama", Timeout: time.Second}, false},
		{"openai", config.LLMConfig{Provider: "openai", APIKey: "sk-test"}, false},
		{"gemini", config.LLMConfig{Provider: "gemini", APIKey: "key"}, false},
		{"openai without key", config.LLMConfig{Provider: "openai"}, true},
		{"unknown", config.LLMConfig{Provider: "bard"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewTextGenerator(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, g)
		})
	}
}
