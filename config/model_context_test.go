package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWindowFor(t *testing.T) {
	tests := []struct {
		model    string
		expected int
	}{
		{"anthropic/claude-sonnet-4-5-20250929", 200000},
		{"openai/gpt-4o-mini", 128000},
		{"openai/o1", 200000},
		{"google/gemini-2.0-flash", 1000000},
		{"deepseek/deepseek-chat", 128000},
		{"ollama/llama3.2", 128000},
		{"ollama/llama2", 8192},
		{"GPT-4O", 128000},
		{"acme/unknown-model", DefaultContextWindow},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.expected, ContextWindowFor(tt.model))
		})
	}
}
