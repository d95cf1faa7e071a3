package config

import "strings"

// ModelMatcher defines a pattern match for context window estimation.
type ModelMatcher struct {
	Patterns      []string
	ContextWindow int
}

// DefaultContextWindow is the fallback context window size when no pattern matches.
const DefaultContextWindow = 128000

// ContextMatchers defines all model patterns in priority order.
// More specific patterns must come before less specific ones.
var ContextMatchers = []ModelMatcher{
	{Patterns: []string{"deepseek"}, ContextWindow: 128000},
	{Patterns: []string{"o1", "o3", "o4"}, ContextWindow: 200000},
	{Patterns: []string{"gpt-4.1"}, ContextWindow: 1047576},
	{Patterns: []string{"gpt-4o", "gpt-4-turbo"}, ContextWindow: 128000},
	{Patterns: []string{"gpt-4"}, ContextWindow: 8192},
	{Patterns: []string{"claude"}, ContextWindow: 200000},
	{Patterns: []string{"gemini-2", "gemini-1.5"}, ContextWindow: 1000000},
	{Patterns: []string{"gemini"}, ContextWindow: 32768},
	{Patterns: []string{"mistral-large"}, ContextWindow: 128000},
	{Patterns: []string{"mistral", "mixtral"}, ContextWindow: 32768},
	{Patterns: []string{"llama3.1", "llama3.2", "llama3.3", "llama-3.1", "llama-3.2", "llama-3.3"}, ContextWindow: 128000},
	{Patterns: []string{"llama"}, ContextWindow: 8192},
	{Patterns: []string{"qwen3", "qwen-3"}, ContextWindow: 262144},
	{Patterns: []string{"qwen"}, ContextWindow: 131072},
}

// ContextWindowFor returns the context window of a model, matching patterns
// case-insensitively against the model name without its provider prefix.
func ContextWindowFor(model string) int {
	name := strings.ToLower(model)
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}

	for _, matcher := range ContextMatchers {
		for _, pattern := range matcher.Patterns {
			if strings.Contains(name, pattern) {
				return matcher.ContextWindow
			}
		}
	}
	return DefaultContextWindow
}
