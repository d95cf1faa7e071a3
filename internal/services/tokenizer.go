package services

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	domain "github.com/inference-gateway/costgate/internal/domain"
	tiktoken "github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const (
	// DefaultTokenizerModel names the reference tokenizer used for exact counts.
	DefaultTokenizerModel = "gpt-4o"

	// HeuristicTokenizerModel selects the character-based estimator instead of a BPE.
	HeuristicTokenizerModel = "heuristic"
)

var offlineLoaderOnce sync.Once

// TiktokenCounter counts tokens with a tiktoken BPE encoding.
type TiktokenCounter struct {
	model string
	ttk   *tiktoken.Tiktoken
}

// NewTiktokenCounter loads the encoding for model from the embedded BPE tables,
// falling back to DefaultTokenizerModel for unknown model names.
func NewTiktokenCounter(model string) (*TiktokenCounter, error) {
	offlineLoaderOnce.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})

	if model == "" {
		model = DefaultTokenizerModel
	}

	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		tke, err = tiktoken.EncodingForModel(DefaultTokenizerModel)
		if err != nil {
			return nil, fmt.Errorf("failed to get tiktoken encoding for default model '%s': %w", DefaultTokenizerModel, err)
		}
		model = DefaultTokenizerModel
	}

	return &TiktokenCounter{model: model, ttk: tke}, nil
}

// Model returns the model whose encoding is in use.
func (c *TiktokenCounter) Model() string {
	return c.model
}

// CountTokens encodes text without special-token handling and returns the length.
func (c *TiktokenCounter) CountTokens(text string) int {
	if c.ttk == nil || text == "" {
		return 0
	}
	return len(c.ttk.EncodeOrdinary(text))
}

// HeuristicCounter estimates tokens from the rune count. It needs no encoding tables.
type HeuristicCounter struct {
	// charsPerToken is the average characters per token estimate
	// OpenAI suggests ~4 characters per token for English text
	charsPerToken float64
}

// NewHeuristicCounter creates an estimator; non-positive ratios use 4.0.
func NewHeuristicCounter(charsPerToken float64) *HeuristicCounter {
	if charsPerToken <= 0 {
		charsPerToken = 4.0
	}
	return &HeuristicCounter{charsPerToken: charsPerToken}
}

// CountTokens estimates the number of tokens in text, rounding to nearest.
func (h *HeuristicCounter) CountTokens(text string) int {
	if text == "" {
		return 0
	}
	charCount := utf8.RuneCountInString(text)
	return int(float64(charCount)/h.charsPerToken + 0.5)
}

// NewTokenCounter builds the counter named by the tokenizer model setting.
func NewTokenCounter(model string) (domain.TokenCounter, error) {
	if strings.EqualFold(model, HeuristicTokenizerModel) {
		return NewHeuristicCounter(4.0), nil
	}
	return NewTiktokenCounter(model)
}
