package formatting

import (
	"strings"
	"testing"

	domain "github.com/inference-gateway/costgate/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatResponsiveMessage_NoTrailingSpaces(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
	}{
		{
			name:    "Long line that needs wrapping",
			content: "This is a very long line that will definitely need to be wrapped because it exceeds the specified width limit",
			width:   30,
		},
		{
			name:    "Multiple lines with wrapping",
			content: "First line that is quite long and needs wrapping\nSecond line also long\nThird",
			width:   20,
		},
		{
			name:    "Code block with long lines",
			content: "function calculateTotal(items, taxRate, discountPercentage) { return items.reduce((sum, item) => sum + item.price, 0) * (1 + taxRate) * (1 - discountPercentage); }",
			width:   40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatResponsiveMessage(tt.content, tt.width)
			lines := strings.Split(result, "\n")

			for i, line := range lines {
				if strings.HasSuffix(line, " ") {
					t.Errorf("Line %d has trailing spaces: %q", i+1, line)
				}
			}
		})
	}
}

func TestFormatResponsiveMessage_PreservesContent(t *testing.T) {
	content := "Hello world\nThis is a test\nWith multiple lines"
	width := 100

	result := FormatResponsiveMessage(content, width)

	if result != content {
		t.Errorf("Content was modified when it shouldn't have been wrapped\nExpected: %q\nGot: %q", content, result)
	}
}

func TestFormatResponsiveMessage_HandlesEmptyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		want    string
	}{
		{
			name:    "Empty string",
			content: "",
			width:   50,
			want:    "",
		},
		{
			name:    "Zero width",
			content: "Test content",
			width:   0,
			want:    "Test content",
		},
		{
			name:    "Negative width",
			content: "Test content",
			width:   -1,
			want:    "Test content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatResponsiveMessage(tt.content, tt.width)
			if result != tt.want {
				t.Errorf("FormatResponsiveMessage() = %q, want %q", result, tt.want)
			}
		})
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		name string
		cost float64
		want string
	}{
		{
			name: "Zero cost",
			cost: 0.0,
			want: "-",
		},
		{
			name: "Very small cost (4 decimals)",
			cost: 0.0023,
			want: "$0.0023",
		},
		{
			name: "Small cost under $0.01 (4 decimals)",
			cost: 0.0099,
			want: "$0.0099",
		},
		{
			name: "Cost exactly $0.01 (3 decimals)",
			cost: 0.01,
			want: "$0.010",
		},
		{
			name: "Cost between $0.01 and $1 (3 decimals)",
			cost: 0.142,
			want: "$0.142",
		},
		{
			name: "Cost just under $1 (3 decimals)",
			cost: 0.999,
			want: "$0.999",
		},
		{
			name: "Cost exactly $1 (2 decimals)",
			cost: 1.0,
			want: "$1.00",
		},
		{
			name: "Cost over $1 (2 decimals)",
			cost: 5.47,
			want: "$5.47",
		},
		{
			name: "Large cost (2 decimals)",
			cost: 123.45,
			want: "$123.45",
		},
		{
			name: "Cost with many decimals gets rounded",
			cost: 1.23456789,
			want: "$1.23",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatCost(tt.cost)
			if result != tt.want {
				t.Errorf("FormatCost(%v) = %q, want %q", tt.cost, result, tt.want)
			}
		})
	}
}

func TestFormatTokens(t *testing.T) {
	tests := []struct {
		tokens int
		want   string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{77000, "77,000"},
		{100000, "100,000"},
		{1234567, "1,234,567"},
		{-1500, "-1,500"},
		{-150000, "-150,000"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTokens(tt.tokens))
		})
	}
}

func TestFormatMultiplier(t *testing.T) {
	assert.Equal(t, "x1.4", FormatMultiplier(1.4))
	assert.Equal(t, "x3", FormatMultiplier(3))
	assert.Equal(t, "x1", FormatMultiplier(1))
}

func TestFormatScanResult(t *testing.T) {
	result := FormatScanResult(domain.ScanResult{Tokens: 1000, FilesCounted: 1, FilesSkipped: 1})
	assert.Equal(t, "1,000 tokens in 1 files (1 skipped)", result)
}

func TestFormatBudgetBreakdown(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		out := FormatBudgetBreakdown(domain.BudgetBreakdown{
			RiskMultiplier:     1,
			Iterations:         1,
			IDEOverhead:        55000,
			PreMultiplierTotal: 55000,
			SafetyMultiplier:   1.4,
			FinalTotal:         77000,
			DisplayTotal:       "77,000",
		}, "")

		assert.True(t, strings.HasPrefix(out, "Token budget\n"))
		assert.Contains(t, out, "IDE overhead:")
		assert.Contains(t, out, "55,000")
		assert.Contains(t, out, "x1.4")
		assert.Contains(t, out, "77,000 tokens")
		assert.NotContains(t, out, "WARNING")
		assert.False(t, strings.HasSuffix(out, "\n"))
	})

	t.Run("risk and iterations are spelled out", func(t *testing.T) {
		out := FormatBudgetBreakdown(domain.BudgetBreakdown{
			DeclaredCacheRead:  10000,
			RiskMultiplier:     3,
			Iterations:         2,
			CacheReadTotal:     60000,
			ToolCalls:          4,
			ToolCallOverhead:   6000,
			PreMultiplierTotal: 66000,
			SafetyMultiplier:   1.4,
			FinalTotal:         92400,
			DisplayTotal:       "92,400",
			Warning:            "codebase-wide change",
		}, "Refactor helpers")

		assert.True(t, strings.HasPrefix(out, "Token budget: Refactor helpers\n"))
		assert.Contains(t, out, "10,000 x3 risk x 2 iterations = 60,000")
		assert.Contains(t, out, "4 calls = 6,000")
		assert.Contains(t, out, "WARNING: codebase-wide change")
	})

	t.Run("raised safety multiplier is shown", func(t *testing.T) {
		out := FormatBudgetBreakdown(domain.BudgetBreakdown{
			RiskMultiplier:     1,
			Iterations:         1,
			PreMultiplierTotal: 55000,
			SafetyMultiplier:   1,
			SafetyRequested:    0.5,
			FinalTotal:         55000,
			DisplayTotal:       "55,000",
		}, "")

		assert.Contains(t, out, "x1 (raised from x0.5)")
	})

	t.Run("override shows computed total too", func(t *testing.T) {
		out := FormatBudgetBreakdown(domain.BudgetBreakdown{
			RiskMultiplier:       1,
			Iterations:           1,
			SafetyMultiplier:     1.4,
			FinalTotal:           77000,
			DisplayTotal:         "~80k",
			TotalOverrideApplied: true,
		}, "task")

		assert.Contains(t, out, "~80k (computed 77,000 tokens)")
	})
}

func TestFormatExactEstimate(t *testing.T) {
	out := FormatExactEstimate(domain.ExactEstimate{
		Model:               "anthropic/claude-sonnet-4-5-20250929",
		Complexity:          "HIGH",
		SearchOverhead:      60000,
		IDEOverhead:         90000,
		RequestedIterations: 1,
		EffectiveIterations: 3,
		BaseContext:         150000,
		HistoryGrowth:       10000,
		TotalProcessedInput: 480000,
		NewInputTokens:      144000,
		CacheReadTokens:     336000,
		OutputTokens:        24000,
		NewInputCost:        0.432,
		CacheReadCost:       0.101,
		OutputCost:          0.36,
		TotalCost:           0.893,
		Rates:               "$3.00/$15.00 per MTok",
	})

	assert.True(t, strings.HasPrefix(out, "Cost estimate (HIGH, anthropic/claude-sonnet-4-5-20250929)"))
	assert.Contains(t, out, "3 (requested 1, tier minimum applied)")
	assert.Contains(t, out, "150,000")
	assert.Contains(t, out, "480,000 (+10,000 history per turn)")
	assert.Contains(t, out, "144,000 tokens  $0.432")
	assert.Contains(t, out, "Estimated cost:")
	assert.Contains(t, out, "$0.89")
	assert.Contains(t, out, "Model rates:")
	assert.Contains(t, out, "$3.00/$15.00 per MTok")
}

func TestCLIMessageColors(t *testing.T) {
	tests := []struct {
		name     string
		format   func(string) string
		expected string
	}{
		{name: "success is green", format: FormatSuccess, expected: "\033[32mdone\033[0m"},
		{name: "warning is yellow", format: FormatWarning, expected: "\033[33mdone\033[0m"},
		{name: "error is red", format: FormatErrorCLI, expected: "\033[31mdone\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format("done"))
		})
	}
}
