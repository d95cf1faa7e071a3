package services

import (
	"context"
	"testing"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScanner struct {
	result domain.ScanResult
	paths  []string
}

func (f *fakeScanner) Scan(_ context.Context, paths ...string) domain.ScanResult {
	f.paths = append(f.paths, paths...)
	return f.result
}

func newTestCostModel(scan domain.ScanResult) (*CostModel, *fakeScanner) {
	cfg := config.DefaultConfig()
	scanner := &fakeScanner{result: scan}
	return NewCostModel(cfg, scanner, NewPricingService(&cfg.Pricing)), scanner
}

func TestCostModel_Estimate(t *testing.T) {
	tests := []struct {
		name                string
		scan                domain.ScanResult
		input               domain.ExactInput
		expectedComplexity  string
		expectedIterations  int
		expectedBaseContext int
		expectedTotalInput  int
		expectedOutput      int
		expectedTotalCost   float64
	}{
		{
			name:                "high tier raises iterations to its floor",
			input:               domain.ExactInput{Complexity: "HIGH", EstimatedIterations: 1},
			expectedComplexity:  config.TierHigh,
			expectedIterations:  3,
			expectedBaseContext: 150000,
			expectedTotalInput:  480000,
			expectedOutput:      24000,
			expectedTotalCost:   0.893,
		},
		{
			name:                "single low iteration has no history growth",
			scan:                domain.ScanResult{Tokens: 1000, FilesCounted: 1},
			input:               domain.ExactInput{Complexity: "low", EstimatedIterations: 1},
			expectedComplexity:  config.TierLow,
			expectedIterations:  1,
			expectedBaseContext: 91000,
			expectedTotalInput:  91000,
			expectedOutput:      2000,
			expectedTotalCost:   0.131,
		},
		{
			name:                "empty tier defaults to medium",
			scan:                domain.ScanResult{Tokens: 10000, FilesCounted: 3},
			input:               domain.ExactInput{EstimatedIterations: 0},
			expectedComplexity:  config.TierMedium,
			expectedIterations:  2,
			expectedBaseContext: 100000,
			expectedTotalInput:  210000,
			expectedOutput:      8000,
			expectedTotalCost:   0.353,
		},
		{
			name:                "requested iterations above the floor are kept",
			input:               domain.ExactInput{Complexity: "CRITICAL", EstimatedIterations: 6},
			expectedComplexity:  config.TierCritical,
			expectedIterations:  6,
			expectedBaseContext: 210000,
			expectedTotalInput:  1410000,
			expectedOutput:      72000,
			expectedTotalCost:   2.645,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, _ := newTestCostModel(tt.scan)

			estimate, err := model.Estimate(logger.NopContext(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedComplexity, estimate.Complexity)
			assert.Equal(t, tt.expectedIterations, estimate.EffectiveIterations)
			assert.Equal(t, tt.expectedBaseContext, estimate.BaseContext)
			assert.Equal(t, tt.expectedTotalInput, estimate.TotalProcessedInput)
			assert.Equal(t, tt.expectedOutput, estimate.OutputTokens)
			assert.Equal(t, tt.expectedTotalInput, estimate.NewInputTokens+estimate.CacheReadTokens)
			assert.InDelta(t, tt.expectedTotalCost, estimate.TotalCost, 1e-9)
			assert.Equal(t, config.DefaultPricingModel, estimate.Model)
		})
	}
}

func TestCostModel_EstimateHighTierBreakdown(t *testing.T) {
	model, scanner := newTestCostModel(domain.ScanResult{})

	estimate, err := model.Estimate(logger.NopContext(), domain.ExactInput{
		Paths:               []string{"src", "README.md"},
		Complexity:          "HIGH",
		EstimatedIterations: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"src", "README.md"}, scanner.paths)
	assert.Equal(t, 60000, estimate.SearchOverhead)
	assert.Equal(t, 90000, estimate.IDEOverhead)
	assert.Equal(t, 1, estimate.RequestedIterations)
	assert.Equal(t, 144000, estimate.NewInputTokens)
	assert.Equal(t, 336000, estimate.CacheReadTokens)
	assert.InDelta(t, 0.432, estimate.NewInputCost, 1e-9)
	assert.InDelta(t, 0.101, estimate.CacheReadCost, 1e-9)
	assert.InDelta(t, 0.36, estimate.OutputCost, 1e-9)
}

func TestCostModel_UnknownTier(t *testing.T) {
	model, scanner := newTestCostModel(domain.ScanResult{})

	_, err := model.Estimate(logger.NopContext(), domain.ExactInput{Complexity: "EXTREME"})
	require.Error(t, err)

	var tierErr *domain.UnknownTierError
	require.ErrorAs(t, err, &tierErr)
	assert.Equal(t, "EXTREME", tierErr.Tier)
	assert.Equal(t, []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}, tierErr.Known)
	assert.Empty(t, scanner.paths, "no scan for an invalid tier")
}

func TestCostModel_SingleIterationEqualsBaseContext(t *testing.T) {
	model, _ := newTestCostModel(domain.ScanResult{})
	ctx := logger.NopContext()

	for _, tokens := range []int{0, 1, 4321, 250000} {
		estimate := model.Compute(ctx, domain.ScanResult{Tokens: tokens}, config.TierConfig{
			Name:                 "ONE",
			MinIterations:        1,
			OutputTokensPerTurn:  100,
			SearchOverheadTokens: 7,
		}, 1, "")
		assert.Equal(t, estimate.BaseContext, estimate.TotalProcessedInput)
		assert.Equal(t, tokens+7+90000, estimate.BaseContext)
	}
}

func TestCostModel_IterationsAreMonotonic(t *testing.T) {
	model, _ := newTestCostModel(domain.ScanResult{})
	ctx := logger.NopContext()
	tier, ok := config.DefaultConfig().Tier(config.TierLow)
	require.True(t, ok)

	previous := -1
	for iterations := 1; iterations <= 20; iterations++ {
		estimate := model.Compute(ctx, domain.ScanResult{Tokens: 5000}, tier, iterations, "")
		assert.Greater(t, estimate.TotalProcessedInput, previous, "iterations=%d", iterations)
		previous = estimate.TotalProcessedInput
	}
}

func TestCostModel_ExtremeIterationsStayMonotonic(t *testing.T) {
	model, _ := newTestCostModel(domain.ScanResult{})
	ctx := logger.NopContext()
	tier, ok := config.DefaultConfig().Tier(config.TierLow)
	require.True(t, ok)

	tests := []struct {
		name        string
		smaller     int
		larger      int
		wantClamped int
	}{
		{name: "past the int32 range", smaller: 1 << 20, larger: 1 << 31, wantClamped: MaxDeclaredCount},
		{name: "near the int64 range", smaller: 1 << 31, larger: 1 << 62, wantClamped: MaxDeclaredCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			small := model.Compute(ctx, domain.ScanResult{Tokens: 5000}, tier, tt.smaller, "")
			large := model.Compute(ctx, domain.ScanResult{Tokens: 5000}, tier, tt.larger, "")

			assert.Equal(t, tt.wantClamped, large.EffectiveIterations)
			assert.GreaterOrEqual(t, large.TotalProcessedInput, small.TotalProcessedInput)
			assert.GreaterOrEqual(t, large.NewInputTokens, 0)
			assert.GreaterOrEqual(t, large.CacheReadTokens, 0)
			assert.Greater(t, large.OutputTokens, 0)
			assert.Greater(t, large.TotalCost, 0.0)
		})
	}
}

func TestCostModel_NegativeIterationsTreatedAsZero(t *testing.T) {
	model, _ := newTestCostModel(domain.ScanResult{})
	tier, _ := config.DefaultConfig().Tier(config.TierMedium)

	estimate := model.Compute(logger.NopContext(), domain.ScanResult{}, tier, -4, "")
	assert.Zero(t, estimate.RequestedIterations)
	assert.Equal(t, 2, estimate.EffectiveIterations)
}

func TestCostModel_ModelPricing(t *testing.T) {
	tier, _ := config.DefaultConfig().Tier(config.TierLow)

	t.Run("free local model", func(t *testing.T) {
		model, _ := newTestCostModel(domain.ScanResult{})
		estimate := model.Compute(logger.NopContext(), domain.ScanResult{}, tier, 1, "ollama/llama3.2")
		assert.Equal(t, "ollama/llama3.2", estimate.Model)
		assert.Zero(t, estimate.TotalCost)
		assert.Equal(t, "free", estimate.Rates)
	})

	t.Run("unknown model falls back to default rates", func(t *testing.T) {
		model, _ := newTestCostModel(domain.ScanResult{})
		ctx, logs := logger.TestContext()

		estimate := model.Compute(ctx, domain.ScanResult{}, tier, 1, "acme/unknown")
		assert.Equal(t, config.DefaultPricingModel, estimate.Model)
		assert.Greater(t, estimate.TotalCost, 0.0)
		assert.Equal(t, "$3.00/$15.00 per MTok", estimate.Rates)
		assert.Equal(t, 1, logs.FilterMessage("no pricing for model, using default model rates").Len())
	})
}

func TestCostModel_ContextWindowWarning(t *testing.T) {
	model, _ := newTestCostModel(domain.ScanResult{})
	ctx := logger.NopContext()

	t.Run("fits", func(t *testing.T) {
		tier, _ := config.DefaultConfig().Tier(config.TierLow)
		estimate := model.Compute(ctx, domain.ScanResult{Tokens: 10000}, tier, 1, "")

		assert.Equal(t, 200000, estimate.ContextWindow)
		assert.Equal(t, 100000, estimate.FinalTurnContext)
		assert.Empty(t, estimate.ContextWarning)
	})

	t.Run("exceeds", func(t *testing.T) {
		tier, _ := config.DefaultConfig().Tier(config.TierCritical)
		estimate := model.Compute(ctx, domain.ScanResult{Tokens: 10000}, tier, 5, "")

		assert.Equal(t, 260000, estimate.FinalTurnContext)
		assert.Contains(t, estimate.ContextWarning, "260000")
		assert.Contains(t, estimate.ContextWarning, "200000")
	})
}
