package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
	logger "github.com/inference-gateway/costgate/internal/logger"
	zap "go.uber.org/zap"
)

// CostModel prices a task from the exact token volume of the files it will touch.
type CostModel struct {
	config  *config.Config
	scanner domain.Scanner
	pricing domain.PricingService
}

// NewCostModel creates the exact-measurement cost model
func NewCostModel(cfg *config.Config, scanner domain.Scanner, pricing domain.PricingService) *CostModel {
	return &CostModel{
		config:  cfg,
		scanner: scanner,
		pricing: pricing,
	}
}

// Estimate scans the input paths and prices the resulting context volume.
func (m *CostModel) Estimate(ctx context.Context, in domain.ExactInput) (domain.ExactEstimate, error) {
	tier, err := m.resolveTier(in.Complexity)
	if err != nil {
		return domain.ExactEstimate{}, err
	}

	scan := m.scanner.Scan(ctx, in.Paths...)
	return m.Compute(ctx, scan, tier, in.EstimatedIterations, in.Model), nil
}

// Compute applies the tier floors, the per-turn history growth and the new/cache-read
// split to an already measured scan result. Requested iterations are clamped to
// [0, MaxDeclaredCount] and token totals saturate at math.MaxInt64.
func (m *CostModel) Compute(ctx context.Context, scan domain.ScanResult, tier config.TierConfig, requestedIterations int, model string) domain.ExactEstimate {
	est := m.config.Estimator

	requestedIterations = clampCount(requestedIterations)
	iterations := max(requestedIterations, tier.MinIterations)

	n := float64(iterations)
	growth := float64(est.HistoryGrowthTokens)
	baseContext := saturate(float64(scan.Tokens) + float64(tier.SearchOverheadTokens) + float64(est.IDEOverheadTokens))
	totalInput := saturate(n*float64(baseContext) + growth*n*(n-1)/2)

	newInput := saturate(float64(totalInput) * est.NewInputRatio)
	cacheRead := totalInput - newInput
	output := saturate(n * float64(tier.OutputTokensPerTurn))

	model, rates := m.rates(ctx, model)
	finalTurn := saturate(float64(baseContext) + (n-1)*growth)
	window := config.ContextWindowFor(model)
	newInputCost := m.pricing.Cost(newInput, rates.Input)
	cacheReadCost := m.pricing.Cost(cacheRead, rates.CacheRead)
	outputCost := m.pricing.Cost(output, rates.Output)

	return domain.ExactEstimate{
		Model:               model,
		Complexity:          tier.Name,
		Scan:                scan,
		MeasuredTokens:      scan.Tokens,
		SearchOverhead:      tier.SearchOverheadTokens,
		IDEOverhead:         est.IDEOverheadTokens,
		RequestedIterations: requestedIterations,
		EffectiveIterations: iterations,
		BaseContext:         baseContext,
		HistoryGrowth:       est.HistoryGrowthTokens,
		TotalProcessedInput: totalInput,
		NewInputTokens:      newInput,
		CacheReadTokens:     cacheRead,
		OutputTokens:        output,
		NewInputCost:        roundTo(newInputCost, 3),
		CacheReadCost:       roundTo(cacheReadCost, 3),
		OutputCost:          roundTo(outputCost, 3),
		TotalCost:           roundTo(newInputCost+cacheReadCost+outputCost, 3),
		Rates:               m.pricing.FormatModelPricing(model),
		FinalTurnContext:    finalTurn,
		ContextWindow:       window,
		ContextWarning:      contextWarning(finalTurn, window),
	}
}

func contextWarning(finalTurn, window int) string {
	if finalTurn <= window {
		return ""
	}
	return fmt.Sprintf("the last turn needs about %d tokens of context but the model window is %d tokens; expect compaction or a split task", finalTurn, window)
}

// resolveTier maps the caller's tier name onto the tier table. An empty name selects
// the configured default.
func (m *CostModel) resolveTier(name string) (config.TierConfig, error) {
	if strings.TrimSpace(name) == "" {
		name = m.config.Estimator.DefaultComplexity
	}
	tier, ok := m.config.Tier(name)
	if !ok {
		return config.TierConfig{}, &domain.UnknownTierError{Tier: name, Known: m.config.TierNames()}
	}
	return tier, nil
}

// rates returns the model actually priced and its rates. Unknown models are priced
// as the default model so an estimate is never silently free.
func (m *CostModel) rates(ctx context.Context, model string) (string, domain.ModelRates) {
	if model == "" {
		model = config.DefaultPricingModel
	}
	if rates, ok := m.pricing.Rates(model); ok {
		return model, rates
	}

	logger.L(ctx).Warn("no pricing for model, using default model rates",
		zap.String("model", model),
		zap.String("default_model", config.DefaultPricingModel))
	rates, _ := m.pricing.Rates(config.DefaultPricingModel)
	return config.DefaultPricingModel, rates
}

func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}
