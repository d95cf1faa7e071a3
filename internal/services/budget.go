package services

import (
	"math"
	"strings"

	config "github.com/inference-gateway/costgate/config"
	domain "github.com/inference-gateway/costgate/internal/domain"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
)

// BudgetCalculator computes the heuristic token budget from caller-declared estimates.
// It performs no I/O.
type BudgetCalculator struct {
	defaults config.BudgetConfig
	risk     *RiskClassifier
}

// NewBudgetCalculator creates a heuristic budget calculator
func NewBudgetCalculator(est config.EstimatorConfig) *BudgetCalculator {
	return &BudgetCalculator{
		defaults: est.Budget,
		risk:     NewRiskClassifier(est.Risk),
	}
}

// FillDefaults substitutes configured defaults for absent fields and clamps the rest
// into [0, MaxDeclaredCount], so Compute always works on a complete, bounded parameter
// set. A safety multiplier below 1 is raised to 1 and the requested value is kept for
// display.
func (b *BudgetCalculator) FillDefaults(in domain.BudgetInput) domain.BudgetParams {
	safety := b.defaults.SafetyMultiplier
	var requested float64
	if in.SafetyMultiplier != nil && *in.SafetyMultiplier > 0 && !math.IsInf(*in.SafetyMultiplier, 0) {
		safety = *in.SafetyMultiplier
		if safety < 1 {
			requested = safety
			safety = 1
		}
	}

	return domain.BudgetParams{
		TaskName:                  strings.TrimSpace(in.TaskName),
		Plan:                      strings.TrimSpace(in.Plan),
		CacheReadTokens:           intOrDefault(in.CacheReadTokens, 0),
		IDEOverheadTokens:         intOrDefault(in.IDEOverheadTokens, b.defaults.IDEOverheadTokens),
		CacheWriteTokens:          intOrDefault(in.CacheWriteTokens, 0),
		InputTokens:               intOrDefault(in.InputTokens, 0),
		OutputTokens:              intOrDefault(in.OutputTokens, 0),
		ToolCallCount:             intOrDefault(in.ToolCallCount, 0),
		IterationCount:            intOrDefault(in.IterationCount, b.defaults.Iterations),
		ContextAccumulationTokens: intOrDefault(in.ContextAccumulationTokens, 0),
		SafetyMultiplier:          safety,
		RequestedSafetyMultiplier: requested,
		TotalOverride:             strings.TrimSpace(in.TotalOverride),
	}
}

// Calculate fills defaults and computes the breakdown.
func (b *BudgetCalculator) Calculate(in domain.BudgetInput) domain.BudgetBreakdown {
	return b.Compute(b.FillDefaults(in))
}

// Compute is the budget arithmetic over complete parameters. The total override only
// changes DisplayTotal; every numeric field is always computed.
func (b *BudgetCalculator) Compute(p domain.BudgetParams) domain.BudgetBreakdown {
	risk := b.risk.Classify(p.TaskName, p.Plan, p.CacheReadTokens)

	cacheRead := saturate(float64(p.CacheReadTokens) * risk.Multiplier * float64(p.IterationCount))
	toolOverhead := saturate(float64(p.ToolCallCount) * float64(b.defaults.ToolCallOverheadTokens))

	pre := saturate(float64(cacheRead) +
		float64(p.IDEOverheadTokens) +
		float64(p.CacheWriteTokens) +
		float64(p.InputTokens) +
		float64(p.OutputTokens) +
		float64(toolOverhead) +
		float64(p.ContextAccumulationTokens))
	final := saturate(float64(pre) * p.SafetyMultiplier)

	breakdown := domain.BudgetBreakdown{
		DeclaredCacheRead:   p.CacheReadTokens,
		RiskMultiplier:      risk.Multiplier,
		Iterations:          p.IterationCount,
		CacheReadTotal:      cacheRead,
		IDEOverhead:         p.IDEOverheadTokens,
		CacheWrite:          p.CacheWriteTokens,
		Input:               p.InputTokens,
		Output:              p.OutputTokens,
		ToolCalls:           p.ToolCallCount,
		ToolCallOverhead:    toolOverhead,
		ContextAccumulation: p.ContextAccumulationTokens,
		PreMultiplierTotal:  pre,
		SafetyMultiplier:    p.SafetyMultiplier,
		SafetyRequested:     p.RequestedSafetyMultiplier,
		FinalTotal:          final,
		Warning:             risk.Warning,
		DisplayTotal:        formatting.FormatTokens(final),
	}

	if p.TotalOverride != "" {
		breakdown.DisplayTotal = p.TotalOverride
		breakdown.TotalOverrideApplied = true
	}

	return breakdown
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return clampCount(fallback)
	}
	return clampCount(*value)
}
