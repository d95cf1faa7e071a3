package config

// EstimatorConfig holds the constants of both cost model modes.
type EstimatorConfig struct {
	// DefaultComplexity is used when a caller omits the tier.
	DefaultComplexity string `yaml:"default_complexity" mapstructure:"default_complexity"`

	// IDEOverheadTokens is the per-turn project index/IDE context of exact mode.
	IDEOverheadTokens int `yaml:"ide_overhead_tokens" mapstructure:"ide_overhead_tokens"`

	// HistoryGrowthTokens is added to the context for each previous turn.
	HistoryGrowthTokens int `yaml:"history_growth_tokens" mapstructure:"history_growth_tokens"`

	// NewInputRatio is the share of processed input billed at the full input rate;
	// the remainder is billed as cache reads.
	NewInputRatio float64 `yaml:"new_input_ratio" mapstructure:"new_input_ratio"`

	Tiers  []TierConfig `yaml:"tiers" mapstructure:"tiers"`
	Budget BudgetConfig `yaml:"budget" mapstructure:"budget"`
	Risk   RiskConfig   `yaml:"risk" mapstructure:"risk"`
}

// TierConfig fixes the floors of one complexity tier.
type TierConfig struct {
	Name                 string `yaml:"name" mapstructure:"name"`
	MinIterations        int    `yaml:"min_iterations" mapstructure:"min_iterations"`
	OutputTokensPerTurn  int    `yaml:"output_tokens_per_turn" mapstructure:"output_tokens_per_turn"`
	SearchOverheadTokens int    `yaml:"search_overhead_tokens" mapstructure:"search_overhead_tokens"`
}

// BudgetConfig holds the defaults substituted into heuristic-mode inputs.
type BudgetConfig struct {
	IDEOverheadTokens      int     `yaml:"ide_overhead_tokens" mapstructure:"ide_overhead_tokens"`
	SafetyMultiplier       float64 `yaml:"safety_multiplier" mapstructure:"safety_multiplier"`
	Iterations             int     `yaml:"iterations" mapstructure:"iterations"`
	ToolCallOverheadTokens int     `yaml:"tool_call_overhead_tokens" mapstructure:"tool_call_overhead_tokens"`
}

// RiskConfig configures keyword-triggered cache-read inflation.
type RiskConfig struct {
	// CacheReadThreshold: rules only fire when the declared cache read is below it.
	CacheReadThreshold int        `yaml:"cache_read_threshold" mapstructure:"cache_read_threshold"`
	Rules              []RiskRule `yaml:"rules" mapstructure:"rules"`
}

// RiskRule maps trigger phrases to a cache-read multiplier and a warning.
type RiskRule struct {
	Name       string   `yaml:"name" mapstructure:"name"`
	Phrases    []string `yaml:"phrases" mapstructure:"phrases"`
	Multiplier float64  `yaml:"multiplier" mapstructure:"multiplier"`
	Warning    string   `yaml:"warning" mapstructure:"warning"`
}

// Complexity tier names.
const (
	TierLow      = "LOW"
	TierMedium   = "MEDIUM"
	TierHigh     = "HIGH"
	TierCritical = "CRITICAL"
)

// GetDefaultEstimatorConfig returns the built-in estimator constants.
func GetDefaultEstimatorConfig() EstimatorConfig {
	return EstimatorConfig{
		DefaultComplexity:   TierMedium,
		IDEOverheadTokens:   90000,
		HistoryGrowthTokens: 10000,
		NewInputRatio:       0.30,
		Tiers: []TierConfig{
			{Name: TierLow, MinIterations: 1, OutputTokensPerTurn: 2000, SearchOverheadTokens: 0},
			{Name: TierMedium, MinIterations: 2, OutputTokensPerTurn: 4000, SearchOverheadTokens: 0},
			{Name: TierHigh, MinIterations: 3, OutputTokensPerTurn: 8000, SearchOverheadTokens: 60000},
			{Name: TierCritical, MinIterations: 5, OutputTokensPerTurn: 12000, SearchOverheadTokens: 120000},
		},
		Budget: BudgetConfig{
			IDEOverheadTokens:      55000,
			SafetyMultiplier:       1.4,
			Iterations:             1,
			ToolCallOverheadTokens: 1500,
		},
		Risk: RiskConfig{
			CacheReadThreshold: 100000,
			Rules: []RiskRule{
				{
					Name: "codebase-wide change",
					Phrases: []string{
						"refactor",
						"extract",
						"share",
						"common",
						"duplicate",
						"dedupe",
						"codebase search",
						"search the codebase",
						"across the codebase",
					},
					Multiplier: 3,
					Warning:    "Task looks like a codebase-wide change; cache read estimate was multiplied to account for searching related files.",
				},
			},
		},
	}
}
