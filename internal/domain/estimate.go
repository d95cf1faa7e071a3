package domain

// ExactInput drives the exact-measurement estimate.
type ExactInput struct {
	Paths               []string `json:"paths"`
	Complexity          string   `json:"complexity"`
	EstimatedIterations int      `json:"estimated_iterations"`
	Model               string   `json:"model,omitempty"`
}

// ExactEstimate is the priced result of an exact-measurement estimate.
type ExactEstimate struct {
	Model               string     `json:"model"`
	Complexity          string     `json:"complexity"`
	Scan                ScanResult `json:"scan"`
	MeasuredTokens      int        `json:"measured_tokens"`
	SearchOverhead      int        `json:"search_overhead_tokens"`
	IDEOverhead         int        `json:"ide_overhead_tokens"`
	RequestedIterations int        `json:"requested_iterations"`
	EffectiveIterations int        `json:"effective_iterations"`
	BaseContext         int        `json:"base_context_tokens"`
	HistoryGrowth       int        `json:"history_growth_tokens"`
	TotalProcessedInput int        `json:"total_processed_input_tokens"`
	NewInputTokens      int        `json:"new_input_tokens"`
	CacheReadTokens     int        `json:"cache_read_tokens"`
	OutputTokens        int        `json:"output_tokens"`
	NewInputCost        float64    `json:"new_input_cost_usd"`
	CacheReadCost       float64    `json:"cache_read_cost_usd"`
	OutputCost          float64    `json:"output_cost_usd"`
	TotalCost           float64    `json:"total_cost_usd"`
	Rates               string     `json:"rates"`
	FinalTurnContext    int        `json:"final_turn_context_tokens"`
	ContextWindow       int        `json:"context_window_tokens"`
	ContextWarning      string     `json:"context_warning,omitempty"`
}

// BudgetInput carries caller-declared heuristic estimates. Nil fields take the
// configured defaults.
type BudgetInput struct {
	TaskName                  string   `json:"task_name,omitempty"`
	Plan                      string   `json:"plan,omitempty"`
	CacheReadTokens           *int     `json:"estimated_cache_read_tokens,omitempty"`
	IDEOverheadTokens         *int     `json:"ide_overhead_tokens,omitempty"`
	CacheWriteTokens          *int     `json:"cache_write_tokens,omitempty"`
	InputTokens               *int     `json:"input_tokens,omitempty"`
	OutputTokens              *int     `json:"output_tokens,omitempty"`
	ToolCallCount             *int     `json:"tool_call_count,omitempty"`
	IterationCount            *int     `json:"iteration_count,omitempty"`
	ContextAccumulationTokens *int     `json:"context_accumulation_tokens,omitempty"`
	SafetyMultiplier          *float64 `json:"safety_multiplier,omitempty"`
	TotalOverride             string   `json:"total_override,omitempty"`
}

// BudgetParams is BudgetInput after default substitution: every field is set and
// non-negative.
type BudgetParams struct {
	TaskName                  string
	Plan                      string
	CacheReadTokens           int
	IDEOverheadTokens         int
	CacheWriteTokens          int
	InputTokens               int
	OutputTokens              int
	ToolCallCount             int
	IterationCount            int
	ContextAccumulationTokens int
	SafetyMultiplier          float64
	// RequestedSafetyMultiplier is the caller's value when it was below 1 and raised.
	RequestedSafetyMultiplier float64
	TotalOverride             string
}

// RiskAssessment is the outcome of keyword risk classification.
type RiskAssessment struct {
	Rule       string  `json:"rule,omitempty"`
	Multiplier float64 `json:"multiplier"`
	Warning    string  `json:"warning,omitempty"`
}

// Triggered reports whether a rule inflated the estimate.
func (r RiskAssessment) Triggered() bool {
	return r.Warning != ""
}

// BudgetBreakdown is the heuristic-mode result, suitable for verbatim display.
type BudgetBreakdown struct {
	DeclaredCacheRead    int     `json:"declared_cache_read_tokens"`
	RiskMultiplier       float64 `json:"risk_multiplier"`
	Iterations           int     `json:"iterations"`
	CacheReadTotal       int     `json:"cache_read_tokens"`
	IDEOverhead          int     `json:"ide_overhead_tokens"`
	CacheWrite           int     `json:"cache_write_tokens"`
	Input                int     `json:"input_tokens"`
	Output               int     `json:"output_tokens"`
	ToolCalls            int     `json:"tool_calls"`
	ToolCallOverhead     int     `json:"tool_call_overhead_tokens"`
	ContextAccumulation  int     `json:"context_accumulation_tokens"`
	PreMultiplierTotal   int     `json:"pre_multiplier_total"`
	SafetyMultiplier     float64 `json:"safety_multiplier"`
	SafetyRequested      float64 `json:"safety_multiplier_requested,omitempty"`
	FinalTotal           int     `json:"final_total"`
	Warning              string  `json:"warning,omitempty"`
	DisplayTotal         string  `json:"display_total"`
	TotalOverrideApplied bool    `json:"total_override_applied"`
}
