package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/inference-gateway/costgate/internal/domain"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
	logger "github.com/inference-gateway/costgate/internal/logger"
	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	zap "go.uber.org/zap"
)

// Tool names exposed to MCP clients.
const (
	ToolEstimateCost        = "estimate_cost"
	ToolEstimateTokenBudget = "estimate_token_budget"
	ToolCountTokens         = "count_tokens"
)

const riskLevelUnspecified = "unspecified"

// EstimateCostInput is the argument object of estimate_cost.
type EstimateCostInput struct {
	Paths               []string `json:"paths" jsonschema:"files and directories the task will read or modify, relative to the server working directory or absolute"`
	Complexity          string   `json:"complexity,omitempty" jsonschema:"task complexity tier: LOW, MEDIUM, HIGH or CRITICAL (default MEDIUM)"`
	EstimatedIterations int      `json:"estimated_iterations,omitempty" jsonschema:"expected number of conversation turns; raised to the tier minimum"`
	Model               string   `json:"model,omitempty" jsonschema:"provider/model used for pricing, e.g. anthropic/claude-sonnet-4-5-20250929"`
	TaskName            string   `json:"task_name,omitempty" jsonschema:"short name of the task"`
	Plan                string   `json:"plan,omitempty" jsonschema:"the plan shown to the user for approval"`
	RiskLevel           string   `json:"risk_level,omitempty" jsonschema:"risk level shown to the user; defaults to the complexity tier"`
}

// EstimateCostOutput is the structured result of estimate_cost.
type EstimateCostOutput struct {
	RequestID string                 `json:"request_id"`
	Estimate  domain.ExactEstimate   `json:"estimate"`
	Approval  domain.ApprovalOutcome `json:"approval"`
}

// EstimateTokenBudgetInput is the argument object of estimate_token_budget.
type EstimateTokenBudgetInput struct {
	TaskName                  string   `json:"task_name,omitempty" jsonschema:"short name of the task; also scanned for codebase-wide change keywords"`
	Plan                      string   `json:"plan,omitempty" jsonschema:"the plan shown to the user for approval; also scanned for risk keywords"`
	RiskLevel                 string   `json:"risk_level,omitempty" jsonschema:"risk level shown to the user"`
	EstimatedCacheReadTokens  *int     `json:"estimated_cache_read_tokens,omitempty" jsonschema:"tokens of existing context expected to be read per iteration (default 0)"`
	IDEOverheadTokens         *int     `json:"ide_overhead_tokens,omitempty" jsonschema:"context loaded automatically by the host per task (default 55000)"`
	CacheWriteTokens          *int     `json:"cache_write_tokens,omitempty" jsonschema:"tokens written to the prompt cache (default 0)"`
	InputTokens               *int     `json:"input_tokens,omitempty" jsonschema:"new uncached input tokens (default 0)"`
	OutputTokens              *int     `json:"output_tokens,omitempty" jsonschema:"generated output tokens (default 0)"`
	ToolCallCount             *int     `json:"tool_call_count,omitempty" jsonschema:"number of tool invocations, 1500 tokens each (default 0)"`
	IterationCount            *int     `json:"iteration_count,omitempty" jsonschema:"number of iterations; cache reads repeat per iteration (default 1)"`
	ContextAccumulationTokens *int     `json:"context_accumulation_tokens,omitempty" jsonschema:"flat allowance for growing conversation context (default 0)"`
	SafetyMultiplier          *float64 `json:"safety_multiplier,omitempty" jsonschema:"multiplier applied to the subtotal (default 1.4)"`
	TotalOverride             string   `json:"total_override,omitempty" jsonschema:"pre-computed total to display instead of the computed one"`
}

// EstimateTokenBudgetOutput is the structured result of estimate_token_budget.
type EstimateTokenBudgetOutput struct {
	RequestID string                 `json:"request_id"`
	Budget    domain.BudgetBreakdown `json:"budget"`
	Approval  domain.ApprovalOutcome `json:"approval"`
}

// CountTokensInput is the argument object of count_tokens.
type CountTokensInput struct {
	Paths []string `json:"paths" jsonschema:"files and directories to measure"`
}

func (in EstimateTokenBudgetInput) budgetInput() domain.BudgetInput {
	return domain.BudgetInput{
		TaskName:                  in.TaskName,
		Plan:                      in.Plan,
		CacheReadTokens:           in.EstimatedCacheReadTokens,
		IDEOverheadTokens:         in.IDEOverheadTokens,
		CacheWriteTokens:          in.CacheWriteTokens,
		InputTokens:               in.InputTokens,
		OutputTokens:              in.OutputTokens,
		ToolCallCount:             in.ToolCallCount,
		IterationCount:            in.IterationCount,
		ContextAccumulationTokens: in.ContextAccumulationTokens,
		SafetyMultiplier:          in.SafetyMultiplier,
		TotalOverride:             in.TotalOverride,
	}
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolEstimateCost,
		Description: "Measure the exact token size of the files a task will touch, price the task for the " +
			"given complexity tier and model, and ask the user to approve the cost before any work starts. " +
			"Follow the returned instruction: continue only when it says APPROVED.",
	}, s.handleEstimateCost)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: ToolEstimateTokenBudget,
		Description: "Build a token budget from your own estimates (cache reads, output, tool calls, iterations), " +
			"apply the safety multiplier and ask the user to approve it. " +
			"Follow the returned instruction: continue only when it says APPROVED.",
	}, s.handleEstimateTokenBudget)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        ToolCountTokens,
		Description: "Count the tokens of files and directories without asking for approval.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true, IdempotentHint: true},
	}, s.handleCountTokens)
}

func (s *Server) handleEstimateCost(ctx context.Context, req *mcp.CallToolRequest, in EstimateCostInput) (*mcp.CallToolResult, EstimateCostOutput, error) {
	ctx, requestID := logger.WithRequest(ctx, ToolEstimateCost)
	log := logger.L(ctx)

	estimate, err := s.costModel.Estimate(ctx, domain.ExactInput{
		Paths:               in.Paths,
		Complexity:          in.Complexity,
		EstimatedIterations: in.EstimatedIterations,
		Model:               in.Model,
	})
	if err != nil {
		log.Warn("estimate rejected", zap.Error(err))
		return nil, EstimateCostOutput{}, err
	}

	log.Info("estimate computed",
		zap.String("complexity", estimate.Complexity),
		zap.Int("tokens", estimate.MeasuredTokens),
		zap.Int("iterations", estimate.EffectiveIterations),
		zap.Float64("total_cost_usd", estimate.TotalCost))

	breakdown := formatting.FormatExactEstimate(estimate)
	riskLevel := in.RiskLevel
	if riskLevel == "" {
		riskLevel = estimate.Complexity
	}

	outcome, err := s.requestApproval(ctx, req, domain.ApprovalRequest{
		Message:   approvalMessage(in.TaskName, "Estimated cost "+formatting.FormatUSD(estimate.TotalCost)),
		Breakdown: breakdown,
		RiskLevel: riskLevel,
		Plan:      in.Plan,
	})
	if err != nil {
		return nil, EstimateCostOutput{}, err
	}

	out := EstimateCostOutput{
		RequestID: requestID,
		Estimate:  estimate,
		Approval:  outcome,
	}
	res, err := toolResult(breakdown+"\n\n"+outcome.Instruction, out)
	return res, out, err
}

func (s *Server) handleEstimateTokenBudget(ctx context.Context, req *mcp.CallToolRequest, in EstimateTokenBudgetInput) (*mcp.CallToolResult, EstimateTokenBudgetOutput, error) {
	ctx, requestID := logger.WithRequest(ctx, ToolEstimateTokenBudget)
	log := logger.L(ctx)

	budget := s.budget.Calculate(in.budgetInput())
	log.Info("token budget computed",
		zap.Int("pre_multiplier_total", budget.PreMultiplierTotal),
		zap.Int("final_total", budget.FinalTotal),
		zap.Bool("risk_triggered", budget.Warning != ""))

	breakdown := formatting.FormatBudgetBreakdown(budget, in.TaskName)
	riskLevel := in.RiskLevel
	if riskLevel == "" {
		riskLevel = riskLevelUnspecified
	}

	outcome, err := s.requestApproval(ctx, req, domain.ApprovalRequest{
		Message:   approvalMessage(in.TaskName, "Estimated budget "+budget.DisplayTotal+" tokens"),
		Breakdown: breakdown,
		RiskLevel: riskLevel,
		Plan:      in.Plan,
	})
	if err != nil {
		return nil, EstimateTokenBudgetOutput{}, err
	}

	out := EstimateTokenBudgetOutput{
		RequestID: requestID,
		Budget:    budget,
		Approval:  outcome,
	}
	res, err := toolResult(breakdown+"\n\n"+outcome.Instruction, out)
	return res, out, err
}

func (s *Server) handleCountTokens(ctx context.Context, _ *mcp.CallToolRequest, in CountTokensInput) (*mcp.CallToolResult, domain.ScanResult, error) {
	ctx, _ = logger.WithRequest(ctx, ToolCountTokens)

	result := s.scanner.Scan(ctx, in.Paths...)
	res, err := toolResult(formatting.FormatScanResult(result), result)
	return res, result, err
}

func (s *Server) requestApproval(ctx context.Context, req *mcp.CallToolRequest, approval domain.ApprovalRequest) (domain.ApprovalOutcome, error) {
	var session *mcp.ServerSession
	if req != nil {
		session = req.Session
	}
	gate := s.gateFor(session)
	return gate.Request(ctx, approval)
}

func approvalMessage(taskName, summary string) string {
	if taskName == "" {
		return summary + ". Approve to let the agent proceed."
	}
	return fmt.Sprintf("%s: %s. Approve to let the agent proceed.", taskName, summary)
}

// toolResult returns the human-readable text and the JSON rendering of out as two
// text blocks.
func toolResult(text string, out any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
			&mcp.TextContent{Text: string(data)},
		},
	}, nil
}
