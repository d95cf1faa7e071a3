package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	container "github.com/inference-gateway/costgate/internal/container"
	domain "github.com/inference-gateway/costgate/internal/domain"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
	logger "github.com/inference-gateway/costgate/internal/logger"
	mcpserver "github.com/inference-gateway/costgate/internal/mcpserver"
	terminal "github.com/inference-gateway/costgate/internal/terminal"
	cobra "github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

type budgetOptions struct {
	riskLevel  string
	jsonOutput bool
}

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Build a token budget from declared estimates and ask for approval",
	Long: `Compute a token budget from your own estimates without reading any files.

Cache reads are repeated once per iteration. IDE overhead, cache writes, input and output
are counted once. Each tool call adds 1,500 tokens. The subtotal is multiplied by the
safety multiplier. Tasks that mention refactoring or codebase-wide searches with a cache
read estimate below 100,000 tokens get their cache reads tripled and a warning.

Flags that are not given take the configured defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := budgetInputFromFlags(cmd.Flags())

		opts := budgetOptions{}
		opts.riskLevel, _ = cmd.Flags().GetString("risk")
		opts.jsonOutput, _ = cmd.Flags().GetBool("json")
		yes, _ := cmd.Flags().GetBool("yes")

		services, err := container.NewServiceContainer(getConfig())
		if err != nil {
			return err
		}

		approver := terminal.NewApprover(os.Stdin, cmd.ErrOrStderr(), yes)
		return runBudget(cmd.Context(), services, input, opts, approver, cmd.OutOrStdout())
	},
}

func init() {
	budgetCmd.Flags().String("task", "", "task name; also checked for risk keywords")
	budgetCmd.Flags().String("plan", "", "plan text; also checked for risk keywords")
	budgetCmd.Flags().String("risk", "", "risk level shown in the approval prompt")
	budgetCmd.Flags().Int("cache-read", 0, "estimated cache read tokens per iteration")
	budgetCmd.Flags().Int("ide-overhead", 0, "context loaded automatically by the host (default from config)")
	budgetCmd.Flags().Int("cache-write", 0, "cache write tokens")
	budgetCmd.Flags().Int("input", 0, "uncached input tokens")
	budgetCmd.Flags().Int("output", 0, "output tokens")
	budgetCmd.Flags().Int("tool-calls", 0, "number of tool calls")
	budgetCmd.Flags().Int("iterations", 0, "number of iterations (default from config)")
	budgetCmd.Flags().Int("context-accumulation", 0, "flat allowance for conversation growth")
	budgetCmd.Flags().Float64("safety-multiplier", 0, "multiplier applied to the subtotal (default from config)")
	budgetCmd.Flags().String("total-override", "", "total to display instead of the computed one")
	budgetCmd.Flags().BoolP("yes", "y", false, "approve without prompting")
	budgetCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(budgetCmd)
}

// budgetInputFromFlags only sets the numeric fields whose flags were given, so absent
// values fall through to the configured defaults.
func budgetInputFromFlags(flags *pflag.FlagSet) domain.BudgetInput {
	input := domain.BudgetInput{}
	input.TaskName, _ = flags.GetString("task")
	input.Plan, _ = flags.GetString("plan")
	input.TotalOverride, _ = flags.GetString("total-override")

	intFlag := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}

	input.CacheReadTokens = intFlag("cache-read")
	input.IDEOverheadTokens = intFlag("ide-overhead")
	input.CacheWriteTokens = intFlag("cache-write")
	input.InputTokens = intFlag("input")
	input.OutputTokens = intFlag("output")
	input.ToolCallCount = intFlag("tool-calls")
	input.IterationCount = intFlag("iterations")
	input.ContextAccumulationTokens = intFlag("context-accumulation")

	if flags.Changed("safety-multiplier") {
		v, _ := flags.GetFloat64("safety-multiplier")
		input.SafetyMultiplier = &v
	}

	return input
}

func runBudget(ctx context.Context, services *container.ServiceContainer, input domain.BudgetInput, opts budgetOptions, approver domain.Approver, out io.Writer) error {
	ctx, requestID := logger.WithRequest(ctx, "budget")

	budget := services.GetBudgetCalculator().Calculate(input)
	breakdown := formatting.FormatBudgetBreakdown(budget, input.TaskName)

	riskLevel := opts.riskLevel
	if riskLevel == "" {
		riskLevel = "unspecified"
	}
	message := "Estimated budget " + budget.DisplayTotal + " tokens"
	if input.TaskName != "" {
		message = input.TaskName + ": " + message
	}

	outcome, err := services.NewApprovalGate(approver).Request(ctx, domain.ApprovalRequest{
		Message:   message,
		Breakdown: breakdown,
		RiskLevel: riskLevel,
		Plan:      input.Plan,
	})
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		if err := writeJSON(out, mcpserver.EstimateTokenBudgetOutput{
			RequestID: requestID,
			Budget:    budget,
			Approval:  outcome,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(out, breakdown)
		_, _ = fmt.Fprintln(out)
		writeOutcome(out, outcome)
	}

	if !outcome.Proceed() {
		return errEstimateRejected
	}
	return nil
}
