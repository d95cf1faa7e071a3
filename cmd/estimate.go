package cmd

import (
	"context"
	"encoding/json"
	"errors"
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
)

// errEstimateRejected makes a rejected estimate exit non-zero.
var errEstimateRejected = errors.New("estimate was not approved")

type estimateOptions struct {
	complexity string
	iterations int
	model      string
	taskName   string
	plan       string
	riskLevel  string
	jsonOutput bool
}

var estimateCmd = &cobra.Command{
	Use:   "estimate [paths...]",
	Short: "Measure files, price the task and ask for approval",
	Long: `Scan the given files and directories, count their tokens with the configured tokenizer
and price the task for a complexity tier:

  LOW       1 iteration,  2,000 output tokens per turn
  MEDIUM    2 iterations, 4,000 output tokens per turn
  HIGH      3 iterations, 8,000 output tokens per turn, 60,000 search overhead
  CRITICAL  5 iterations, 12,000 output tokens per turn, 120,000 search overhead

The estimate is shown on the terminal and must be approved before the command exits
successfully. Without a terminal the estimate is rejected unless --yes is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := estimateOptions{}
		opts.complexity, _ = cmd.Flags().GetString("complexity")
		opts.iterations, _ = cmd.Flags().GetInt("iterations")
		opts.model, _ = cmd.Flags().GetString("model")
		opts.taskName, _ = cmd.Flags().GetString("task")
		opts.plan, _ = cmd.Flags().GetString("plan")
		opts.riskLevel, _ = cmd.Flags().GetString("risk")
		opts.jsonOutput, _ = cmd.Flags().GetBool("json")
		yes, _ := cmd.Flags().GetBool("yes")

		services, err := container.NewServiceContainer(getConfig())
		if err != nil {
			return err
		}

		approver := terminal.NewApprover(os.Stdin, cmd.ErrOrStderr(), yes)
		return runEstimate(cmd.Context(), services, args, opts, approver, cmd.OutOrStdout())
	},
}

func init() {
	estimateCmd.Flags().StringP("complexity", "x", "", "complexity tier: LOW, MEDIUM, HIGH or CRITICAL (default from config)")
	estimateCmd.Flags().IntP("iterations", "n", 0, "expected number of iterations (raised to the tier minimum)")
	estimateCmd.Flags().StringP("model", "m", "", "provider/model used for pricing")
	estimateCmd.Flags().String("task", "", "task name shown in the approval prompt")
	estimateCmd.Flags().String("plan", "", "plan text shown in the approval prompt")
	estimateCmd.Flags().String("risk", "", "risk level shown in the approval prompt (default: the tier)")
	estimateCmd.Flags().BoolP("yes", "y", false, "approve without prompting")
	estimateCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(ctx context.Context, services *container.ServiceContainer, paths []string, opts estimateOptions, approver domain.Approver, out io.Writer) error {
	ctx, requestID := logger.WithRequest(ctx, "estimate")

	estimate, err := services.GetCostModel().Estimate(ctx, domain.ExactInput{
		Paths:               paths,
		Complexity:          opts.complexity,
		EstimatedIterations: opts.iterations,
		Model:               opts.model,
	})
	if err != nil {
		return err
	}

	riskLevel := opts.riskLevel
	if riskLevel == "" {
		riskLevel = estimate.Complexity
	}
	message := "Estimated cost " + formatting.FormatUSD(estimate.TotalCost)
	if opts.taskName != "" {
		message = opts.taskName + ": " + message
	}

	breakdown := formatting.FormatExactEstimate(estimate)
	outcome, err := services.NewApprovalGate(approver).Request(ctx, domain.ApprovalRequest{
		Message:   message,
		Breakdown: breakdown,
		RiskLevel: riskLevel,
		Plan:      opts.plan,
	})
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		if err := writeJSON(out, mcpserver.EstimateCostOutput{
			RequestID: requestID,
			Estimate:  estimate,
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

func writeOutcome(out io.Writer, outcome domain.ApprovalOutcome) {
	if outcome.Proceed() {
		_, _ = fmt.Fprintln(out, formatting.FormatSuccess(outcome.Instruction))
		return
	}
	_, _ = fmt.Fprintln(out, formatting.FormatWarning(outcome.Instruction))
}

func writeJSON(out io.Writer, value any) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(value); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}
