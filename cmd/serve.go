package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	container "github.com/inference-gateway/costgate/internal/container"
	logger "github.com/inference-gateway/costgate/internal/logger"
	cobra "github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cost estimators as MCP tools over stdio",
	Long: `Start an MCP server on stdin/stdout. The server exposes three tools:

  estimate_cost          measure files, price the task and ask the user to approve it
  estimate_token_budget  build a token budget from declared estimates and ask for approval
  count_tokens           count the tokens of files and directories

Approvals are requested from the connected client through MCP elicitation, so the client
must support elicitation for the estimate tools to succeed. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	services, err := container.NewServiceContainer(getConfig())
	if err != nil {
		return err
	}

	server := services.NewMCPServer(version)
	if err := server.RunStdio(ctx); err != nil {
		if ctx.Err() != nil {
			logger.Info("MCP server interrupted")
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
