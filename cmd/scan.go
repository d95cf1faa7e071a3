package cmd

import (
	"context"
	"fmt"
	"io"

	container "github.com/inference-gateway/costgate/internal/container"
	domain "github.com/inference-gateway/costgate/internal/domain"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
	logger "github.com/inference-gateway/costgate/internal/logger"
	cobra "github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan [paths...]",
	Short: "Count the tokens of files and directories",
	Long: `Walk the given files and directories and count their tokens with the configured tokenizer.
Binary files and files that cannot be read are reported as skipped. Directories named in
scanner.ignore_dirs (node_modules, build, dist, target, ...) are not counted at all, and
this includes a target itself: running scan with no arguments inside a directory called
build reports 0 tokens. Defaults to the current directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			args = []string{"."}
		}
		jsonOutput, _ := cmd.Flags().GetBool("json")

		services, err := container.NewServiceContainer(getConfig())
		if err != nil {
			return err
		}
		return runScan(cmd.Context(), services.GetScanner(), args, jsonOutput, cmd.OutOrStdout())
	},
}

func init() {
	scanCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(scanCmd)
}

func runScan(ctx context.Context, scanner domain.Scanner, paths []string, jsonOutput bool, out io.Writer) error {
	ctx, _ = logger.WithRequest(ctx, "scan")

	result := scanner.Scan(ctx, paths...)
	if jsonOutput {
		return writeJSON(out, result)
	}

	_, _ = fmt.Fprintln(out, formatting.FormatScanResult(result))
	return nil
}
