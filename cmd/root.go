package cmd

import (
	"fmt"
	"os"

	config "github.com/inference-gateway/costgate/config"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
	logger "github.com/inference-gateway/costgate/internal/logger"
	cobra "github.com/spf13/cobra"
)

// appConfig is loaded once per process by initConfig.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "costgate",
	Short: "Estimate the token cost of an agent task and gate it on approval",
	Long: `costgate measures the files an AI coding agent is about to work on, turns them into a
token and dollar estimate, and asks a human to approve the cost before the agent continues.

Run 'costgate serve' to expose the estimators as MCP tools over stdio, or use the
estimate, budget and scan commands directly from a terminal.`,
	SilenceUsage: true,
}

func Execute() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, formatting.FormatErrorCLI(fmt.Sprintf("Error: %v", err)))
		logger.Close()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", fmt.Sprintf("config file (default is %s)", config.DefaultConfigPath))
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configPath, _ := rootCmd.PersistentFlags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	appConfig = cfg
	logger.Init(verbose, cfg)
}

// getConfig returns the loaded configuration, or the defaults when no command
// initialization ran.
func getConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}
