package cmd

import (
	"fmt"
	"io"
	"os"

	config "github.com/inference-gateway/costgate/config"
	formatting "github.com/inference-gateway/costgate/internal/formatting"
	cobra "github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the costgate configuration",
	Long:  `Create or inspect the configuration file that holds tiers, pricing and scanner settings.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration file. Existing files are left alone unless
--overwrite is set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		overwrite, _ := cmd.Flags().GetBool("overwrite")
		configPath, _ := cmd.Flags().GetString("path")
		return initConfigFile(configPath, overwrite, cmd.OutOrStdout())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(getConfig(), cmd.OutOrStdout())
	},
}

func init() {
	configInitCmd.Flags().Bool("overwrite", false, "Overwrite existing configuration file")
	configInitCmd.Flags().String("path", config.DefaultConfigPath, "where to write the configuration file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfigFile(path string, overwrite bool, out io.Writer) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file %s already exists (use --overwrite to replace)", path)
		}
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	_, _ = fmt.Fprintln(out, formatting.FormatSuccess("Created "+path))
	return nil
}

func showConfig(cfg *config.Config, out io.Writer) error {
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
