package cmd

import (
	"fmt"

	cobra "github.com/spf13/cobra"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Display version information for costgate.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "costgate version %s\n", version)
		_, _ = fmt.Fprintf(out, "commit: %s\n", commit)
		_, _ = fmt.Fprintf(out, "built at: %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
