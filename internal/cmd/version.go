package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runVersion(cmd *cobra.Command, args []string) error {
	if structuredOutputRequested() {
		return printStructured(map[string]interface{}{
			"version": version,
			"commit":  commit,
			"date":    date,
		})
	}
	fmt.Fprintf(stdoutFromContext(cmd.Context()), "org version %s (commit: %s, built: %s)\n", version, commit, date)
	return nil
}
