package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/hh-matcher/internal/matching"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the built-in matching tables version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Fprintf(stdout, "%s version: %s (matching tables %s)\n", app, version, matching.TablesVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
