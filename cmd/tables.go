package cmd

import (
	"encoding/json"
	"log"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Print the scoring weights and lookup tables in effect",
	Run: func(_ *cobra.Command, _ []string) {
		config, err := getConfig()
		if err != nil {
			log.Fatalf("getting a config: %s", err)
		}

		scorer := newScorer(config)

		pretty, err := json.MarshalIndent(map[string]interface{}{
			"weights": scorer.Weights(),
			"tables":  scorer.Tables(),
		}, "", "  ")
		if err != nil {
			log.Fatalf("encoding tables: %s", err)
		}

		stdout.Write(append(pretty, '\n'))
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
