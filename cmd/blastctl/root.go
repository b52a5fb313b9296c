package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "blastctl",
	Short: "Offline tooling for the rice leaf blast detection service",
	Long: `blastctl bundles the offline side of the leaf blast system:
single-image inference, the train/evaluate pipeline, and the
satellite NDVI risk extraction that feeds the interactive API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(extractRiskCmd)
}
