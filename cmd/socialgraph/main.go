// Package main provides the socialgraph CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "socialgraph",
	Short: "Multi-user social network graph analyzer",
	Long: `socialgraph builds directed graphs from per-user social network
export data, merges them into a combined network, and computes
comparative metrics: similarity, bridge nodes, and influence scores.

Configuration is layered: socialgraph.toml, then SOCIALGRAPH_* environment
variables, then flags.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase log verbosity (-v debug, -vv trace)")
	rootCmd.PersistentFlags().String("verbosity", "", "Log level (trace, debug, info, warn, error)")
}

// addPipelineFlags registers the flags shared by commands that run the
// analysis pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("users", "u", nil, "Users to analyze as name=dir entries (repeatable)")
	cmd.Flags().StringP("output", "o", "outputs", "Directory for reports and statistics")
	cmd.Flags().Int("min-common", 2, "Minimum bridge score for the common-connections view")
}
