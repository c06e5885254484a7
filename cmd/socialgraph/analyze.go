package main

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ritzau/socialgraph/pkg/output"
	"github.com/ritzau/socialgraph/pkg/report"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addPipelineFlags(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full analysis and write reports",
	Long: `Load every configured user's export data, build per-user and
combined graphs, run the cross-user queries, and write the text report
and CSV exports to the output directory.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	result, err := runPipeline(cfg)
	if err != nil {
		return err
	}

	reportPath, err := report.Generate(result, filepath.Join(cfg.Output, "reports"))
	if err != nil {
		return err
	}
	exports, err := report.ExportCSV(result, filepath.Join(cfg.Output, "statistics"))
	if err != nil {
		return err
	}

	output.PrintSummary(result)

	fmt.Printf("\nReport: %s\n", reportPath)
	names := make([]string, 0, len(exports))
	for name := range exports {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("Export %s: %s\n", name, exports[name])
	}
	return nil
}
