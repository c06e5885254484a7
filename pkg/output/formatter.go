// Package output prints analysis summaries to the console.
package output

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/ritzau/socialgraph/pkg/analyzer"
)

// PrintSummary prints a colorized run summary to stdout.
func PrintSummary(result *analyzer.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	bold.Println("Social Graph Analyzer - Run Summary")
	bold.Println("===================================")
	fmt.Printf("Run:   %s\n", result.RunID)
	fmt.Printf("Users: %d analyzed\n", len(result.Usernames))
	fmt.Printf("Graph: %d nodes, %d edges combined\n", result.Combined.NodeCount(), result.Combined.EdgeCount())
	fmt.Println()

	for _, username := range result.Usernames {
		a := result.Analyses[username]
		cyan.Printf("  %s\n", username)
		fmt.Printf("    followers=%d following=%d mutual=%d influence=%.1f\n",
			a.Basic.FollowersCount, a.Basic.FollowingCount,
			a.Basic.MutualFollows, a.Influence.InfluenceScore)
	}
	fmt.Println()

	conn := result.Connections
	if conn == nil {
		yellow.Println("No cross-user analysis (fewer than 2 users loaded)")
		return
	}

	if len(conn.Bridges) == 0 {
		yellow.Println("Bridge nodes: none found")
	} else {
		green.Printf("Bridge nodes: %d identified\n", len(conn.Bridges))
		for i, bridge := range conn.Bridges {
			if i >= 5 {
				break
			}
			fmt.Printf("  %s (shared by %d users)\n", bridge.ID, bridge.Score)
		}
	}

	if sim := conn.Similarity; sim != nil && sim.Dim() > 1 {
		a, b, v := sim.MostSimilarPair()
		fmt.Printf("Average similarity: %.1f%%\n", sim.MeanSimilarity()*100)
		fmt.Printf("Most similar pair:  %s & %s (%.1f%%)\n", a, b, v*100)
	}
}
