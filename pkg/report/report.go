// Package report renders analysis results as a text report and CSV
// exports for offline inspection.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ritzau/socialgraph/pkg/analyzer"
)

// Generate writes the comprehensive text report into outputDir and
// returns the file path.
func Generate(result *analyzer.Result, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("analysis_report_%s.txt", result.Timestamp.Format("20060102_150405")))

	var b strings.Builder
	writeHeader(&b, result)
	writeUserProfiles(&b, result)
	writeConnectionAnalysis(&b, result)
	writeSimilarityAnalysis(&b, result)
	writeRecommendations(&b, result)

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

func rule(b *strings.Builder, ch string, n int) {
	b.WriteString(strings.Repeat(ch, n))
	b.WriteString("\n")
}

func writeHeader(b *strings.Builder, result *analyzer.Result) {
	rule(b, "=", 80)
	b.WriteString("SOCIAL NETWORK ANALYSIS REPORT\n")
	rule(b, "=", 80)
	b.WriteString("\n")
	fmt.Fprintf(b, "Run ID:          %s\n", result.RunID)
	fmt.Fprintf(b, "Date:            %s\n", result.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(b, "Users analyzed:  %s\n", strings.Join(result.Usernames, ", "))
	fmt.Fprintf(b, "Combined nodes:  %d\n", result.Combined.NodeCount())
	fmt.Fprintf(b, "Combined edges:  %d\n", result.Combined.EdgeCount())
	b.WriteString("\n")
}

func writeUserProfiles(b *strings.Builder, result *analyzer.Result) {
	b.WriteString("USER PROFILES\n")
	rule(b, "=", 50)

	for _, username := range result.Usernames {
		analysis := result.Analyses[username]
		basic := analysis.Basic
		interaction := analysis.Interaction
		influence := analysis.Influence

		fmt.Fprintf(b, "\n%s\n", strings.ToUpper(username))
		rule(b, "-", 30)

		b.WriteString("Network:\n")
		fmt.Fprintf(b, "  Followers:       %d\n", basic.FollowersCount)
		fmt.Fprintf(b, "  Following:       %d\n", basic.FollowingCount)
		fmt.Fprintf(b, "  Mutual follows:  %d\n", basic.MutualFollows)
		fmt.Fprintf(b, "  Follow ratio:    %.2f\n", basic.FollowRatio)
		fmt.Fprintf(b, "  Density:         %.3f\n", analysis.Network["density"])

		b.WriteString("Interactions:\n")
		fmt.Fprintf(b, "  Liked authors:   %d\n", interaction.TotalLikedAuthors)
		fmt.Fprintf(b, "  Story authors:   %d\n", interaction.TotalStoryInteractions)
		fmt.Fprintf(b, "  Total given:     %d\n", basic.TotalInteractions)
		fmt.Fprintf(b, "  Engagement rate: %.2f\n", interaction.EngagementRate)

		b.WriteString("Influence:\n")
		fmt.Fprintf(b, "  Influence score: %.1f\n", influence.InfluenceScore)
		fmt.Fprintf(b, "  Network reach:   %d accounts\n", influence.NetworkReach)
		fmt.Fprintf(b, "  Centrality:      %.3f\n", influence.DegreeCentrality)

		if len(interaction.TopLikedAuthors) > 0 {
			b.WriteString("Most liked authors:\n")
			for i, ac := range interaction.TopLikedAuthors {
				if i >= 5 {
					break
				}
				fmt.Fprintf(b, "  %s (%d likes)\n", ac.Author, ac.Count)
			}
		}
	}
	b.WriteString("\n")
}

func writeConnectionAnalysis(b *strings.Builder, result *analyzer.Result) {
	conn := result.Connections
	if conn == nil {
		return
	}

	b.WriteString("CROSS-USER CONNECTIONS\n")
	rule(b, "=", 50)
	b.WriteString("\nDirect connections:\n")
	anyDirect := false
	for _, dc := range conn.Direct {
		switch {
		case dc.Mutual:
			fmt.Fprintf(b, "  %s <-> %s (mutual)\n", dc.UserA, dc.UserB)
			anyDirect = true
		case dc.AFollowsB:
			fmt.Fprintf(b, "  %s -> %s (follows)\n", dc.UserA, dc.UserB)
			anyDirect = true
		case dc.BFollowsA:
			fmt.Fprintf(b, "  %s -> %s (follows)\n", dc.UserB, dc.UserA)
			anyDirect = true
		}
	}
	if !anyDirect {
		b.WriteString("  none between the analyzed users\n")
	}

	b.WriteString("\nCommon connections:\n")
	for _, cc := range conn.Common {
		fmt.Fprintf(b, "\n  %s & %s: %d common points\n", cc.UserA, cc.UserB, cc.TotalCommon)
		if n := len(cc.CommonFollowing); n > 0 {
			fmt.Fprintf(b, "    common following: %d\n", n)
			if n <= 5 {
				fmt.Fprintf(b, "      %s\n", strings.Join(cc.CommonFollowing, ", "))
			}
		}
		if n := len(cc.CommonFollowers); n > 0 {
			fmt.Fprintf(b, "    common followers: %d\n", n)
		}
		if n := len(cc.CommonLikedAuthors); n > 0 {
			fmt.Fprintf(b, "    common liked authors: %d\n", n)
			if n <= 3 {
				fmt.Fprintf(b, "      %s\n", strings.Join(cc.CommonLikedAuthors, ", "))
			}
		}
	}

	b.WriteString("\nBridge nodes:\n")
	if len(conn.Bridges) == 0 {
		b.WriteString("  no significant bridge nodes found\n")
	}
	for i, bridge := range conn.Bridges {
		if i >= 10 {
			break
		}
		fmt.Fprintf(b, "  %s (connects %d users)\n", bridge.ID, bridge.Score)
	}
	b.WriteString("\n")
}

func writeSimilarityAnalysis(b *strings.Builder, result *analyzer.Result) {
	conn := result.Connections
	if conn == nil || conn.Similarity == nil {
		return
	}
	sim := conn.Similarity

	b.WriteString("SIMILARITY ANALYSIS (Jaccard)\n")
	rule(b, "=", 50)
	b.WriteString("\n")

	users := sim.Users()
	fmt.Fprintf(b, "%10s", "")
	for _, u := range users {
		fmt.Fprintf(b, " %10s", truncate(u, 10))
	}
	b.WriteString("\n")
	for i, u := range users {
		fmt.Fprintf(b, "%10s", truncate(u, 10))
		for j := range users {
			if i == j {
				fmt.Fprintf(b, " %10s", "-")
			} else {
				fmt.Fprintf(b, " %10.3f", sim.At(i, j))
			}
		}
		b.WriteString("\n")
	}

	if a, bb, v := sim.MostSimilarPair(); a != "" {
		fmt.Fprintf(b, "\nMost similar pair: %s & %s (%.1f%%)\n", a, bb, v*100)
		switch {
		case v > 0.3:
			b.WriteString("  High similarity: shared interests and social circles\n")
		case v > 0.1:
			b.WriteString("  Moderate similarity: some common interests\n")
		default:
			b.WriteString("  Low similarity: distinct social circles\n")
		}
	}
	b.WriteString("\n")
}

func writeRecommendations(b *strings.Builder, result *analyzer.Result) {
	conn := result.Connections
	if conn == nil {
		return
	}

	b.WriteString("FINDINGS\n")
	rule(b, "=", 50)

	if len(conn.Bridges) > 0 {
		b.WriteString("\nStrong shared connections:\n")
		for i, bridge := range conn.Bridges {
			if i >= 5 {
				break
			}
			fmt.Fprintf(b, "  %s links %d of the analyzed users\n", bridge.ID, bridge.Score)
		}
	}

	shared := false
	for _, cc := range conn.Common {
		if len(cc.CommonLikedAuthors) == 0 {
			continue
		}
		if !shared {
			b.WriteString("\nShared interests:\n")
			shared = true
		}
		authors := cc.CommonLikedAuthors
		if len(authors) > 3 {
			authors = authors[:3]
		}
		fmt.Fprintf(b, "  %s and %s both like %s\n", cc.UserA, cc.UserB, strings.Join(authors, ", "))
	}

	b.WriteString("\n")
	rule(b, "=", 80)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
