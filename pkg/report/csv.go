package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ritzau/socialgraph/pkg/analyzer"
)

// ExportCSV writes the user-metrics, similarity-matrix, and bridge-node
// tables into outputDir. Returns a map from export name to file path.
func ExportCSV(result *analyzer.Result, outputDir string) (map[string]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating statistics directory: %w", err)
	}

	stamp := result.Timestamp.Format("20060102_150405")
	exports := make(map[string]string)

	path := filepath.Join(outputDir, fmt.Sprintf("user_metrics_%s.csv", stamp))
	if err := writeUserMetrics(result, path); err != nil {
		return nil, err
	}
	exports["user_metrics"] = path

	if conn := result.Connections; conn != nil {
		path = filepath.Join(outputDir, fmt.Sprintf("similarity_matrix_%s.csv", stamp))
		if err := writeSimilarityMatrix(conn.Similarity, path); err != nil {
			return nil, err
		}
		exports["similarity_matrix"] = path

		if len(conn.Bridges) > 0 {
			path = filepath.Join(outputDir, fmt.Sprintf("bridge_nodes_%s.csv", stamp))
			if err := writeBridgeNodes(conn.Bridges, path); err != nil {
				return nil, err
			}
			exports["bridge_nodes"] = path
		}
	}

	return exports, nil
}

func writeCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writeUserMetrics(result *analyzer.Result, path string) error {
	rows := [][]string{{
		"user", "followers", "following", "mutual_follows", "follow_ratio",
		"liked_authors", "total_interactions", "story_authors",
		"engagement_rate", "influence_score", "network_reach",
	}}
	for _, username := range result.Usernames {
		a := result.Analyses[username]
		rows = append(rows, []string{
			username,
			strconv.Itoa(a.Basic.FollowersCount),
			strconv.Itoa(a.Basic.FollowingCount),
			strconv.Itoa(a.Basic.MutualFollows),
			formatFloat(a.Basic.FollowRatio),
			strconv.Itoa(a.Interaction.TotalLikedAuthors),
			strconv.Itoa(a.Basic.TotalInteractions),
			strconv.Itoa(a.Interaction.TotalStoryInteractions),
			formatFloat(a.Interaction.EngagementRate),
			formatFloat(a.Influence.InfluenceScore),
			strconv.Itoa(a.Influence.NetworkReach),
		})
	}
	return writeCSV(path, rows)
}

func writeSimilarityMatrix(sim *analyzer.SimilarityMatrix, path string) error {
	users := sim.Users()
	header := append([]string{""}, users...)
	rows := [][]string{header}
	for i, user := range users {
		row := []string{user}
		for j := range users {
			row = append(row, formatFloat(sim.At(i, j)))
		}
		rows = append(rows, row)
	}
	return writeCSV(path, rows)
}

func writeBridgeNodes(bridges []analyzer.BridgeNode, path string) error {
	rows := [][]string{{"node", "connected_users"}}
	for _, bridge := range bridges {
		rows = append(rows, []string{bridge.ID, strconv.Itoa(bridge.Score)})
	}
	return writeCSV(path, rows)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
