package analyzer

import (
	"encoding/json"
	"time"

	"github.com/ritzau/socialgraph/pkg/graph"
)

// Result is a read-only snapshot of one full analysis run, handed to the
// reporting and visualization surfaces.
type Result struct {
	RunID       string
	Timestamp   time.Time
	Usernames   []string
	Analyses    map[string]*Analysis
	Connections *ConnectionAnalysis
	UserGraphs  map[string]*graph.Graph
	Combined    *graph.Graph
	// Derived views
	Relationships *graph.Graph
	CommonView    *graph.Graph
}

// Snapshot builds the combined graph, runs every per-user and cross-user
// query, and bundles the output. Requires at least MinUsersForAnalysis
// loaded users; callers check UserCount first.
func (m *MultiAnalyzer) Snapshot(runID string, minCommon int) *Result {
	m.BuildCombinedGraph()

	analyses := make(map[string]*Analysis, len(m.order))
	userGraphs := make(map[string]*graph.Graph, len(m.order))
	for _, username := range m.order {
		ua := m.users[username]
		analyses[username] = ua.Analysis()
		userGraphs[username] = ua.Graph
	}

	return &Result{
		RunID:         runID,
		Timestamp:     time.Now(),
		Usernames:     m.Usernames(),
		Analyses:      analyses,
		Connections:   m.ConnectionAnalysis(),
		UserGraphs:    userGraphs,
		Combined:      m.combined,
		Relationships: m.UserRelationshipsGraph(),
		CommonView:    m.CommonConnectionsGraph(minCommon),
	}
}

// MostSimilarPair returns the off-diagonal pair with the highest
// similarity, scanning pairs in insertion order.
func (s *SimilarityMatrix) MostSimilarPair() (a, b string, sim float64) {
	for i := 0; i < len(s.users); i++ {
		for j := i + 1; j < len(s.users); j++ {
			if v := s.values.At(i, j); a == "" || v > sim {
				a, b, sim = s.users[i], s.users[j], v
			}
		}
	}
	return a, b, sim
}

// MeanSimilarity returns the mean of the off-diagonal pair similarities.
func (s *SimilarityMatrix) MeanSimilarity() float64 {
	sum, pairs := 0.0, 0
	for i := 0; i < len(s.users); i++ {
		for j := i + 1; j < len(s.users); j++ {
			sum += s.values.At(i, j)
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return sum / float64(pairs)
}

// similarityJSON is the wire shape of a SimilarityMatrix.
type similarityJSON struct {
	Users  []string    `json:"users"`
	Values [][]float64 `json:"values"`
}

// MarshalJSON renders the matrix as row-major values with user labels.
func (s *SimilarityMatrix) MarshalJSON() ([]byte, error) {
	n := len(s.users)
	values := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		for j := 0; j < n; j++ {
			row[j] = s.values.At(i, j)
		}
		values[i] = row
	}
	return json.Marshal(similarityJSON{Users: s.Users(), Values: values})
}
