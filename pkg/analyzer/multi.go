package analyzer

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/ritzau/socialgraph/pkg/graph"
	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/model"
)

// Maximum number of bridge nodes returned by BridgeNodes.
const maxBridgeNodes = 20

// DefaultMinCommon is the default bridge-score threshold for the
// common-connections view.
const DefaultMinCommon = 2

// MinUsersForAnalysis is the number of successfully loaded users
// required before cross-user queries are meaningful.
const MinUsersForAnalysis = 2

// MultiAnalyzer aggregates per-user graphs into a combined graph and
// answers cross-user queries. Users are kept in insertion order; that
// order decides attribute conflicts when graphs are unioned.
type MultiAnalyzer struct {
	order    []string
	users    map[string]*UserAnalyzer
	combined *graph.Graph
}

// NewMultiAnalyzer creates an empty aggregator.
func NewMultiAnalyzer() *MultiAnalyzer {
	return &MultiAnalyzer{
		users:    make(map[string]*UserAnalyzer),
		combined: graph.New(),
	}
}

// AddUser loads one user from the source and builds their graph.
// Failures (missing export files, no usable data) are logged and
// reported as false so the caller can count successes; they never panic.
func (m *MultiAnalyzer) AddUser(username string, src Source) bool {
	ua := NewUserAnalyzer(username)
	data, err := src.Load()
	if err != nil {
		logging.Warn("could not load user data", "user", ua.Username, "error", err)
		return false
	}
	if data.Empty() {
		logging.Warn("user export contains no usable data", "user", ua.Username)
		return false
	}

	ua.SetData(data)
	if _, exists := m.users[ua.Username]; !exists {
		m.order = append(m.order, ua.Username)
	}
	m.users[ua.Username] = ua
	logging.Info("user loaded",
		"user", ua.Username,
		"followers", data.Followers.Len(),
		"following", data.Following.Len(),
		"interactions", data.TotalInteractions())
	return true
}

// UserCount returns the number of loaded users.
func (m *MultiAnalyzer) UserCount() int {
	return len(m.order)
}

// Usernames returns the loaded usernames in insertion order.
func (m *MultiAnalyzer) Usernames() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// User returns the analyzer for a loaded username.
func (m *MultiAnalyzer) User(username string) (*UserAnalyzer, bool) {
	ua, ok := m.users[model.Normalize(username)]
	return ua, ok
}

// Combined returns the combined graph built by BuildCombinedGraph.
func (m *MultiAnalyzer) Combined() *graph.Graph {
	return m.combined
}

// BuildCombinedGraph resets the combined graph and unions in every
// user's nodes and edges in insertion order. Later users overwrite
// conflicting attributes. Calling it again with unchanged per-user
// graphs produces an identical result.
func (m *MultiAnalyzer) BuildCombinedGraph() {
	combined := graph.New()
	for _, username := range m.order {
		combined.MergeFrom(m.users[username].Graph)
	}
	m.combined = combined
	logging.Info("combined graph built",
		"users", len(m.order),
		"nodes", combined.NodeCount(),
		"edges", combined.EdgeCount())
}

// DirectConnection records whether two analyzed users follow each other.
type DirectConnection struct {
	UserA     string `json:"user_a"`
	UserB     string `json:"user_b"`
	AFollowsB bool   `json:"a_follows_b"`
	BFollowsA bool   `json:"b_follows_a"`
	Mutual    bool   `json:"mutual"`
}

// DirectConnections checks every unordered user pair for follow edges in
// either direction.
func (m *MultiAnalyzer) DirectConnections() []DirectConnection {
	var out []DirectConnection
	for i := 0; i < len(m.order); i++ {
		for j := i + 1; j < len(m.order); j++ {
			a := m.users[m.order[i]]
			b := m.users[m.order[j]]
			ab := a.Data.Following.Contains(b.Username)
			ba := b.Data.Following.Contains(a.Username)
			out = append(out, DirectConnection{
				UserA:     a.Username,
				UserB:     b.Username,
				AFollowsB: ab,
				BFollowsA: ba,
				Mutual:    ab && ba,
			})
		}
	}
	return out
}

// CommonConnections lists the accounts two analyzed users share.
// TotalCommon is a composite display-ranking score, the sum of the three
// intersection sizes, not a set size.
type CommonConnections struct {
	UserA              string   `json:"user_a"`
	UserB              string   `json:"user_b"`
	CommonFollowers    []string `json:"common_followers"`
	CommonFollowing    []string `json:"common_following"`
	CommonLikedAuthors []string `json:"common_liked_authors"`
	TotalCommon        int      `json:"total_common"`
}

// CommonConnections intersects followers, following, and liked-author
// sets for every unordered user pair.
func (m *MultiAnalyzer) CommonConnections() []CommonConnections {
	var out []CommonConnections
	for i := 0; i < len(m.order); i++ {
		for j := i + 1; j < len(m.order); j++ {
			a := m.users[m.order[i]]
			b := m.users[m.order[j]]
			followers := a.Data.Followers.Intersect(b.Data.Followers).Values()
			following := a.Data.Following.Intersect(b.Data.Following).Values()
			liked := a.Data.LikedAuthors.KeySet().Intersect(b.Data.LikedAuthors.KeySet()).Values()
			out = append(out, CommonConnections{
				UserA:              a.Username,
				UserB:              b.Username,
				CommonFollowers:    followers,
				CommonFollowing:    following,
				CommonLikedAuthors: liked,
				TotalCommon:        len(followers) + len(following) + len(liked),
			})
		}
	}
	return out
}

// SimilarityMatrix is a square Jaccard-similarity table over the
// analyzed users. The diagonal is fixed at 1.0.
type SimilarityMatrix struct {
	users  []string
	values *mat.Dense
}

// Users returns the row/column labels in insertion order.
func (s *SimilarityMatrix) Users() []string {
	out := make([]string, len(s.users))
	copy(out, s.users)
	return out
}

// Dim returns the matrix dimension.
func (s *SimilarityMatrix) Dim() int {
	return len(s.users)
}

// At returns the similarity at row i, column j.
func (s *SimilarityMatrix) At(i, j int) float64 {
	return s.values.At(i, j)
}

// Value returns the similarity between two users by name.
func (s *SimilarityMatrix) Value(a, b string) (float64, bool) {
	ia, ib := -1, -1
	for i, u := range s.users {
		if u == a {
			ia = i
		}
		if u == b {
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return 0, false
	}
	return s.values.At(ia, ib), true
}

// SimilarityMatrix computes pairwise Jaccard similarity over the node
// sets of each user's graph, excluding the user's own node. Two empty
// node sets score 0.0, not 1.0.
func (m *MultiAnalyzer) SimilarityMatrix() *SimilarityMatrix {
	n := len(m.order)
	values := mat.NewDense(max(n, 1), max(n, 1), nil)

	neighborSets := make([]map[string]struct{}, n)
	for i, username := range m.order {
		neighborSets[i] = m.neighborSet(username)
	}

	for i := 0; i < n; i++ {
		values.Set(i, i, 1.0)
		for j := i + 1; j < n; j++ {
			sim := jaccard(neighborSets[i], neighborSets[j])
			values.Set(i, j, sim)
			values.Set(j, i, sim)
		}
	}

	return &SimilarityMatrix{users: m.Usernames(), values: values}
}

// neighborSet returns the node set of a user's graph minus the user.
func (m *MultiAnalyzer) neighborSet(username string) map[string]struct{} {
	ua := m.users[username]
	set := make(map[string]struct{}, ua.Graph.NodeCount())
	for _, id := range ua.Graph.NodeIDs() {
		if id != username {
			set[id] = struct{}{}
		}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b|, with 0.0 when both sets are empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}
	intersection := 0
	for k := range a {
		if _, ok := b[k]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}
	return float64(intersection) / float64(union)
}

// BridgeNode is a non-main-user account appearing in multiple per-user
// graphs, scored by how many graphs contain it.
type BridgeNode struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// BridgeNodes scans the combined graph for accounts shared by at least
// two user graphs and returns the top entries sorted by score
// descending, ties broken by identifier ascending.
func (m *MultiAnalyzer) BridgeNodes() []BridgeNode {
	var bridges []BridgeNode
	for _, id := range m.combined.NodeIDs() {
		if _, isMainUser := m.users[id]; isMainUser {
			continue
		}
		score := 0
		for _, username := range m.order {
			if m.users[username].Graph.HasNode(id) {
				score++
			}
		}
		if score >= 2 {
			bridges = append(bridges, BridgeNode{ID: id, Score: score})
		}
	}

	sort.Slice(bridges, func(i, j int) bool {
		if bridges[i].Score != bridges[j].Score {
			return bridges[i].Score > bridges[j].Score
		}
		return bridges[i].ID < bridges[j].ID
	})

	if len(bridges) > maxBridgeNodes {
		bridges = bridges[:maxBridgeNodes]
	}
	return bridges
}

// ConnectionAnalysis bundles every cross-user query result.
type ConnectionAnalysis struct {
	Direct     []DirectConnection  `json:"direct_connections"`
	Common     []CommonConnections `json:"common_connections"`
	Similarity *SimilarityMatrix   `json:"similarity_matrix"`
	Bridges    []BridgeNode        `json:"bridge_nodes"`
}

// ConnectionAnalysis runs all cross-user queries. Returns nil when fewer
// than two users are loaded; the caller treats that as a fatal
// precondition failure.
func (m *MultiAnalyzer) ConnectionAnalysis() *ConnectionAnalysis {
	if len(m.order) < MinUsersForAnalysis {
		return nil
	}
	return &ConnectionAnalysis{
		Direct:     m.DirectConnections(),
		Common:     m.CommonConnections(),
		Similarity: m.SimilarityMatrix(),
		Bridges:    m.BridgeNodes(),
	}
}

// UserRelationshipsGraph reduces the network to only the analyzed users
// and their follow edges. Mutual pairs get edges in both directions.
func (m *MultiAnalyzer) UserRelationshipsGraph() *graph.Graph {
	g := graph.New()
	for _, username := range m.order {
		g.AddNode(model.NewNode(username, model.RoleMainUser))
	}

	for _, dc := range m.DirectConnections() {
		if dc.Mutual {
			g.AddEdge(&model.Edge{From: dc.UserA, To: dc.UserB, Relationship: model.RelMutual, Weight: 2})
			g.AddEdge(&model.Edge{From: dc.UserB, To: dc.UserA, Relationship: model.RelMutual, Weight: 2})
			continue
		}
		if dc.AFollowsB {
			g.AddEdge(&model.Edge{From: dc.UserA, To: dc.UserB, Relationship: model.RelFollows, Weight: 1})
		}
		if dc.BFollowsA {
			g.AddEdge(&model.Edge{From: dc.UserB, To: dc.UserA, Relationship: model.RelFollows, Weight: 1})
		}
	}
	return g
}

// CommonConnectionsGraph reduces the network to the analyzed users plus
// every bridge node scoring at least minCommon, with a shares edge from
// each user to each bridge node appearing in their graph.
func (m *MultiAnalyzer) CommonConnectionsGraph(minCommon int) *graph.Graph {
	g := graph.New()
	for _, username := range m.order {
		g.AddNode(model.NewNode(username, model.RoleMainUser))
	}

	for _, bridge := range m.BridgeNodes() {
		if bridge.Score < minCommon {
			continue
		}
		node := model.NewNode(bridge.ID, model.RoleBridge)
		node.BridgeScore = bridge.Score
		g.AddNode(node)

		for _, username := range m.order {
			if m.users[username].Graph.HasNode(bridge.ID) {
				g.AddEdge(&model.Edge{
					From:         username,
					To:           bridge.ID,
					Relationship: model.RelShares,
					Weight:       float64(bridge.Score),
				})
			}
		}
	}
	return g
}
