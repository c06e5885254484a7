// Package analyzer builds per-user social graphs and derives
// comparative metrics across users.
package analyzer

import (
	"github.com/ritzau/socialgraph/pkg/graph"
	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/metrics"
	"github.com/ritzau/socialgraph/pkg/model"
)

// Source provides normalized user data for one analyzed user.
// ingest.DirSource is the production implementation.
type Source interface {
	Load() (*model.UserData, error)
}

// Number of top interaction authors reported per user.
const topAuthorCount = 10

// UserAnalyzer owns the directed graph of one analyzed user's social
// neighborhood and derives that user's metrics from it.
type UserAnalyzer struct {
	Username string
	Graph    *graph.Graph
	Data     *model.UserData
}

// NewUserAnalyzer creates an analyzer for the given (normalized) username.
func NewUserAnalyzer(username string) *UserAnalyzer {
	return &UserAnalyzer{
		Username: model.Normalize(username),
		Graph:    graph.New(),
	}
}

// Load fetches user data from the source and builds the graph.
func (a *UserAnalyzer) Load(src Source) error {
	data, err := src.Load()
	if err != nil {
		return err
	}
	a.SetData(data)
	return nil
}

// SetData installs already-loaded user data and (re)builds the graph.
func (a *UserAnalyzer) SetData(data *model.UserData) {
	a.Data = data
	a.buildGraph()
	logging.Debug("user graph built",
		"user", a.Username,
		"nodes", a.Graph.NodeCount(),
		"edges", a.Graph.EdgeCount())
}

func (a *UserAnalyzer) buildGraph() {
	g := graph.New()
	g.AddNode(model.NewNode(a.Username, model.RoleMainUser))

	a.addFollowRelationships(g)
	a.addInteractionRelationships(g)

	a.Graph = g
}

func (a *UserAnalyzer) addFollowRelationships(g *graph.Graph) {
	for _, follower := range a.Data.Followers.Values() {
		g.AddNode(model.NewNode(follower, model.RoleFollower))
		g.AddEdge(&model.Edge{
			From:         follower,
			To:           a.Username,
			Relationship: model.RelFollower,
			Weight:       1,
		})
	}

	for _, followed := range a.Data.Following.Values() {
		g.AddNode(model.NewNode(followed, model.RoleFollowing))
		g.AddEdge(&model.Edge{
			From:         a.Username,
			To:           followed,
			Relationship: model.RelFollowing,
			Weight:       1,
		})
	}

	// Promote the outgoing edge for mutual follows. The incoming
	// follower edge keeps its original label and weight.
	for _, mutual := range a.Data.MutualFollows().Values() {
		if e, ok := g.Edge(a.Username, mutual); ok {
			e.Mutual = true
			e.Relationship = model.RelMutual
			e.Weight = 2
		}
	}
}

func (a *UserAnalyzer) addInteractionRelationships(g *graph.Graph) {
	for _, author := range a.Data.LikedAuthors.Keys() {
		count := a.Data.LikedAuthors.Count(author)
		g.AddNode(model.NewNode(author, model.RoleLikedAuthor))
		a.writeInteractionEdge(g, author, model.RelLikedPost, float64(count)*0.5, count)
	}

	for _, author := range a.Data.StoryAuthors.Keys() {
		count := a.Data.StoryAuthors.Count(author)
		g.AddNode(model.NewNode(author, model.RoleStoryAuthor))
		a.writeInteractionEdge(g, author, model.RelLikedStory, float64(count)*0.3, count)
	}
}

// writeInteractionEdge adds an interaction edge from the main user to an
// author. If an edge to the author already exists (the user also follows
// them), its attributes are rewritten in place; the Mutual flag survives.
func (a *UserAnalyzer) writeInteractionEdge(g *graph.Graph, author string, rel model.Relationship, weight float64, count int) {
	if e, ok := g.Edge(a.Username, author); ok {
		e.Relationship = rel
		e.Weight = weight
		e.InteractionCount = count
		return
	}
	g.AddEdge(&model.Edge{
		From:             a.Username,
		To:               author,
		Relationship:     rel,
		Weight:           weight,
		InteractionCount: count,
	})
}

// BasicMetrics summarizes a user's graph and relationship counts.
type BasicMetrics struct {
	TotalNodes        int     `json:"total_nodes"`
	TotalEdges        int     `json:"total_edges"`
	FollowersCount    int     `json:"followers_count"`
	FollowingCount    int     `json:"following_count"`
	MutualFollows     int     `json:"mutual_follows"`
	TotalInteractions int     `json:"total_interactions"`
	FollowRatio       float64 `json:"follow_ratio"`
}

// InteractionAnalysis summarizes a user's liking behavior.
type InteractionAnalysis struct {
	TopLikedAuthors        []model.AuthorCount `json:"top_liked_authors"`
	TopStoryAuthors        []model.AuthorCount `json:"top_story_authors"`
	TotalLikedAuthors      int                 `json:"total_liked_authors"`
	TotalStoryInteractions int                 `json:"total_story_interactions"`
	EngagementRate         float64             `json:"engagement_rate"`
}

// InfluenceMetrics scores a user's standing within their own graph.
type InfluenceMetrics struct {
	DegreeCentrality float64 `json:"degree_centrality"`
	InfluenceScore   float64 `json:"influence_score"`
	NetworkReach     int     `json:"network_reach"`
}

// Analysis bundles all derived metric groups for one user.
type Analysis struct {
	Basic       BasicMetrics        `json:"basic_metrics"`
	Network     map[string]float64  `json:"network_metrics"`
	Interaction InteractionAnalysis `json:"interaction_analysis"`
	Influence   InfluenceMetrics    `json:"influence_metrics"`
}

// Analysis recomputes the full set of derived metrics for this user.
func (a *UserAnalyzer) Analysis() *Analysis {
	return &Analysis{
		Basic:       a.BasicMetrics(),
		Network:     metrics.Network(a.Graph),
		Interaction: a.InteractionAnalysis(),
		Influence:   a.InfluenceMetrics(),
	}
}

// BasicMetrics computes node, edge, and relationship counts.
func (a *UserAnalyzer) BasicMetrics() BasicMetrics {
	return BasicMetrics{
		TotalNodes:        a.Graph.NodeCount(),
		TotalEdges:        a.Graph.EdgeCount(),
		FollowersCount:    a.Data.Followers.Len(),
		FollowingCount:    a.Data.Following.Len(),
		MutualFollows:     a.Data.MutualFollows().Len(),
		TotalInteractions: a.Data.TotalInteractions(),
		FollowRatio:       float64(a.Data.Followers.Len()) / float64(max(1, a.Data.Following.Len())),
	}
}

// InteractionAnalysis computes top interaction authors and engagement.
func (a *UserAnalyzer) InteractionAnalysis() InteractionAnalysis {
	return InteractionAnalysis{
		TopLikedAuthors:        a.Data.LikedAuthors.TopN(topAuthorCount),
		TopStoryAuthors:        a.Data.StoryAuthors.TopN(topAuthorCount),
		TotalLikedAuthors:      a.Data.LikedAuthors.Len(),
		TotalStoryInteractions: a.Data.StoryAuthors.Len(),
		EngagementRate:         float64(a.Data.TotalInteractions()) / float64(max(1, a.Data.Following.Len())),
	}
}

// InfluenceMetrics computes centrality and a composite influence score.
func (a *UserAnalyzer) InfluenceMetrics() InfluenceMetrics {
	return InfluenceMetrics{
		DegreeCentrality: metrics.DegreeCentrality(a.Graph, a.Username),
		InfluenceScore:   a.influenceScore(),
		NetworkReach:     a.Graph.NodeCount() - 1,
	}
}

// influenceScore weights followers, mutual follows, interactions, and
// engagement into a single comparable number.
func (a *UserAnalyzer) influenceScore() float64 {
	engagement := float64(a.Data.TotalInteractions()) / float64(max(1, a.Data.Following.Len()))
	return float64(a.Data.Followers.Len())*0.4 +
		float64(a.Data.MutualFollows().Len())*0.3 +
		float64(a.Data.TotalInteractions())*0.2 +
		engagement*100*0.1
}
