package metrics

import (
	"math"
	"testing"

	"github.com/ritzau/socialgraph/pkg/graph"
	"github.com/ritzau/socialgraph/pkg/model"
)

func addNode(g *graph.Graph, id string) {
	g.AddNode(model.NewNode(id, model.RoleFollower))
}

func addEdge(g *graph.Graph, from, to string) {
	g.AddEdge(&model.Edge{From: from, To: to, Relationship: model.RelFollower, Weight: 1})
}

// triangle builds a directed 3-cycle: a->b->c->a.
func triangle() *graph.Graph {
	g := graph.New()
	addNode(g, "a")
	addNode(g, "b")
	addNode(g, "c")
	addEdge(g, "a", "b")
	addEdge(g, "b", "c")
	addEdge(g, "c", "a")
	return g
}

func TestNetworkEmptyGraph(t *testing.T) {
	m := Network(graph.New())
	if len(m) != 0 {
		t.Errorf("Network(empty) = %v, want empty map", m)
	}
}

func TestNetworkTriangle(t *testing.T) {
	m := Network(triangle())

	// 3 directed edges over 3*2 possible ordered pairs.
	if got := m[KeyDensity]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("density = %v, want 0.5", got)
	}
	// each node has in-degree 1 and out-degree 1.
	if got := m[KeyAvgDegree]; math.Abs(got-2.0) > 1e-9 {
		t.Errorf("avg_degree = %v, want 2.0", got)
	}
	// the undirected projection is a complete triangle.
	if got := m[KeyAvgClustering]; math.Abs(got-1.0) > 1e-9 {
		t.Errorf("avg_clustering = %v, want 1.0", got)
	}
	if got := m[KeyConnectedComponents]; got != 1 {
		t.Errorf("connected_components = %v, want 1", got)
	}
}

func TestNetworkTwoComponents(t *testing.T) {
	g := triangle()
	addNode(g, "x")
	addNode(g, "y")
	addEdge(g, "x", "y")

	m := Network(g)
	if got := m[KeyConnectedComponents]; got != 2 {
		t.Errorf("connected_components = %v, want 2", got)
	}
}

func TestNetworkSingleNode(t *testing.T) {
	g := graph.New()
	addNode(g, "a")

	m := Network(g)
	if got := m[KeyDensity]; got != 0 {
		t.Errorf("density = %v, want 0 for a single node", got)
	}
	if got := m[KeyConnectedComponents]; got != 1 {
		t.Errorf("connected_components = %v, want 1", got)
	}
}

func TestDegreeCentrality(t *testing.T) {
	g := triangle()

	// degree 2 over n-1 = 2 possible neighbors.
	if got := DegreeCentrality(g, "a"); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("DegreeCentrality(a) = %v, want 1.0", got)
	}
	if got := DegreeCentrality(g, "missing"); got != 0 {
		t.Errorf("DegreeCentrality(missing) = %v, want 0", got)
	}
	if got := DegreeCentrality(graph.New(), "a"); got != 0 {
		t.Errorf("DegreeCentrality on empty graph = %v, want 0", got)
	}
}
