// Package graph provides the directed social graph shared by the
// per-user builders, the aggregator, and the derived views.
package graph

import (
	"github.com/ritzau/socialgraph/pkg/model"
)

type edgeKey struct {
	from, to string
}

// Graph is a directed graph with adjacency-map storage. Nodes are keyed
// by identifier and iterated in insertion order. Each ordered (from, to)
// pair carries at most one edge, looked up in O(1).
type Graph struct {
	nodes     map[string]*model.Node
	nodeOrder []string
	edges     map[edgeKey]*model.Edge
	edgeOrder []edgeKey
	out       map[string][]string
	in        map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*model.Node),
		edges: make(map[edgeKey]*model.Edge),
		out:   make(map[string][]string),
		in:    make(map[string][]string),
	}
}

// AddNode inserts a node. If a node with the same ID already exists it is
// left untouched: a node's role and display attributes belong to the
// first relationship that introduced it.
func (g *Graph) AddNode(n *model.Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
}

// SetNode inserts a node, overwriting the attributes of any existing
// node with the same ID. The node keeps its original insertion position.
// Used by MergeFrom, where later writers win.
func (g *Graph) SetNode(n *model.Node) {
	if existing, exists := g.nodes[n.ID]; exists {
		*existing = *n
		return
	}
	g.nodes[n.ID] = n
	g.nodeOrder = append(g.nodeOrder, n.ID)
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*model.Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// AddEdge inserts a directed edge and returns the live edge for the
// (From, To) pair. If an edge already exists it is returned unmodified,
// so callers can mutate attributes in place instead of duplicating.
// Both endpoints must already be present as nodes.
func (g *Graph) AddEdge(e *model.Edge) *model.Edge {
	key := edgeKey{e.From, e.To}
	if existing, ok := g.edges[key]; ok {
		return existing
	}
	g.edges[key] = e
	g.edgeOrder = append(g.edgeOrder, key)
	g.out[e.From] = append(g.out[e.From], e.To)
	g.in[e.To] = append(g.in[e.To], e.From)
	return e
}

// SetEdge inserts a directed edge, overwriting the attributes of any
// existing edge for the same (From, To) pair. Used by MergeFrom.
func (g *Graph) SetEdge(e *model.Edge) {
	key := edgeKey{e.From, e.To}
	if existing, ok := g.edges[key]; ok {
		*existing = *e
		return
	}
	g.AddEdge(e)
}

// Edge returns the live edge for the ordered (from, to) pair.
func (g *Graph) Edge(from, to string) (*model.Edge, bool) {
	e, ok := g.edges[edgeKey{from, to}]
	return e, ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*model.Node {
	out := make([]*model.Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		out = append(out, g.nodes[id])
	}
	return out
}

// NodeIDs returns all node identifiers in insertion order.
func (g *Graph) NodeIDs() []string {
	out := make([]string, len(g.nodeOrder))
	copy(out, g.nodeOrder)
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*model.Edge {
	out := make([]*model.Edge, 0, len(g.edgeOrder))
	for _, key := range g.edgeOrder {
		out = append(out, g.edges[key])
	}
	return out
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodeOrder)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edgeOrder)
}

// OutNeighbors returns the targets of all edges leaving id, in edge
// insertion order.
func (g *Graph) OutNeighbors(id string) []string {
	out := make([]string, len(g.out[id]))
	copy(out, g.out[id])
	return out
}

// InNeighbors returns the sources of all edges entering id, in edge
// insertion order.
func (g *Graph) InNeighbors(id string) []string {
	out := make([]string, len(g.in[id]))
	copy(out, g.in[id])
	return out
}

// Degree returns the total degree (in + out) of a node.
func (g *Graph) Degree(id string) int {
	return len(g.in[id]) + len(g.out[id])
}

// MergeFrom unions another graph's nodes and edges into this one.
// Attributes are copied by value so the merged graph owns its data, and
// later merges overwrite conflicting attributes (last writer wins).
func (g *Graph) MergeFrom(other *Graph) {
	for _, n := range other.Nodes() {
		cp := *n
		g.SetNode(&cp)
	}
	for _, e := range other.Edges() {
		cp := *e
		g.SetEdge(&cp)
	}
}
