// Package metrics computes graph-theoretic measures over social graphs.
// The undirected measures run on a gonum projection of the graph.
package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/ritzau/socialgraph/pkg/graph"
	"github.com/ritzau/socialgraph/pkg/logging"
)

// Metric keys returned by Network.
const (
	KeyDensity             = "density"
	KeyAvgDegree           = "avg_degree"
	KeyAvgClustering       = "avg_clustering"
	KeyConnectedComponents = "connected_components"
)

// Network computes density, average degree, average clustering
// coefficient, and connected-component count. Degenerate input degrades
// to an empty map; the computation never panics outward.
func Network(g *graph.Graph) (m map[string]float64) {
	m = map[string]float64{}
	defer func() {
		if r := recover(); r != nil {
			logging.Warn("network metrics computation failed", "error", fmt.Sprint(r))
			m = map[string]float64{}
		}
	}()

	n := g.NodeCount()
	if n == 0 {
		return m
	}

	density := 0.0
	if n > 1 {
		density = float64(g.EdgeCount()) / float64(n*(n-1))
	}

	totalDegree := 0
	for _, id := range g.NodeIDs() {
		totalDegree += g.Degree(id)
	}

	u := undirectedProjection(g)

	m[KeyDensity] = density
	m[KeyAvgDegree] = float64(totalDegree) / float64(n)
	m[KeyAvgClustering] = averageClustering(u)
	m[KeyConnectedComponents] = float64(len(topo.ConnectedComponents(u)))
	return m
}

// DegreeCentrality returns the degree centrality of a node: total degree
// divided by the maximum possible degree (n-1). Zero for graphs with
// fewer than two nodes.
func DegreeCentrality(g *graph.Graph, id string) float64 {
	n := g.NodeCount()
	if n <= 1 || !g.HasNode(id) {
		return 0
	}
	return float64(g.Degree(id)) / float64(n-1)
}

// undirectedProjection maps the graph onto a gonum undirected graph.
// Node IDs are assigned by insertion order; parallel and self edges
// collapse away.
func undirectedProjection(g *graph.Graph) *simple.UndirectedGraph {
	u := simple.NewUndirectedGraph()
	index := make(map[string]int64, g.NodeCount())
	for i, id := range g.NodeIDs() {
		index[id] = int64(i)
		u.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.Edges() {
		from, to := index[e.From], index[e.To]
		if from == to {
			continue
		}
		if !u.HasEdgeBetween(from, to) {
			u.SetEdge(u.NewEdge(simple.Node(from), simple.Node(to)))
		}
	}
	return u
}

// averageClustering returns the mean of the local clustering
// coefficients over all nodes. Nodes with fewer than two neighbors
// contribute zero.
func averageClustering(u *simple.UndirectedGraph) float64 {
	nodes := u.Nodes()
	if nodes.Len() == 0 {
		return 0
	}

	coeffs := make([]float64, 0, nodes.Len())
	for nodes.Next() {
		id := nodes.Node().ID()

		var neighbors []int64
		it := u.From(id)
		for it.Next() {
			neighbors = append(neighbors, it.Node().ID())
		}

		k := len(neighbors)
		if k < 2 {
			coeffs = append(coeffs, 0)
			continue
		}

		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if u.HasEdgeBetween(neighbors[i], neighbors[j]) {
					links++
				}
			}
		}
		coeffs = append(coeffs, 2*float64(links)/float64(k*(k-1)))
	}

	return stat.Mean(coeffs, nil)
}
