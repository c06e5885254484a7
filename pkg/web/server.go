// Package web serves analysis results over an HTTP JSON API, the
// in-process equivalent of handing read-only structures to a
// visualization collaborator.
package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/ritzau/socialgraph/pkg/analyzer"
	"github.com/ritzau/socialgraph/pkg/graph"
	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/pubsub"
)

// StatusTopic is the SSE topic carrying analysis run status.
const StatusTopic = "status"

// GraphNode is the wire representation of a graph node.
type GraphNode struct {
	ID          string `json:"id"`
	Role        string `json:"role"`
	Size        int    `json:"size"`
	Color       string `json:"color"`
	BridgeScore int    `json:"bridge_score,omitempty"`
}

// GraphEdge is the wire representation of a graph edge.
type GraphEdge struct {
	Source           string  `json:"source"`
	Target           string  `json:"target"`
	Relationship     string  `json:"relationship"`
	Weight           float64 `json:"weight"`
	Mutual           bool    `json:"mutual,omitempty"`
	InteractionCount int     `json:"interaction_count,omitempty"`
}

// GraphData holds a full graph for visualization.
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// FromGraph converts a social graph to its wire representation.
func FromGraph(g *graph.Graph) *GraphData {
	data := &GraphData{
		Nodes: make([]GraphNode, 0, g.NodeCount()),
		Edges: make([]GraphEdge, 0, g.EdgeCount()),
	}
	for _, n := range g.Nodes() {
		data.Nodes = append(data.Nodes, GraphNode{
			ID:          n.ID,
			Role:        string(n.Role),
			Size:        n.Size,
			Color:       n.Color,
			BridgeScore: n.BridgeScore,
		})
	}
	for _, e := range g.Edges() {
		data.Edges = append(data.Edges, GraphEdge{
			Source:           e.From,
			Target:           e.To,
			Relationship:     string(e.Relationship),
			Weight:           e.Weight,
			Mutual:           e.Mutual,
			InteractionCount: e.InteractionCount,
		})
	}
	return data
}

// Summary is the top-level run overview.
type Summary struct {
	RunID         string   `json:"run_id"`
	Timestamp     string   `json:"timestamp"`
	Users         []string `json:"users"`
	CombinedNodes int      `json:"combined_nodes"`
	CombinedEdges int      `json:"combined_edges"`
	BridgeCount   int      `json:"bridge_count"`
}

// Server serves one analysis result snapshot at a time. SetResult swaps
// the snapshot atomically, so watch-mode re-analysis never races readers.
type Server struct {
	router    *mux.Router
	publisher pubsub.Publisher

	mu     sync.RWMutex
	result *analyzer.Result
}

// NewServer creates a web server with no result loaded yet.
func NewServer() *Server {
	publisher := pubsub.NewSSEPublisher()
	publisher.ConfigureTopic(StatusTopic, pubsub.TopicConfig{
		BufferSize: 10,
		ReplayAll:  false, // new subscribers only need the current state
	})

	s := &Server{
		router:    mux.NewRouter(),
		publisher: publisher,
	}
	s.setupRoutes()
	return s
}

// SetResult installs a new analysis snapshot.
func (s *Server) SetResult(result *analyzer.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
}

// PublishStatus publishes an analysis status event to SSE subscribers.
func (s *Server) PublishStatus(status pubsub.AnalysisStatus) error {
	return s.publisher.Publish(StatusTopic, status.State, status)
}

// Router returns the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP on the given port.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	logging.Info("web server listening", "addr", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) setupRoutes() {
	s.router.Use(requestLogging)

	s.router.HandleFunc("/api/subscribe/status", s.handleSubscribeStatus).Methods("GET")

	s.router.HandleFunc("/api/summary", s.handleSummary).Methods("GET")
	s.router.HandleFunc("/api/users", s.handleUsers).Methods("GET")
	s.router.HandleFunc("/api/users/{name}", s.handleUser).Methods("GET")
	s.router.HandleFunc("/api/users/{name}/graph", s.handleUserGraph).Methods("GET")
	s.router.HandleFunc("/api/graph/combined", s.handleCombinedGraph).Methods("GET")
	s.router.HandleFunc("/api/graph/relationships", s.handleRelationshipsGraph).Methods("GET")
	s.router.HandleFunc("/api/graph/common", s.handleCommonGraph).Methods("GET")
	s.router.HandleFunc("/api/similarity", s.handleSimilarity).Methods("GET")
	s.router.HandleFunc("/api/bridges", s.handleBridges).Methods("GET")
	s.router.HandleFunc("/api/connections", s.handleConnections).Methods("GET")
}

func requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.Debug("http request", "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// snapshot returns the current result, or writes 503 and returns nil if
// no analysis has completed yet.
func (s *Server) snapshot(w http.ResponseWriter) *analyzer.Result {
	s.mu.RLock()
	result := s.result
	s.mu.RUnlock()
	if result == nil {
		http.Error(w, "analysis not ready", http.StatusServiceUnavailable)
		return nil
	}
	return result
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("encoding response", "error", err)
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	bridgeCount := 0
	if result.Connections != nil {
		bridgeCount = len(result.Connections.Bridges)
	}
	writeJSON(w, Summary{
		RunID:         result.RunID,
		Timestamp:     result.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		Users:         result.Usernames,
		CombinedNodes: result.Combined.NodeCount(),
		CombinedEdges: result.Combined.EdgeCount(),
		BridgeCount:   bridgeCount,
	})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	writeJSON(w, result.Usernames)
}

func (s *Server) handleUser(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	name := mux.Vars(r)["name"]
	analysis, ok := result.Analyses[name]
	if !ok {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	writeJSON(w, analysis)
}

func (s *Server) handleUserGraph(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	name := mux.Vars(r)["name"]
	g, ok := result.UserGraphs[name]
	if !ok {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	writeJSON(w, FromGraph(g))
}

func (s *Server) handleCombinedGraph(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	writeJSON(w, FromGraph(result.Combined))
}

func (s *Server) handleRelationshipsGraph(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	writeJSON(w, FromGraph(result.Relationships))
}

func (s *Server) handleCommonGraph(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	writeJSON(w, FromGraph(result.CommonView))
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	if result.Connections == nil {
		http.Error(w, "no cross-user analysis", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Connections.Similarity)
}

func (s *Server) handleBridges(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	if result.Connections == nil {
		http.Error(w, "no cross-user analysis", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Connections.Bridges)
}

func (s *Server) handleConnections(w http.ResponseWriter, r *http.Request) {
	result := s.snapshot(w)
	if result == nil {
		return
	}
	if result.Connections == nil {
		http.Error(w, "no cross-user analysis", http.StatusNotFound)
		return
	}
	writeJSON(w, result.Connections)
}

func (s *Server) handleSubscribeStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Establish the stream before the first event.
	fmt.Fprintf(w, ": connected\n\n")
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	sub, err := s.publisher.Subscribe(r.Context(), StatusTopic)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer sub.Close()

	for event := range sub.Events() {
		if err := pubsub.WriteSSE(w, event); err != nil {
			logging.Debug("sse write failed, closing stream", "error", err)
			return
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}
