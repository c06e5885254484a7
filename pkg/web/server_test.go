package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ritzau/socialgraph/pkg/analyzer"
	"github.com/ritzau/socialgraph/pkg/model"
)

type fixedSource struct {
	data *model.UserData
}

func (s fixedSource) Load() (*model.UserData, error) {
	return s.data, nil
}

func fixtureResult(t *testing.T) *analyzer.Result {
	t.Helper()

	alice := model.NewUserData()
	alice.Followers = model.NewSet("zara", "bob")
	alice.Following = model.NewSet("bob")

	bob := model.NewUserData()
	bob.Followers = model.NewSet("zara", "alice")
	bob.Following = model.NewSet("alice")

	m := analyzer.NewMultiAnalyzer()
	if !m.AddUser("alice", fixedSource{data: alice}) || !m.AddUser("bob", fixedSource{data: bob}) {
		t.Fatal("fixture users failed to load")
	}
	return m.Snapshot("test-run", analyzer.DefaultMinCommon)
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestNotReadyBeforeFirstResult(t *testing.T) {
	s := NewServer()

	for _, path := range []string{"/api/summary", "/api/users", "/api/graph/combined"} {
		if rec := get(t, s, path); rec.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s = %d, want %d before any result", path, rec.Code, http.StatusServiceUnavailable)
		}
	}
}

func TestSummary(t *testing.T) {
	s := NewServer()
	s.SetResult(fixtureResult(t))

	rec := get(t, s, "/api/summary")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var summary Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &summary); err != nil {
		t.Fatalf("decoding summary: %v", err)
	}
	if summary.RunID != "test-run" {
		t.Errorf("RunID = %q, want test-run", summary.RunID)
	}
	if len(summary.Users) != 2 {
		t.Errorf("Users = %v, want 2 entries", summary.Users)
	}
	if summary.CombinedNodes == 0 {
		t.Error("CombinedNodes = 0, want a populated graph")
	}
	if summary.BridgeCount != 1 { // zara
		t.Errorf("BridgeCount = %d, want 1", summary.BridgeCount)
	}
}

func TestUserEndpoints(t *testing.T) {
	s := NewServer()
	s.SetResult(fixtureResult(t))

	rec := get(t, s, "/api/users/alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var analysis analyzer.Analysis
	if err := json.Unmarshal(rec.Body.Bytes(), &analysis); err != nil {
		t.Fatalf("decoding analysis: %v", err)
	}
	if analysis.Basic.FollowersCount != 2 {
		t.Errorf("FollowersCount = %d, want 2", analysis.Basic.FollowersCount)
	}

	if rec := get(t, s, "/api/users/nobody"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", rec.Code)
	}
	if rec := get(t, s, "/api/users/nobody/graph"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown user graph status = %d, want 404", rec.Code)
	}
}

func TestGraphEndpoints(t *testing.T) {
	s := NewServer()
	s.SetResult(fixtureResult(t))

	for _, path := range []string{
		"/api/users/alice/graph",
		"/api/graph/combined",
		"/api/graph/relationships",
		"/api/graph/common",
	} {
		rec := get(t, s, path)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
			continue
		}
		var data GraphData
		if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
			t.Errorf("GET %s: decoding graph: %v", path, err)
		}
		if len(data.Nodes) == 0 {
			t.Errorf("GET %s: empty node list", path)
		}
	}
}

func TestSimilarityEndpoint(t *testing.T) {
	s := NewServer()
	s.SetResult(fixtureResult(t))

	rec := get(t, s, "/api/similarity")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload struct {
		Users  []string    `json:"users"`
		Values [][]float64 `json:"values"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decoding similarity: %v", err)
	}
	if len(payload.Users) != 2 || len(payload.Values) != 2 {
		t.Fatalf("matrix shape = %d users, %d rows, want 2x2", len(payload.Users), len(payload.Values))
	}
	if payload.Values[0][0] != 1.0 {
		t.Errorf("diagonal = %v, want 1.0", payload.Values[0][0])
	}
}

func TestFromGraph(t *testing.T) {
	result := fixtureResult(t)
	data := FromGraph(result.Combined)

	if len(data.Nodes) != result.Combined.NodeCount() {
		t.Errorf("nodes = %d, want %d", len(data.Nodes), result.Combined.NodeCount())
	}
	if len(data.Edges) != result.Combined.EdgeCount() {
		t.Errorf("edges = %d, want %d", len(data.Edges), result.Combined.EdgeCount())
	}

	// The first node is the first loaded main user.
	if data.Nodes[0].ID != "alice" || data.Nodes[0].Role != string(model.RoleMainUser) {
		t.Errorf("first node = %+v, want alice as main_user", data.Nodes[0])
	}
}
