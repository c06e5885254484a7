package analyzer

import (
	"errors"
	"math"
	"testing"

	"github.com/ritzau/socialgraph/pkg/model"
)

// stubSource feeds canned user data to an analyzer.
type stubSource struct {
	data *model.UserData
	err  error
}

func (s stubSource) Load() (*model.UserData, error) {
	return s.data, s.err
}

func testUserData() *model.UserData {
	data := model.NewUserData()
	data.Followers = model.NewSet("bob", "carol", "dave")
	data.Following = model.NewSet("bob", "eve")
	data.LikedAuthors.Add("bob", 4)
	data.LikedAuthors.Add("frank", 2)
	data.StoryAuthors.Add("eve", 3)
	return data
}

func TestBuildGraphRolesAndEdges(t *testing.T) {
	ua := NewUserAnalyzer("Alice")
	ua.SetData(testUserData())

	if ua.Username != "alice" {
		t.Fatalf("Username = %q, want normalized alice", ua.Username)
	}

	main, ok := ua.Graph.Node("alice")
	if !ok || main.Role != model.RoleMainUser {
		t.Errorf("main user node = %+v, want role %s", main, model.RoleMainUser)
	}

	// bob entered first as a follower; later roles must not overwrite.
	bob, _ := ua.Graph.Node("bob")
	if bob.Role != model.RoleFollower {
		t.Errorf("bob role = %s, want %s", bob.Role, model.RoleFollower)
	}

	// frank only appears as a liked author.
	frank, _ := ua.Graph.Node("frank")
	if frank.Role != model.RoleLikedAuthor {
		t.Errorf("frank role = %s, want %s", frank.Role, model.RoleLikedAuthor)
	}

	// 1 main user + 3 followers + 1 new following + 1 liked author = 6
	// (eve enters via following, bob via followers).
	if got := ua.Graph.NodeCount(); got != 6 {
		t.Errorf("NodeCount() = %d, want 6", got)
	}
}

func TestMutualPromotionIsAsymmetric(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	ua.SetData(testUserData())

	// alice and bob follow each other: the outgoing edge is promoted.
	out, ok := ua.Graph.Edge("alice", "bob")
	if !ok {
		t.Fatal("edge alice->bob not found")
	}
	if !out.Mutual {
		t.Error("outgoing edge to a mutual follow should be flagged mutual")
	}

	// The incoming follower edge keeps its original label and weight.
	in, ok := ua.Graph.Edge("bob", "alice")
	if !ok {
		t.Fatal("edge bob->alice not found")
	}
	if in.Mutual || in.Relationship != model.RelFollower || in.Weight != 1 {
		t.Errorf("incoming edge = %+v, want untouched follower edge", in)
	}
}

func TestInteractionEdgeRewritePreservesMutual(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	ua.SetData(testUserData())

	// alice follows bob (mutual) and liked 4 of his posts. The liked_post
	// rewrite replaces relationship and weight but keeps the mutual flag.
	e, ok := ua.Graph.Edge("alice", "bob")
	if !ok {
		t.Fatal("edge alice->bob not found")
	}
	if e.Relationship != model.RelLikedPost {
		t.Errorf("Relationship = %s, want %s", e.Relationship, model.RelLikedPost)
	}
	if e.Weight != 2.0 { // 4 likes * 0.5
		t.Errorf("Weight = %v, want 2.0", e.Weight)
	}
	if e.InteractionCount != 4 {
		t.Errorf("InteractionCount = %d, want 4", e.InteractionCount)
	}
	if !e.Mutual {
		t.Error("Mutual flag must survive the interaction rewrite")
	}
}

func TestStoryEdgeWeight(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	ua.SetData(testUserData())

	e, ok := ua.Graph.Edge("alice", "eve")
	if !ok {
		t.Fatal("edge alice->eve not found")
	}
	if want := 3 * 0.3; math.Abs(e.Weight-want) > 1e-9 {
		t.Errorf("Weight = %v, want %v", e.Weight, want)
	}
}

func TestBasicMetrics(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	ua.SetData(testUserData())

	got := ua.BasicMetrics()
	if got.FollowersCount != 3 || got.FollowingCount != 2 {
		t.Errorf("counts = %d/%d, want 3/2", got.FollowersCount, got.FollowingCount)
	}
	if got.MutualFollows != 1 {
		t.Errorf("MutualFollows = %d, want 1", got.MutualFollows)
	}
	if got.TotalInteractions != 9 { // 4+2 liked + 3 story
		t.Errorf("TotalInteractions = %d, want 9", got.TotalInteractions)
	}
	if got.FollowRatio != 1.5 {
		t.Errorf("FollowRatio = %v, want 1.5", got.FollowRatio)
	}
}

func TestFollowRatioWithNoFollowing(t *testing.T) {
	data := model.NewUserData()
	data.Followers = model.NewSet("bob", "carol")

	ua := NewUserAnalyzer("alice")
	ua.SetData(data)

	if got := ua.BasicMetrics().FollowRatio; got != 2.0 {
		t.Errorf("FollowRatio = %v, want 2.0 (denominator floors at 1)", got)
	}
}

func TestInfluenceScore(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	ua.SetData(testUserData())

	// followers=3, mutual=1, interactions=9, engagement=9/2=4.5
	want := 3*0.4 + 1*0.3 + 9*0.2 + 4.5*100*0.1
	got := ua.InfluenceMetrics().InfluenceScore
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("InfluenceScore = %v, want %v", got, want)
	}
}

func TestAnalysisOnEmptyData(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	ua.SetData(model.NewUserData())

	analysis := ua.Analysis()
	if analysis.Basic.TotalNodes != 1 {
		t.Errorf("TotalNodes = %d, want 1 (just the main user)", analysis.Basic.TotalNodes)
	}
	if analysis.Basic.FollowRatio != 0 {
		t.Errorf("FollowRatio = %v, want 0", analysis.Basic.FollowRatio)
	}
	if analysis.Influence.NetworkReach != 0 {
		t.Errorf("NetworkReach = %d, want 0", analysis.Influence.NetworkReach)
	}
}

func TestLoadPropagatesSourceError(t *testing.T) {
	ua := NewUserAnalyzer("alice")
	wantErr := errors.New("boom")
	if err := ua.Load(stubSource{err: wantErr}); !errors.Is(err, wantErr) {
		t.Errorf("Load() error = %v, want %v", err, wantErr)
	}
}
