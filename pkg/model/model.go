package model

import "strings"

// Normalize canonicalizes a social account identifier.
// All identifiers stored in graphs and data sets are trimmed and lowercased.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Role classifies a node by the relationship that first introduced it
// into a graph. Later relationships never change a node's role.
type Role string

const (
	RoleMainUser    Role = "main_user"    // One of the analyzed users
	RoleFollower    Role = "follower"     // Follows a main user
	RoleFollowing   Role = "following"    // Followed by a main user
	RoleLikedAuthor Role = "liked_author" // Author of posts a main user liked
	RoleStoryAuthor Role = "story_author" // Author of stories a main user liked
	RoleBridge      Role = "bridge"       // Shared across multiple user graphs (derived views only)
)

// DisplaySize returns the default rendering size for nodes of this role.
func (r Role) DisplaySize() int {
	switch r {
	case RoleMainUser:
		return 100
	case RoleFollower, RoleFollowing:
		return 30
	case RoleBridge:
		return 50
	default:
		return 20
	}
}

// DisplayColor returns the default rendering color for nodes of this role.
func (r Role) DisplayColor() string {
	switch r {
	case RoleMainUser:
		return "red"
	case RoleFollower:
		return "blue"
	case RoleFollowing:
		return "green"
	case RoleStoryAuthor:
		return "purple"
	default:
		return "orange"
	}
}

// Relationship labels a directed edge between two accounts.
type Relationship string

const (
	RelFollower   Relationship = "follower"
	RelFollowing  Relationship = "following"
	RelMutual     Relationship = "mutual"
	RelLikedPost  Relationship = "liked_post"
	RelLikedStory Relationship = "liked_story"
	RelFollows    Relationship = "follows" // user-relationship view
	RelShares     Relationship = "shares"  // common-connections view
)

// Node is a vertex in a social graph, identified by a normalized username.
type Node struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	Size        int    `json:"size"`
	Color       string `json:"color"`
	BridgeScore int    `json:"bridge_score,omitempty"` // set only in the common-connections view
}

// NewNode creates a node with the display defaults for its role.
func NewNode(id string, role Role) *Node {
	return &Node{
		ID:    id,
		Role:  role,
		Size:  role.DisplaySize(),
		Color: role.DisplayColor(),
	}
}

// Edge is a directed connection between two accounts. A graph holds at
// most one edge per ordered (From, To) pair; repeated writes mutate the
// existing edge in place.
type Edge struct {
	From             string       `json:"from"`
	To               string       `json:"to"`
	Relationship     Relationship `json:"relationship"`
	Weight           float64      `json:"weight"`
	Mutual           bool         `json:"mutual,omitempty"`
	InteractionCount int          `json:"interaction_count,omitempty"`
}
