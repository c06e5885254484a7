// Package ingest loads per-user social network export directories and
// returns normalized relationship data.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ritzau/socialgraph/pkg/logging"
	"github.com/ritzau/socialgraph/pkg/model"
)

// Export file names inside a user's data directory.
const (
	FollowersFile  = "followers_1.json"
	FollowingFile  = "following.json"
	LikedPostsFile = "liked_posts.json"
	StoryLikesFile = "story_likes.json"
)

// requiredFiles must all be present for a load to succeed.
var requiredFiles = []string{FollowersFile, FollowingFile, LikedPostsFile}

// DirSource loads user data from an export directory on disk.
type DirSource struct {
	Dir string
}

// Dir returns a source reading the given export directory.
func Dir(path string) DirSource {
	return DirSource{Dir: path}
}

// Load reads and normalizes all export files in the directory. A missing
// required file is an error; a present-but-malformed file contributes an
// empty set so one corrupt export does not abort the whole load.
func (s DirSource) Load() (*model.UserData, error) {
	for _, name := range requiredFiles {
		if _, err := os.Stat(filepath.Join(s.Dir, name)); err != nil {
			return nil, fmt.Errorf("required export file %q: %w", name, err)
		}
	}

	data := model.NewUserData()
	data.Followers = loadFollowers(filepath.Join(s.Dir, FollowersFile))
	data.Following = loadFollowing(filepath.Join(s.Dir, FollowingFile))
	data.LikedAuthors = loadLikedPosts(filepath.Join(s.Dir, LikedPostsFile))

	storyPath := filepath.Join(s.Dir, StoryLikesFile)
	if _, err := os.Stat(storyPath); err == nil {
		data.StoryAuthors = loadStoryLikes(storyPath)
	}

	logging.Debug("user data loaded",
		"dir", s.Dir,
		"followers", data.Followers.Len(),
		"following", data.Following.Len(),
		"likedAuthors", data.LikedAuthors.Len(),
		"storyAuthors", data.StoryAuthors.Len())

	return data, nil
}

// followerEntry matches the followers export shape:
// [{"string_list_data": [{"value": "username"}]}]
type followerEntry struct {
	StringListData []struct {
		Value string `json:"value"`
	} `json:"string_list_data"`
}

// titleEntry matches the list shapes keyed by "title".
type titleEntry struct {
	Title string `json:"title"`
}

type followingExport struct {
	Relationships []titleEntry `json:"relationships_following"`
}

type likedPostsExport struct {
	Likes []titleEntry `json:"likes_media_likes"`
}

type storyLikesExport struct {
	Likes []titleEntry `json:"story_activities_story_likes"`
}

func loadFollowers(path string) *model.Set {
	followers := model.NewSet()
	var entries []followerEntry
	if !decodeFile(path, &entries) {
		return followers
	}
	for _, entry := range entries {
		if len(entry.StringListData) == 0 {
			logging.Trace("skipping follower record without username", "file", path)
			continue
		}
		if username := model.Normalize(entry.StringListData[0].Value); username != "" {
			followers.Add(username)
		}
	}
	return followers
}

func loadFollowing(path string) *model.Set {
	following := model.NewSet()
	var export followingExport
	if !decodeFile(path, &export) {
		return following
	}
	for _, entry := range export.Relationships {
		if username := model.Normalize(entry.Title); username != "" {
			following.Add(username)
		}
	}
	return following
}

func loadLikedPosts(path string) *model.Tally {
	var export likedPostsExport
	if !decodeFile(path, &export) {
		return model.NewTally()
	}
	return tallyTitles(export.Likes)
}

func loadStoryLikes(path string) *model.Tally {
	var export storyLikesExport
	if !decodeFile(path, &export) {
		return model.NewTally()
	}
	return tallyTitles(export.Likes)
}

func tallyTitles(entries []titleEntry) *model.Tally {
	tally := model.NewTally()
	for _, entry := range entries {
		if username := model.Normalize(entry.Title); username != "" {
			tally.Add(username, 1)
		}
	}
	return tally
}

// decodeFile unmarshals a JSON export file into v. Read or parse
// failures are logged and reported as false so the caller can fall back
// to an empty result.
func decodeFile(path string, v any) bool {
	raw, err := os.ReadFile(path)
	if err != nil {
		logging.Warn("could not read export file", "file", path, "error", err)
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		logging.Warn("could not parse export file", "file", path, "error", err)
		return false
	}
	return true
}
