package ingest

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const followersJSON = `[
	{"string_list_data": [{"value": "Alice"}]},
	{"string_list_data": [{"value": "bob"}]},
	{"string_list_data": []},
	{"string_list_data": [{"value": "  "}]}
]`

const followingJSON = `{
	"relationships_following": [
		{"title": "Bob"},
		{"title": "carol"},
		{"title": ""}
	]
}`

const likedPostsJSON = `{
	"likes_media_likes": [
		{"title": "Carol"},
		{"title": "carol"},
		{"title": "dave"}
	]
}`

const storyLikesJSON = `{
	"story_activities_story_likes": [
		{"title": "dave"}
	]
}`

func writeExport(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func exportDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeExport(t, dir, FollowersFile, followersJSON)
	writeExport(t, dir, FollowingFile, followingJSON)
	writeExport(t, dir, LikedPostsFile, likedPostsJSON)
	return dir
}

func TestLoadFullExport(t *testing.T) {
	dir := exportDir(t)
	writeExport(t, dir, StoryLikesFile, storyLikesJSON)

	data, err := Dir(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if got, want := data.Followers.Values(), []string{"alice", "bob"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Followers = %v, want %v", got, want)
	}
	if got, want := data.Following.Values(), []string{"bob", "carol"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Following = %v, want %v", got, want)
	}
	if got := data.LikedAuthors.Count("carol"); got != 2 {
		t.Errorf("LikedAuthors.Count(carol) = %d, want 2 (case-folded merge)", got)
	}
	if got := data.StoryAuthors.Count("dave"); got != 1 {
		t.Errorf("StoryAuthors.Count(dave) = %d, want 1", got)
	}
}

func TestLoadMissingRequiredFile(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, FollowersFile, followersJSON)
	writeExport(t, dir, LikedPostsFile, likedPostsJSON)
	// following.json deliberately absent

	if _, err := Dir(dir).Load(); err == nil {
		t.Fatal("Load() should fail when a required export file is missing")
	}
}

func TestLoadStoryFileOptional(t *testing.T) {
	dir := exportDir(t)

	data, err := Dir(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if data.StoryAuthors.Len() != 0 {
		t.Errorf("StoryAuthors.Len() = %d, want 0 without story file", data.StoryAuthors.Len())
	}
}

func TestLoadMalformedFileGivesEmptySet(t *testing.T) {
	dir := t.TempDir()
	writeExport(t, dir, FollowersFile, "not json at all")
	writeExport(t, dir, FollowingFile, followingJSON)
	writeExport(t, dir, LikedPostsFile, likedPostsJSON)

	data, err := Dir(dir).Load()
	if err != nil {
		t.Fatalf("Load() error: %v (malformed files should not abort the load)", err)
	}
	if data.Followers.Len() != 0 {
		t.Errorf("Followers.Len() = %d, want 0 for a malformed file", data.Followers.Len())
	}
	if data.Following.Len() != 2 {
		t.Errorf("Following.Len() = %d, want 2; other files must still load", data.Following.Len())
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	if _, err := Dir(filepath.Join(t.TempDir(), "nope")).Load(); err == nil {
		t.Fatal("Load() should fail for a nonexistent directory")
	}
}
