package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"followers_1.json", fsnotify.Write, true},
		{"following.json", fsnotify.Create, true},
		{"liked_posts.json", fsnotify.Remove, true},
		{"notes.txt", fsnotify.Write, false},
		{"followers_1.json", fsnotify.Chmod, false},
	}

	for _, tt := range tests {
		event := fsnotify.Event{Name: tt.name, Op: tt.op}
		if got := relevant(event); got != tt.want {
			t.Errorf("relevant(%s, %s) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}

func TestWatcherDebouncedCallback(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 1)

	w, err := New([]string{dir}, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	// A burst of writes should collapse into one callback.
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(filepath.Join(dir, "followers_1.json"), []byte("[]"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan struct{}, 1)

	w, err := New([]string{dir}, 50*time.Millisecond, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changed:
		t.Fatal("callback fired for a non-export file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherMissingDirectory(t *testing.T) {
	w, err := New([]string{filepath.Join(t.TempDir(), "nope")}, 0, func() {})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer w.Close()

	if err := w.Start(); err == nil {
		t.Fatal("Start() should fail for a nonexistent directory")
	}
}
