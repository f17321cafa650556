package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewMediaStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	if _, err := NewMediaStore(dir); err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("base directory not created: %v", err)
	}
}

func TestSaveWritesFile(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}

	path, err := store.Save("clip.mp4", strings.NewReader("not really a video"))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "not really a video" {
		t.Fatalf("unexpected contents: %q", data)
	}
}

func TestPathRejectsTraversal(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}

	for _, name := range []string{"", "..", "../etc/passwd", "a/../../b"} {
		if _, err := store.Path(name); err == nil {
			t.Errorf("Path(%q) succeeded, want error", name)
		}
	}
}

func TestPathAllowsNestedNames(t *testing.T) {
	store, err := NewMediaStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewMediaStore: %v", err)
	}

	path, err := store.Path("frames/shot.png")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if !strings.HasPrefix(path, store.Dir()) {
		t.Errorf("path %q escapes store root %q", path, store.Dir())
	}
}
