package checkpoint

import (
	"os"
	"path/filepath"
	"testing"

	"moltscraper/pkg/logger"
	"moltscraper/pkg/models"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scrape_checkpoint.json")
	return NewManager(path, logger.NewNop())
}

func TestSaveAndLoad(t *testing.T) {
	mgr := testManager(t)

	cp := New()
	cp.Offset = 50
	cp.Posts = []models.Post{
		{ID: "a", Title: "first", Content: "body"},
		{ID: "b", Title: "second", Content: "body"},
	}

	if err := mgr.Save(cp); err != nil {
		t.Fatalf("Failed to save checkpoint: %v", err)
	}

	loaded, err := mgr.Load()
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected checkpoint, got nil")
	}
	if loaded.Offset != 50 {
		t.Errorf("Expected offset 50, got %d", loaded.Offset)
	}
	if len(loaded.Posts) != 2 {
		t.Fatalf("Expected 2 posts, got %d", len(loaded.Posts))
	}
	if loaded.Posts[0].ID != "a" || loaded.Posts[1].ID != "b" {
		t.Errorf("Post order not preserved: %v", loaded.Posts)
	}
}

func TestLoadMissingReturnsNil(t *testing.T) {
	mgr := testManager(t)

	cp, err := mgr.Load()
	if err != nil {
		t.Fatalf("Missing checkpoint should not be an error: %v", err)
	}
	if cp != nil {
		t.Errorf("Expected nil checkpoint, got %+v", cp)
	}
	if mgr.Exists() {
		t.Error("Exists should report false for missing file")
	}
}

func TestLoadCorruptFails(t *testing.T) {
	mgr := testManager(t)

	if err := os.WriteFile(mgr.Path(), []byte(`{"offset": 10, "posts": [truncated`), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := mgr.Load(); err == nil {
		t.Fatal("Expected error loading corrupt checkpoint")
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	mgr := testManager(t)

	cp := New()
	cp.Offset = 25
	if err := mgr.Save(cp); err != nil {
		t.Fatalf("Failed to save checkpoint: %v", err)
	}

	if _, err := os.Stat(mgr.Path() + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temporary file should be renamed away after save")
	}
	if !mgr.Exists() {
		t.Error("Checkpoint file should exist after save")
	}
}

func TestSaveOverwritesPrevious(t *testing.T) {
	mgr := testManager(t)

	first := New()
	first.Offset = 25
	first.Posts = []models.Post{{ID: "a", Title: "t", Content: "c"}}
	if err := mgr.Save(first); err != nil {
		t.Fatalf("Failed to save first checkpoint: %v", err)
	}

	second := New()
	second.Offset = 50
	second.Posts = append(first.Posts, models.Post{ID: "b", Title: "t", Content: "c"})
	if err := mgr.Save(second); err != nil {
		t.Fatalf("Failed to save second checkpoint: %v", err)
	}

	loaded, err := mgr.Load()
	if err != nil {
		t.Fatalf("Failed to load checkpoint: %v", err)
	}
	if loaded.Offset != 50 {
		t.Errorf("Expected offset 50 after overwrite, got %d", loaded.Offset)
	}
	if len(loaded.Posts) != 2 {
		t.Errorf("Expected 2 posts after overwrite, got %d", len(loaded.Posts))
	}
}

func TestDelete(t *testing.T) {
	mgr := testManager(t)

	if err := mgr.Save(New()); err != nil {
		t.Fatalf("Failed to save checkpoint: %v", err)
	}
	if err := mgr.Delete(); err != nil {
		t.Fatalf("Failed to delete checkpoint: %v", err)
	}
	if mgr.Exists() {
		t.Error("Checkpoint should not exist after delete")
	}

	// Deleting a missing checkpoint is not an error
	if err := mgr.Delete(); err != nil {
		t.Errorf("Deleting missing checkpoint should be a no-op, got %v", err)
	}
}

func TestSeenIDs(t *testing.T) {
	cp := New()
	cp.Posts = []models.Post{
		{ID: "a", Title: "t", Content: "c"},
		{ID: "b", Title: "t", Content: "c"},
	}

	seen := cp.SeenIDs()
	if len(seen) != 2 {
		t.Fatalf("Expected 2 seen ids, got %d", len(seen))
	}
	if _, ok := seen["a"]; !ok {
		t.Error("Expected id a in seen set")
	}
	if _, ok := seen["missing"]; ok {
		t.Error("Unexpected id in seen set")
	}
}
