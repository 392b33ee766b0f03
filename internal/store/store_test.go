package store

import (
	"os"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestFileStoreRoundTrip(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ai-prompt-tool-store-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	if err := s.Save("sample", doc{Name: "hello", Count: 3}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var loaded doc
	if !s.Load("sample", &loaded) {
		t.Fatal("Expected Load to find the saved document")
	}
	if loaded.Name != "hello" || loaded.Count != 3 {
		t.Errorf("Loaded unexpected document: %+v", loaded)
	}
}

func TestFileStoreMissingKey(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ai-prompt-tool-store-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	var loaded doc
	if s.Load("absent", &loaded) {
		t.Error("Expected Load to report a missing key")
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ai-prompt-tool-store-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "broken.json"), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	var loaded doc
	if s.Load("broken", &loaded) {
		t.Error("Expected Load to reject a corrupt document")
	}
}

func TestFileStorePrettyPrints(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "ai-prompt-tool-store-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	s, err := NewFileStore(tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save("sample", doc{Name: "hello"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(tmpDir, "sample.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data[:2]) != "{\n" {
		t.Error("Expected the persisted document to be pretty-printed")
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	var loaded doc
	if s.Load("sample", &loaded) {
		t.Error("Expected empty store to miss")
	}

	if err := s.Save("sample", doc{Name: "x", Count: 1}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !s.Load("sample", &loaded) {
		t.Fatal("Expected Load to find the saved document")
	}
	if loaded.Name != "x" {
		t.Errorf("Loaded unexpected document: %+v", loaded)
	}

	s.Delete("sample")
	if s.Load("sample", &loaded) {
		t.Error("Expected Load to miss after Delete")
	}
}
