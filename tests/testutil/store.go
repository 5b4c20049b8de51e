package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nhle/todo/internal/store"
)

// NewTestStorage opens a Storage backed by data/tasks.json inside a
// per-test temporary directory and returns it with the file path.
func NewTestStorage(t *testing.T) (*store.Storage, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "tasks.json")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("opening test storage: %v", err)
	}

	return s, path
}

// WriteTasksFile writes raw content to path, creating parent directories.
func WriteTasksFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("creating tasks dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing tasks file: %v", err)
	}
}

// ReadTasksFile returns the raw content of the tasks file at path.
func ReadTasksFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading tasks file: %v", err)
	}
	return string(data)
}
