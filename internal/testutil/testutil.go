// Package testutil provides shared test helpers for setting up content
// files and preference databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/ansuz/internal/content"
	"github.com/starford/ansuz/internal/prefs"
)

// TestPrefs creates a temporary preference store that is automatically
// cleaned up.
func TestPrefs(t *testing.T) *prefs.Store {
	t.Helper()
	store, err := prefs.Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestContent writes the given site YAML to a temp file and loads a store
// from it. The file path is returned so tests can rewrite it and reload.
func TestContent(t *testing.T, siteYAML string) (string, *content.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "site.yaml")
	if err := os.WriteFile(path, []byte(siteYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := content.NewStore(path)
	if err != nil {
		t.Fatal(err)
	}
	return path, store
}
