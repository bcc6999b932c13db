package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"flacsmith/internal/config"
	"flacsmith/internal/history"
)

// MustOpenHistory opens a history.Store for tests and registers cleanup.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// StubBinary writes an executable script to a temp directory and returns its
// absolute path, for tests that exercise external tool invocation.
func StubBinary(t testing.TB, name, script string) string {
	t.Helper()

	binDir := filepath.Join(t.TempDir(), "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin dir: %v", err)
	}
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return target
}

// WriteLibrary creates the named files under the config's first library
// root and returns their absolute paths in creation order.
func WriteLibrary(t testing.TB, cfg *config.Config, names ...string) []string {
	t.Helper()

	if len(cfg.Paths.LibraryRoots) == 0 {
		t.Fatal("test config has no library roots")
	}
	root := cfg.Paths.LibraryRoots[0]
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte("fLaC"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		paths = append(paths, path)
	}
	return paths
}
