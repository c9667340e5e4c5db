package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestPathsEnvPrecedence(t *testing.T) {
	t.Setenv("CLAUDE_PATHS", "/a, /b ,")
	t.Setenv("CLAUDE_CONFIG_DIR", "/ignored")
	if got := Paths(); !reflect.DeepEqual(got, []string{"/a", "/b"}) {
		t.Errorf("Paths() = %v", got)
	}

	t.Setenv("CLAUDE_PATHS", "")
	if got := Paths(); !reflect.DeepEqual(got, []string{"/ignored"}) {
		t.Errorf("Paths() = %v, want CLAUDE_CONFIG_DIR fallback", got)
	}
}

func TestPathsDefaults(t *testing.T) {
	t.Setenv("CLAUDE_PATHS", "")
	t.Setenv("CLAUDE_CONFIG_DIR", "")
	t.Setenv("HOME", "/home/fake")
	got := Paths()
	want := []string{"/home/fake/.config/claude", "/home/fake/.claude"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
}

func TestDiscoverWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "a.jsonl"))
	touch(t, filepath.Join(dir, "nested", "deep", "b.jsonl"))
	touch(t, filepath.Join(dir, "nested", "notes.txt"))
	touch(t, filepath.Join(dir, "node_modules", "skip.jsonl"))
	touch(t, filepath.Join(dir, "dist", "skip.jsonl"))

	got := Discover([]string{dir})
	want := []string{
		filepath.Join(dir, "a.jsonl"),
		filepath.Join(dir, "nested", "deep", "b.jsonl"),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverExplicitFiles(t *testing.T) {
	dir := t.TempDir()
	jsonl := filepath.Join(dir, "usage.jsonl")
	logf := filepath.Join(dir, "usage.log")
	touch(t, jsonl)
	touch(t, logf)

	got := Discover([]string{jsonl, logf, filepath.Join(dir, "missing.jsonl")})
	want := []string{jsonl, logf}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Discover = %v, want %v", got, want)
	}
}

func TestDiscoverDeduplicates(t *testing.T) {
	dir := t.TempDir()
	jsonl := filepath.Join(dir, "usage.jsonl")
	touch(t, jsonl)

	got := Discover([]string{jsonl, dir})
	if len(got) != 1 || got[0] != jsonl {
		t.Errorf("Discover = %v, want single deduplicated entry", got)
	}
}

func TestDiscoverMissingPathIsSilent(t *testing.T) {
	if got := Discover([]string{filepath.Join(t.TempDir(), "nope")}); len(got) != 0 {
		t.Errorf("Discover = %v, want empty", got)
	}
}
