// Package discovery locates usage-log files from explicit paths, environment
// overrides, or the default Claude config directories.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
)

const (
	pathsEnv     = "CLAUDE_PATHS"
	configDirEnv = "CLAUDE_CONFIG_DIR"
)

// Directory names never descended into when walking for log files.
var skipDirs = map[string]bool{
	"node_modules": true,
	"dist":         true,
	"build":        true,
}

// Paths returns the base directories to search when no explicit paths are
// given: CLAUDE_PATHS, then CLAUDE_CONFIG_DIR (both comma-separated), then
// the standard config locations.
func Paths() []string {
	if v := strings.TrimSpace(os.Getenv(pathsEnv)); v != "" {
		return splitPaths(v)
	}
	if v := strings.TrimSpace(os.Getenv(configDirEnv)); v != "" {
		return splitPaths(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "claude"),
		filepath.Join(home, ".claude"),
	}
}

func splitPaths(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Discover resolves log files. Explicit paths are used as given: a path
// ending in .jsonl or .log is taken as a file, anything else is walked
// recursively for *.jsonl. With no explicit paths, each default base
// directory and its projects/ child is searched. Unreadable or missing
// paths are skipped; the result is deduplicated and sorted.
func Discover(explicit []string) []string {
	bases := explicit
	if len(bases) == 0 {
		for _, p := range Paths() {
			bases = append(bases, p, filepath.Join(p, "projects"))
		}
	}

	var files []string
	for _, base := range bases {
		if strings.HasSuffix(base, ".jsonl") || strings.HasSuffix(base, ".log") {
			if _, err := os.Stat(base); err == nil {
				files = append(files, base)
			}
			continue
		}
		files = append(files, walkDir(base)...)
	}

	files = lo.Uniq(files)
	sort.Strings(files)
	return files
}

func walkDir(base string) []string {
	var found []string
	// Walk errors are non-fatal: an unreadable tree just yields nothing.
	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] {
				return fs.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".jsonl") {
			found = append(found, path)
		}
		return nil
	})
	return found
}
