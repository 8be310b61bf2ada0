// Package catalog discovers loadable model files on disk. It feeds the
// HTTP /catalog endpoint and the CLI models listing; the registry never
// depends on it (a caller may init a model by any path it likes).
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"llmbridge/pkg/types"
)

// LoadDir scans a directory for *.gguf files and builds a catalog from
// filenames. ID is the full filename (including extension); Path is the
// absolute file path.
func LoadDir(dir string) ([]types.ModelFile, error) {
	base, err := ExpandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []types.ModelFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), ".gguf") {
			continue
		}
		p := filepath.Join(abs, name)
		var sizeMB int64
		if fi, err := e.Info(); err == nil {
			sizeMB = fi.Size() / (1024 * 1024)
		}
		models = append(models, types.ModelFile{ID: name, Name: name, Path: p, SizeMB: sizeMB})
	}
	return models, nil
}

// ExpandHome expands a leading '~' to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/llm
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
