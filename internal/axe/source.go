package axe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceNotFound is returned by FindSource when axe-core cannot be located.
var ErrSourceNotFound = errors.New("axe-core source not found (install with: npm install axe-core)")

// sourceCandidates are relative to each directory searched by FindSource.
var sourceCandidates = []string{
	filepath.Join("node_modules", "axe-core", "axe.min.js"),
	filepath.Join("node_modules", "axe-core", "axe.js"),
}

// FindSource resolves the axe-core script.
//
// Precedence:
//  1. explicit (must exist)
//  2. node_modules/axe-core/axe.min.js (or axe.js) in startDir and each parent
func FindSource(explicit, startDir string) (string, error) {
	if p := strings.TrimSpace(explicit); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("axe source %q: %w", p, err)
		}
		return p, nil
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", startDir, err)
	}
	for {
		for _, rel := range sourceCandidates {
			p := filepath.Join(dir, rel)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ErrSourceNotFound
}

// LoadSource reads the script at path and rejects empty files.
func LoadSource(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read axe source: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("axe source %q is empty", path)
	}
	return string(b), nil
}
