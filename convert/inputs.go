package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ResolveInputs resolves the list of checklist files to convert.
// Explicit args take precedence over the input directory: each arg is
// either a concrete path or a glob pattern (including ** recursion)
// expanded via doublestar. With no args, every file in inputDir with a
// case-insensitive .xml suffix is returned in lexical order. An empty
// result is not an error.
func ResolveInputs(args []string, inputDir string) ([]string, error) {
	if len(args) > 0 {
		return expandArgs(args)
	}
	return scanInputDir(inputDir)
}

// expandArgs expands explicit file arguments, deduplicating while
// preserving first-seen order.
func expandArgs(args []string) ([]string, error) {
	var resolved []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			resolved = append(resolved, path)
		}
	}

	for _, arg := range args {
		if !containsGlob(arg) {
			add(arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", arg, err)
		}
		for _, m := range matches {
			add(m)
		}
	}

	return resolved, nil
}

// scanInputDir lists checklist XML files directly under dir.
func scanInputDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	return files, nil
}

// containsGlob checks if a path contains glob characters.
func containsGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}
