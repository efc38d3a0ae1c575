package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// DefaultInclude selects component sources.
	DefaultInclude = []string{"*.tsx", "*.jsx"}
	// DefaultExclude skips barrels, shared types and declaration files.
	DefaultExclude = []string{"index.*", "types.*", "*.d.ts"}
)

// Discover lists the files directly inside dir whose names match an include
// pattern and no exclude pattern. Paths are absolute and sorted. A missing
// or unreadable dir is an error.
func Discover(dir string, include, exclude []string) ([]string, error) {
	if err := validatePatterns(include, exclude); err != nil {
		return nil, err
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve input directory: %w", err)
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %s: %w", absDir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !Eligible(entry.Name(), include, exclude) {
			continue
		}
		files = append(files, filepath.Join(absDir, entry.Name()))
	}

	sort.Strings(files)
	return files, nil
}

// Eligible reports whether a file name passes the include and exclude
// patterns. An empty include list accepts every name.
func Eligible(name string, include, exclude []string) bool {
	for _, pattern := range exclude {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return false
		}
	}
	if len(include) == 0 {
		return true
	}
	for _, pattern := range include {
		if matched, _ := doublestar.Match(pattern, name); matched {
			return true
		}
	}
	return false
}

func validatePatterns(include, exclude []string) error {
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}
	return nil
}
