// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrPatternEmpty         = errors.New("scratch pattern cannot be empty")
	ErrPatternPathTraversal = errors.New("scratch pattern contains path separator or null byte")
)

// DirPermissions is used for every directory the tool creates.
const DirPermissions = 0o750 // rwxr-x---

// ScratchDir creates a fresh directory under parent (os.TempDir() when empty)
// for the intermediate files of one run.
// Returns the directory and a cleanup function that removes it with its content.
func ScratchDir(parent, pattern string) (dir string, cleanup func(), err error) {
	if err := ValidatePattern(pattern); err != nil {
		return "", nil, err
	}

	if parent != "" {
		if err := os.MkdirAll(parent, DirPermissions); err != nil {
			return "", nil, fmt.Errorf("creating scratch parent: %w", err)
		}
	}

	dir, err = os.MkdirTemp(parent, pattern)
	if err != nil {
		return "", nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	cleanup = func() { _ = os.RemoveAll(dir) }
	return dir, cleanup, nil
}

// ValidatePattern checks that a scratch pattern is safe to pass to os.MkdirTemp.
func ValidatePattern(pattern string) error {
	if pattern == "" {
		return ErrPatternEmpty
	}
	if strings.ContainsAny(pattern, "/\\\x00") {
		return ErrPatternPathTraversal
	}
	return nil
}

// EnsureDir creates path and any missing parents.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, DirPermissions); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "reveal" -> false (name)
//   - "./reveal.yaml" -> true (relative path)
//   - "/etc/slides2pdf/reveal.yaml" -> true (absolute)
//   - "C:\config\reveal.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL a browser can open.
// file:// is accepted so decks exported to disk can be captured too.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "file://")
}
