// Package logfinder locates GC log files for the gclog command.
package logfinder

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// EnvLogDir is the environment variable name for specifying the log directory.
const EnvLogDir = "GCLOG_DIR"

// Sentinel errors.
var (
	ErrLogDirNotFound = errors.New("log directory not found")
	ErrNoLogFiles     = errors.New("no log files found")
)

// DefaultPatterns are the file name globs recognized as GC logs.
// They cover -Xlog:gc:file=gc.log and its rotated forms (gc.log.0, gc.log.1.current).
var DefaultPatterns = []string{
	"*.log",
	"*.log.[0-9]*",
	"gc*.txt",
}

// FindLogDir returns the directory to search for GC logs.
//
// Priority:
//  1. explicit (if non-empty)
//  2. GCLOG_DIR environment variable
//
// Returns ErrLogDirNotFound if neither names an existing directory.
// The returned path has symlinks resolved for consistency.
func FindLogDir(explicit string) (string, error) {
	if explicit != "" {
		if resolved := resolveDir(explicit); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s is not a directory", ErrLogDirNotFound, explicit)
	}

	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		if resolved := resolveDir(envDir); resolved != "" {
			return resolved, nil
		}
		return "", fmt.Errorf("%w: %s environment variable points to invalid directory", ErrLogDirNotFound, EnvLogDir)
	}

	return "", ErrLogDirNotFound
}

// logCandidate holds a log file path and its cached modification time.
// This avoids race conditions where files are deleted between stat and sort.
type logCandidate struct {
	path    string
	modTime int64
}

// FindLogFiles returns the regular files in dir matching any of patterns,
// oldest first so rotated logs come out in chronological order.
// With no patterns, DefaultPatterns is used.
//
// Returns ErrNoLogFiles if nothing matches.
func FindLogFiles(dir string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]struct{})
	var candidates []logCandidate
	for _, p := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, p))
		if err != nil {
			return nil, fmt.Errorf("globbing log files: %w", err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}

			info, err := os.Lstat(m)
			if err != nil || !info.Mode().IsRegular() {
				// Deleted, unreadable, or not a regular file.
				continue
			}
			candidates = append(candidates, logCandidate{
				path:    m,
				modTime: info.ModTime().UnixNano(),
			})
		}
	}

	if len(candidates) == 0 {
		return nil, ErrNoLogFiles
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].modTime != candidates[j].modTime {
			return candidates[i].modTime < candidates[j].modTime
		}
		return candidates[i].path < candidates[j].path
	})

	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}
	return paths, nil
}

// FindLatestLogFile returns the most recently modified GC log in dir.
func FindLatestLogFile(dir string) (string, error) {
	paths, err := FindLogFiles(dir)
	if err != nil {
		return "", err
	}
	return paths[len(paths)-1], nil
}

// resolveDir resolves symlinks and checks that dir is a directory.
// Returns the resolved path if valid, empty string otherwise.
func resolveDir(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}

	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return ""
	}
	return resolved
}
