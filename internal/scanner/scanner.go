package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

var (
	// ErrUnsupportedSuffix is returned when an explicitly named file is not a header
	ErrUnsupportedSuffix = errors.New("unsupported file suffix")
	// ErrNoHeaders is returned when the given paths contain no headers at all
	ErrNoHeaders = errors.New("no headers found")
)

// Scanner recursively finds headers in directories
type Scanner struct {
	Fs       afero.Fs
	Suffixes []string
	Excludes []string
}

// NewScanner creates a header scanner over fsys accepting the given suffixes
func NewScanner(fsys afero.Fs, suffixes, excludes []string) *Scanner {
	return &Scanner{Fs: fsys, Suffixes: suffixes, Excludes: excludes}
}

// ScanPath scans a file or directory for headers. A file named directly must
// carry an accepted suffix.
func (s *Scanner) ScanPath(path string) ([]string, error) {
	info, err := s.Fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
		}
		return nil, err
	}

	if !info.IsDir() {
		if !s.IsHeader(path) {
			return nil, fmt.Errorf("%s: %w (accepted: %s)", path, ErrUnsupportedSuffix, strings.Join(s.Suffixes, ", "))
		}
		return []string{path}, nil
	}

	var files []string
	err = afero.Walk(s.Fs, path, func(filePath string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped
		}

		if info.IsDir() {
			if filePath != path && s.shouldExclude(filePath) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.IsHeader(filePath) && !s.shouldExclude(filePath) {
			files = append(files, filePath)
		}
		return nil
	})

	return files, err
}

// ScanPaths scans several paths, dropping duplicates
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]bool)

	for _, path := range paths {
		files, err := s.ScanPath(path)
		if err != nil {
			return nil, err
		}

		for _, f := range files {
			key := filepath.Clean(f)
			if !seen[key] {
				seen[key] = true
				allFiles = append(allFiles, f)
			}
		}
	}

	if len(allFiles) == 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(paths, ", "), ErrNoHeaders)
	}
	return allFiles, nil
}

// IsHeader reports whether path ends in one of the accepted suffixes
func (s *Scanner) IsHeader(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, suffix := range s.Suffixes {
		if ext == strings.ToLower(suffix) {
			return true
		}
	}
	return false
}

func (s *Scanner) shouldExclude(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range s.Excludes {
		if base == exclude {
			return true
		}
		if strings.Contains(path, string(filepath.Separator)+exclude+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
