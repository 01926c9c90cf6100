package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Scanner scans for suite files in a directory
type Scanner struct {
	skipDirs map[string]bool
	suffixes []string
}

// NewScanner creates a new Scanner with the given directories to skip and
// suite file suffixes to collect.
func NewScanner(skipDirs []string, suffixes []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap, suffixes: suffixes}
}

// Scan finds all suite files in the given root directory
func (s *Scanner) Scan(root string) ([]string, error) {
	var suiteFiles []string

	// Clean and validate the root path
	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("test path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("test path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && s.SkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if s.IsSuiteFile(d.Name()) {
			suiteFiles = append(suiteFiles, path)
		}
		return nil
	})

	log.Debug().Str("root", root).Int("suites", len(suiteFiles)).Msg("scanned for suite files")
	return suiteFiles, err
}

// SkipDir reports whether a directory with this name is excluded from scans.
// Hidden directories are always skipped.
func (s *Scanner) SkipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." && name != ".." {
		return true
	}
	return s.skipDirs[name]
}

// IsSuiteFile reports whether name carries one of the suite suffixes
func (s *Scanner) IsSuiteFile(name string) bool {
	for _, suffix := range s.suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}
