package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters suites and test cases by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters suite files by name pattern using wildcard matching.
// Supports patterns like "*arith.test.yaml" or "*prop*"
func (f *Filter) FilterByName(paths []string, pattern string) []string {
	if pattern == "" {
		return paths
	}

	var filtered []string
	for _, path := range paths {
		if f.Match(filepath.Base(path), pattern) {
			filtered = append(filtered, path)
		}
	}
	return filtered
}

// Match reports whether name matches pattern. An empty pattern matches
// everything. Patterns with wildcards are tried with filepath.Match first,
// then as an ordered list of substrings; plain patterns match as substrings.
func (f *Filter) Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// More flexible match for patterns like "*Payment*": every non-empty
	// part must appear, in order
	rest := name
	matchedPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") {
			return false
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedPart = true
	}
	return matchedPart
}
