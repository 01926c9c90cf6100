// Package harness registers named test cases and runs them with
// expect-style assertions. A failing assertion aborts only the test case it
// belongs to; the failure is recorded against the case name and sibling
// cases keep running.
package harness

import "strings"

// TestCase is a named body registered on a Suite
type TestCase struct {
	Name string
	Body func(t *T)
}

// Suite is an ordered collection of test cases from one source
type Suite struct {
	Name    string
	Path    string
	LoadErr error
	cases   []TestCase
}

// NewSuite creates an empty suite
func NewSuite(name, path string) *Suite {
	return &Suite{Name: name, Path: path}
}

// FailedSuite creates a suite that could not be loaded. Running it reports
// err as a failure of the whole suite.
func FailedSuite(name, path string, err error) *Suite {
	return &Suite{Name: name, Path: path, LoadErr: err}
}

// Test registers a test case. Cases run in registration order.
func (s *Suite) Test(name string, body func(t *T)) {
	s.cases = append(s.cases, TestCase{Name: name, Body: body})
}

// Cases returns a copy of the registered cases
func (s *Suite) Cases() []TestCase {
	out := make([]TestCase, len(s.cases))
	copy(out, s.cases)
	return out
}

// CaseNames returns the registered case names in order
func (s *Suite) CaseNames() []string {
	names := make([]string, len(s.cases))
	for i, tc := range s.cases {
		names[i] = tc.Name
	}
	return names
}

// Len returns the number of registered cases
func (s *Suite) Len() int {
	return len(s.cases)
}

// IsBuiltin reports whether the suite is compiled into the binary rather
// than loaded from a file.
func (s *Suite) IsBuiltin() bool {
	return strings.HasPrefix(s.Path, BuiltinPrefix)
}

// BuiltinPrefix marks the Path of compiled-in suites
const BuiltinPrefix = "builtin:"
