package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

const exampleSuite = `suite: example
tests:
  - name: we can add and subtract numbers
    expect:
      - op: subtract
        a: 2
        b: 1
        toBe: 1
      - op: add
        a: 1
        b: 2
        toBe: 3
  - name: floating point sums
    expect:
      - {op: add, a: 0.1, b: 0.2, toBeCloseTo: 0.3, digits: 5}
      - {op: add, a: 0.1, b: 0.2, toBe: 0.3, not: true}
  - name: broken on purpose
    expect:
      - {op: "+", a: 1, b: 2, toBe: 4}
`

func writeSuite(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParser_LoadSuite(t *testing.T) {
	parser := NewParser([]string{".test.yaml"})
	path := writeSuite(t, t.TempDir(), "example.test.yaml", exampleSuite)

	suite, err := parser.LoadSuite(path)
	require.NoError(t, err)

	assert.Equal(t, "example", suite.Name)
	assert.Equal(t, path, suite.Path)
	assert.Equal(t, []string{"we can add and subtract numbers", "floating point sums", "broken on purpose"}, suite.CaseNames())

	results := harness.RunSuite(suite, harness.RunOptions{})
	require.Len(t, results, 3)
	assert.Equal(t, domain.StatusPassed, results[0].Status, results[0].Message)
	assert.Equal(t, domain.StatusPassed, results[1].Status, results[1].Message)
	assert.Equal(t, domain.StatusFailed, results[2].Status)

	failed := results[2]
	assert.Equal(t, "expected 3 to be 4 // Object.is equality", failed.Message)
	assert.Equal(t, path, failed.File)
	assert.Equal(t, 19, failed.Line)
}

func TestParser_LoadSuite_Digits(t *testing.T) {
	parser := NewParser([]string{".test.yaml"})
	path := writeSuite(t, t.TempDir(), "digits.test.yaml", `tests:
  - name: zero digits accepts under a half
    expect:
      - {op: add, a: 1, b: 0.4, toBeCloseTo: 1, digits: 0}
  - name: zero digits rejects over a half
    expect:
      - {op: add, a: 1, b: 0.6, toBeCloseTo: 1, digits: 0}
  - name: omitted digits uses two
    expect:
      - {op: add, a: 1, b: 0.006, toBeCloseTo: 1}
`)

	suite, err := parser.LoadSuite(path)
	require.NoError(t, err)

	results := harness.RunSuite(suite, harness.RunOptions{})
	require.Len(t, results, 3)
	assert.Equal(t, domain.StatusPassed, results[0].Status, results[0].Message)
	assert.Equal(t, domain.StatusFailed, results[1].Status)
	assert.Contains(t, results[1].Message, "to be close to 1 (0 digits)")
	assert.Equal(t, domain.StatusFailed, results[2].Status)
	assert.Contains(t, results[2].Message, "to be close to 1 (2 digits)")
}

func TestParser_LoadSuite_Errors(t *testing.T) {
	parser := NewParser([]string{".test.yaml"})
	dir := t.TempDir()

	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{"invalid yaml", "tests: [", "error parsing suite"},
		{"no tests", "suite: empty\n", "no test found"},
		{"unnamed test", "tests:\n  - expect:\n      - {op: add, a: 1, b: 1, toBe: 2}\n", "has no name"},
		{"no expectations", "tests:\n  - name: empty\n", "has no expectations"},
		{"unknown op", "tests:\n  - name: mul\n    expect:\n      - {op: multiply, a: 1, b: 1, toBe: 1}\n", "unknown operation"},
		{"missing operand", "tests:\n  - name: half\n    expect:\n      - {op: add, a: 1, toBe: 1}\n", "needs both a and b"},
		{"missing matcher", "tests:\n  - name: none\n    expect:\n      - {op: add, a: 1, b: 1}\n", "needs toBe or toBeCloseTo"},
		{"both matchers", "tests:\n  - name: both\n    expect:\n      - {op: add, a: 1, b: 1, toBe: 2, toBeCloseTo: 2}\n", "mutually exclusive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSuite(t, dir, "bad.test.yaml", tt.content)
			_, err := parser.LoadSuite(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	t.Run("errors carry the line", func(t *testing.T) {
		path := writeSuite(t, dir, "line.test.yaml", "tests:\n  - name: mul\n    expect:\n      - {op: multiply, a: 1, b: 1, toBe: 1}\n")
		_, err := parser.LoadSuite(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path+":4:")
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		_, err := parser.LoadSuite("/non/existent/file.test.yaml")
		assert.Error(t, err)
	})
}

func TestParser_SuiteName(t *testing.T) {
	parser := NewParser([]string{".test.yaml", ".test.yml"})

	assert.Equal(t, "arith", parser.SuiteName("/a/b/arith.test.yaml"))
	assert.Equal(t, "props", parser.SuiteName("props.test.yml"))
	assert.Equal(t, "other", parser.SuiteName("other.yaml"))
}

func TestParser_FindTestCases(t *testing.T) {
	parser := NewParser([]string{".test.yaml"})
	path := writeSuite(t, t.TempDir(), "example.test.yaml", exampleSuite)

	cases, err := parser.FindTestCases(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"broken on purpose", "floating point sums", "we can add and subtract numbers"}, cases)
}

func TestParser_LoadAll(t *testing.T) {
	parser := NewParser([]string{".test.yaml"})
	dir := t.TempDir()
	good := writeSuite(t, dir, "good.test.yaml", exampleSuite)
	bad := writeSuite(t, dir, "bad.test.yaml", "tests: [")

	suites := parser.LoadAll([]string{good, bad})
	require.Len(t, suites, 2)
	assert.NoError(t, suites[0].LoadErr)
	assert.Error(t, suites[1].LoadErr)
	assert.Equal(t, "bad", suites[1].Name)
	assert.Equal(t, bad, suites[1].Path)
}
