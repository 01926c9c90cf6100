package ui

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcheck/internal/config"
	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func newTestFormatter(buf *bytes.Buffer) *Formatter {
	cfg := config.New()
	cfg.ProjectPath = "/work"
	return NewFormatter(cfg, buf)
}

func TestFormatter_PrintMetaStats_Passed(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)

	f.PrintMetaStats(&domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			TotalSuites:     2,
			PassedSuites:    2,
			TotalTestCases:  4,
			PassedTestCases: 4,
			Assertions:      9,
			DurationSeconds: 1.5,
			Workers:         1,
			Seed:            20261017,
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Test Execution Statistics")
	assert.Regexp(t, `│ Assertions\s+│ 9\s+│`, out)
	assert.Regexp(t, `│ Duration\s+│ 1\.50s\s+│`, out)
	assert.Contains(t, out, "20261017")
	assert.Contains(t, out, "✓ All tests passed!")
}

func TestFormatter_PrintMetaStats_FailureTree(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)

	f.PrintMetaStats(&domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{TotalSuites: 2, FailedSuites: 2, FailedTestCases: 3},
		Details: []domain.TestFailure{
			{FilePath: "/work/suites/math/b.test.yaml", TestName: "b1"},
			{FilePath: "/work/suites/math/a.test.yaml", TestName: "a1"},
			{FilePath: "/work/suites/math/a.test.yaml", TestName: "a2"},
			{FilePath: "builtin:properties", TestName: "add is commutative"},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "✗ 2 suite(s) failed with 3 test case failure(s)")

	tree := out[strings.Index(out, "├── builtin:properties"):]
	expected := strings.Join([]string{
		"├── builtin:properties",
		"│   └── add is commutative",
		"└── suites",
		"    └── math",
		"        ├── a.test.yaml",
		"        │   ├── a1",
		"        │   └── a2",
		"        └── b.test.yaml",
		"            └── b1",
		"",
	}, "\n")
	assert.Equal(t, expected, tree)
}

func TestFormatter_PrintFailures(t *testing.T) {
	var buf bytes.Buffer
	f := newTestFormatter(&buf)

	f.PrintFailures([]domain.TestFailure{{
		SuiteName: "example",
		TestName:  "broken",
		Message:   "expected 4 to be 5 // Object.is equality",
		Expected:  "5",
		Actual:    "4",
		File:      "/work/suites/example.test.yaml",
		Line:      12,
	}})

	out := buf.String()
	assert.Contains(t, out, "✗ example › broken")
	assert.Contains(t, out, "at suites/example.test.yaml:12")
	assert.Contains(t, out, "expected: 5")
	assert.Contains(t, out, "received: 4")
}

func TestFormatter_PrintTestList(t *testing.T) {
	arith := harness.NewSuite("arith", "builtin:arith")
	arith.Test("we can add and subtract numbers", func(t *harness.T) {})
	file := harness.NewSuite("example", "/work/suites/example.test.yaml")
	file.Test("sums", func(t *harness.T) {})
	file.Test("differences", func(t *harness.T) {})
	bad := harness.FailedSuite("bad", "/work/suites/bad.test.yaml", errors.New("line 3: unknown operation"))

	suites := []*harness.Suite{arith, file, bad}
	failed := map[string]struct{}{"/work/suites/bad.test.yaml": {}}

	t.Run("suites only", func(t *testing.T) {
		var buf bytes.Buffer
		newTestFormatter(&buf).PrintTestList(suites, false, failed)

		expected := strings.Join([]string{
			"Found 3 suite(s):",
			"",
			"├── builtin:arith",
			"├── suites/example.test.yaml",
			"└── suites/bad.test.yaml [F]",
			"",
		}, "\n")
		assert.Equal(t, expected, buf.String())
	})

	t.Run("with cases", func(t *testing.T) {
		var buf bytes.Buffer
		newTestFormatter(&buf).PrintTestList(suites, true, nil)

		out := buf.String()
		assert.Contains(t, out, "Found 3 suite(s) with test cases:")
		assert.Contains(t, out, "│   └── we can add and subtract numbers\n")
		assert.Contains(t, out, "│   ├── sums\n│   └── differences\n")
		assert.Contains(t, out, "    └── (load error: line 3: unknown operation)\n")
		assert.NotContains(t, out, "[F]")
	})
}

func TestFormatFailureDetails(t *testing.T) {
	stack := make([]string, 12)
	for i := range stack {
		stack[i] = "frame"
	}
	details := formatFailureDetails(domain.TestFailure{
		SuiteName:  "properties",
		TestName:   "add is commutative",
		Message:    "expected [1] to be 2",
		Expected:   "2",
		Actual:     "1",
		File:       "builtin.go",
		Line:       30,
		StackTrace: stack,
	})

	assert.Contains(t, details, "Location: builtin.go:30")
	assert.Contains(t, details, "Expected: 2")
	assert.Contains(t, details, "Received: 1")
	// user text must not be parsed as color tags
	assert.Contains(t, details, "expected [1[] to be 2")
	assert.Equal(t, maxStackLines, strings.Count(details, "  frame\n"))
	assert.Contains(t, details, "... and 2 more lines")
}

func TestListItemAndHeader(t *testing.T) {
	failures := []domain.TestFailure{
		{TestName: "a"},
		{TestName: "b", Resolved: true},
		{},
	}

	assert.Equal(t, "[yellow]1.[white] a", listItemText(failures[0], 0))
	assert.Equal(t, "[gray]✓ 2. b[white]", listItemText(failures[1], 1))
	assert.Equal(t, "[yellow]3.[white] Test 3", listItemText(failures[2], 2))
	assert.Contains(t, headerText(failures), "(3 total, 2 unresolved)")

	assert.Equal(t,
		"[cyan]path:[white] [yellow]Unknown path[white]::[yellow]Test 4[white]\n",
		formatFailureStats(domain.TestFailure{}, 4))
}

type memStorage struct {
	saved *domain.TestResultsOutput
}

func (m *memStorage) Save(output *domain.TestResultsOutput) error {
	m.saved = output
	return nil
}

func (m *memStorage) Load() (*domain.TestResultsOutput, error) {
	return m.saved, nil
}

func TestErrorViewer_NoFailures(t *testing.T) {
	var buf bytes.Buffer
	ev := NewErrorViewer(&memStorage{}, &buf)

	require.NoError(t, ev.View(&domain.TestResultsOutput{}))
	assert.Equal(t, "✓ No test failures found!\n", buf.String())
}

func TestProgressBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewProgressBar(3, &buf)

	bar.Update(1, 2, 0)
	bar.Update(3, 4, 1)
	bar.Finish()

	assert.Contains(t, buf.String(), "passed: 4")
	assert.Contains(t, buf.String(), "failed: 1]")
}
