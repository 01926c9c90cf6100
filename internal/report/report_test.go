package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector()

	tests := []struct {
		name           string
		result         domain.SuiteResult
		passed, failed int
	}{
		{
			name: "mixed cases",
			result: domain.SuiteResult{Cases: []domain.TestCaseResult{
				{Status: domain.StatusPassed},
				{Status: domain.StatusFailed},
				{Status: domain.StatusSkipped},
				{Status: domain.StatusPassed},
			}},
			passed: 2, failed: 1,
		},
		{
			name:   "load error falls back to one failure",
			result: domain.SuiteResult{Success: false, Error: errors.New("bad yaml")},
			passed: 0, failed: 1,
		},
		{
			name: "all cases skipped",
			result: domain.SuiteResult{Success: true, Cases: []domain.TestCaseResult{
				{Status: domain.StatusSkipped},
				{Status: domain.StatusSkipped},
			}},
			passed: 0, failed: 0,
		},
		{
			name:   "empty successful suite",
			result: domain.SuiteResult{Success: true},
			passed: 1, failed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, f := c.Counts(tt.result)
			assert.Equal(t, tt.passed, p)
			assert.Equal(t, tt.failed, f)
		})
	}
}

func TestCollector_Failures(t *testing.T) {
	c := NewCollector()

	s := harness.NewSuite("arith", harness.BuiltinPrefix+"arith")
	s.Test("passes", func(t *harness.T) { harness.Expect(t, 3.0).ToBe(3) })
	s.Test("mismatch", func(t *harness.T) { harness.Expect(t, 3.0).ToBe(4) })
	s.Test("panics", func(t *harness.T) { panic("boom") })

	result := domain.SuiteResult{
		SuitePath: s.Path,
		SuiteName: s.Name,
		Cases:     harness.RunSuite(s, harness.RunOptions{}),
	}

	failures := c.Failures(result)
	require.Len(t, failures, 2)

	assert.Equal(t, "mismatch", failures[0].TestName)
	assert.Equal(t, "arith", failures[0].SuiteName)
	assert.Equal(t, "builtin:arith", failures[0].FilePath)
	assert.Equal(t, "3", failures[0].Actual)
	assert.Equal(t, "4", failures[0].Expected)
	assert.NotNil(t, failures[0].StackTrace)
	assert.Positive(t, failures[0].Line)

	assert.Equal(t, "panics", failures[1].TestName)
	assert.Equal(t, "panic: boom", failures[1].Message)
	assert.NotEmpty(t, failures[1].StackTrace)
	assert.Empty(t, failures[1].Expected)
}

func TestCollector_Failures_LoadError(t *testing.T) {
	c := NewCollector()
	failures := c.Failures(domain.SuiteResult{
		SuitePath: "suites/bad.test.yaml",
		SuiteName: "bad",
		Error:     errors.New("no test found in suite"),
	})

	require.Len(t, failures, 1)
	assert.Equal(t, "(suite)", failures[0].TestName)
	assert.Equal(t, "no test found in suite", failures[0].Message)
}

func TestCollector_AllFailures(t *testing.T) {
	c := NewCollector()
	results := []domain.SuiteResult{
		{SuitePath: "a", Success: true},
		{SuitePath: "b", Error: errors.New("x")},
		{SuitePath: "c", Cases: []domain.TestCaseResult{{Name: "one", Status: domain.StatusFailed, Message: "m"}}},
	}

	failures := c.AllFailures(results)
	require.Len(t, failures, 2)
	assert.Equal(t, "b", failures[0].FilePath)
	assert.Equal(t, "c", failures[1].FilePath)

	paths := FailedPaths(failures)
	assert.Len(t, paths, 2)
	assert.Contains(t, paths, "b")
	assert.NotContains(t, paths, "a")
}
