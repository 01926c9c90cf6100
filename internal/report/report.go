// Package report turns suite results into flat failure records and counts.
package report

import (
	"errors"

	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

// Collector extracts failures and case counts from suite results
type Collector struct{}

// NewCollector creates a new Collector
func NewCollector() *Collector {
	return &Collector{}
}

// Counts returns passed and failed case counts for a suite. Skipped cases
// count as neither. A suite with no cases at all (a load error or an empty
// suite) counts as one passed or failed case depending on its success.
func (c *Collector) Counts(result domain.SuiteResult) (passed, failed int) {
	for _, tc := range result.Cases {
		switch tc.Status {
		case domain.StatusPassed:
			passed++
		case domain.StatusFailed:
			failed++
		}
	}
	if len(result.Cases) > 0 {
		return passed, failed
	}

	// Fallback: one "test" per suite
	if result.Success {
		return 1, 0
	}
	return 0, 1
}

// Failures flattens the failed cases of a suite. A suite that could not be
// loaded yields a single failure carrying the load error.
func (c *Collector) Failures(result domain.SuiteResult) []domain.TestFailure {
	if result.Error != nil {
		return []domain.TestFailure{{
			SuiteName:  result.SuiteName,
			TestName:   "(suite)",
			FilePath:   result.SuitePath,
			Message:    result.Error.Error(),
			StackTrace: []string{},
			File:       result.SuitePath,
		}}
	}

	var failures []domain.TestFailure
	for _, tc := range result.Cases {
		if !tc.Failed() {
			continue
		}
		failure := domain.TestFailure{
			SuiteName:  result.SuiteName,
			TestName:   tc.Name,
			FilePath:   result.SuitePath,
			Message:    tc.Message,
			StackTrace: tc.Stack,
			File:       tc.File,
			Line:       tc.Line,
		}
		if failure.StackTrace == nil {
			failure.StackTrace = []string{}
		}
		var mismatch *harness.AssertionMismatch
		if errors.As(tc.Err, &mismatch) {
			failure.Expected = mismatch.Expected
			failure.Actual = mismatch.Actual
		}
		failures = append(failures, failure)
	}
	return failures
}

// AllFailures collects failures across results, in result order
func (c *Collector) AllFailures(results []domain.SuiteResult) []domain.TestFailure {
	var failures []domain.TestFailure
	for _, result := range results {
		if !result.Success {
			failures = append(failures, c.Failures(result)...)
		}
	}
	return failures
}

// FailedPaths returns the set of suite paths that have failures
func FailedPaths(failures []domain.TestFailure) map[string]struct{} {
	paths := make(map[string]struct{}, len(failures))
	for _, f := range failures {
		paths[f.FilePath] = struct{}{}
	}
	return paths
}
