package storage

import (
	"time"

	"mathcheck/internal/domain"
	"mathcheck/internal/report"
)

// BuildOutput computes run meta from suite results and pairs it with the
// flattened failures.
func BuildOutput(results []domain.SuiteResult, failures []domain.TestFailure, duration time.Duration, workers int, seed uint64) *domain.TestResultsOutput {
	collector := report.NewCollector()
	meta := domain.TestResultsMeta{
		TotalSuites:     len(results),
		Duration:        duration.String(),
		DurationSeconds: duration.Seconds(),
		Workers:         workers,
		Seed:            seed,
		Timestamp:       time.Now().Format(time.RFC3339),
	}

	for _, r := range results {
		if r.Success {
			meta.PassedSuites++
		} else {
			meta.FailedSuites++
		}

		passed, failed := collector.Counts(r)
		meta.PassedTestCases += passed
		meta.FailedTestCases += failed
		for _, tc := range r.Cases {
			if tc.Status == domain.StatusSkipped {
				meta.SkippedTestCases++
			}
			meta.Assertions += len(tc.Assertions)
		}
	}
	meta.TotalTestCases = meta.PassedTestCases + meta.FailedTestCases + meta.SkippedTestCases

	if failures == nil {
		failures = []domain.TestFailure{}
	}
	return &domain.TestResultsOutput{Meta: meta, Details: failures}
}
