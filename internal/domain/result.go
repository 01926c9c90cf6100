package domain

import "time"

// SuiteResult represents the result of executing one suite
type SuiteResult struct {
	SuitePath string           // File path, or "builtin:<name>" for compiled-in suites
	SuiteName string           // Human readable suite name
	Success   bool             // Whether every executed case passed
	Cases     []TestCaseResult // Per-case outcomes in registration order
	Error     error            // Set when the suite could not be loaded
	Duration  time.Duration    // Time taken to execute
	WorkerID  int
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	TotalSuites      int     `json:"total_suites"`
	PassedSuites     int     `json:"passed_suites"`
	FailedSuites     int     `json:"failed_suites"`
	TotalTestCases   int     `json:"total_test_cases"`
	PassedTestCases  int     `json:"passed_test_cases"`
	FailedTestCases  int     `json:"failed_test_cases"`
	SkippedTestCases int     `json:"skipped_test_cases"`
	Assertions       int     `json:"assertions"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Workers          int     `json:"workers"`
	Seed             uint64  `json:"seed"`
	Timestamp        string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}

// Passed reports whether the run had no failing suites
func (o *TestResultsOutput) Passed() bool {
	return o.Meta.FailedSuites == 0 && o.Meta.FailedTestCases == 0
}
