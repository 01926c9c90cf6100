package domain

import "time"

// CaseStatus is the outcome of a single test case
type CaseStatus string

const (
	StatusPassed  CaseStatus = "passed"
	StatusFailed  CaseStatus = "failed"
	StatusSkipped CaseStatus = "skipped"
)

// Assertion records one expected-vs-actual check made inside a test case
type Assertion struct {
	Matcher  string `json:"matcher"`
	Actual   string `json:"actual"`
	Expected string `json:"expected"`
	Passed   bool   `json:"passed"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// TestCaseResult is the outcome of running one registered test case
type TestCaseResult struct {
	Name       string
	Status     CaseStatus
	Assertions []Assertion
	// Err is an AssertionMismatch, a PanicError, or nil
	Err     error
	Message string
	// Stack is only populated for panics
	Stack []string
	// File and Line locate the failing assertion
	File     string
	Line     int
	Duration time.Duration
}

// Failed reports whether the case failed
func (r TestCaseResult) Failed() bool {
	return r.Status == StatusFailed
}
