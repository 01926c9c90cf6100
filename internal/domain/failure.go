package domain

// TestFailure represents a failed test case
type TestFailure struct {
	SuiteName  string   `json:"suite_name"`
	TestName   string   `json:"test_name"`
	FilePath   string   `json:"file_path"`
	Message    string   `json:"message"`
	Expected   string   `json:"expected,omitempty"`
	Actual     string   `json:"actual,omitempty"`
	StackTrace []string `json:"stack_trace"`
	File       string   `json:"file"`
	Line       int      `json:"line"`
	Resolved   bool     `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
