package harness

import (
	"errors"
	"runtime/debug"
	"time"

	"mathcheck/internal/domain"
)

// T is the handle passed to a test body
type T struct {
	name       string
	assertions []domain.Assertion
	err        error
	file       string
	line       int
}

// Name returns the name of the running test case
func (t *T) Name() string {
	return t.name
}

// Fail records err as the failure of the test case and aborts it
func (t *T) Fail(err error) {
	if t.err == nil {
		t.err = err
	}
	panic(failNow{err: err})
}

func (t *T) assert(matcher string, pass bool, actual, expected, file string, line int) {
	t.assertions = append(t.assertions, domain.Assertion{
		Matcher:  matcher,
		Actual:   actual,
		Expected: expected,
		Passed:   pass,
		File:     file,
		Line:     line,
	})
	if pass {
		return
	}
	t.file, t.line = file, line
	t.Fail(&AssertionMismatch{
		Matcher:  matcher,
		Actual:   actual,
		Expected: expected,
		File:     file,
		Line:     line,
	})
}

// RunOptions controls how RunSuite executes cases
type RunOptions struct {
	// Match selects cases by name; nil runs every case
	Match func(name string) bool
	// Bail skips the remaining cases after the first failure
	Bail bool
}

// Run executes a single test case, recovering any failure raised by its body
func Run(tc TestCase) domain.TestCaseResult {
	t := &T{name: tc.Name}
	start := time.Now()

	var stack []string
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if fn, ok := r.(failNow); ok {
				t.err = fn.err
				return
			}
			stack = splitStack(debug.Stack())
			t.err = &PanicError{Value: r, Stack: stack}
		}()
		tc.Body(t)
	}()

	result := domain.TestCaseResult{
		Name:       tc.Name,
		Status:     domain.StatusPassed,
		Assertions: t.assertions,
		Duration:   time.Since(start),
	}
	if t.err != nil {
		result.Status = domain.StatusFailed
		result.Err = t.err
		result.Message = t.err.Error()
		result.Stack = stack
		result.File, result.Line = t.file, t.line
		var mismatch *AssertionMismatch
		if errors.As(t.err, &mismatch) && result.File == "" {
			result.File, result.Line = mismatch.File, mismatch.Line
		}
	}
	return result
}

// RunSuite executes the suite's cases sequentially in registration order
func RunSuite(s *Suite, opts RunOptions) []domain.TestCaseResult {
	results := make([]domain.TestCaseResult, 0, len(s.cases))
	bailed := false
	for _, tc := range s.cases {
		if bailed || (opts.Match != nil && !opts.Match(tc.Name)) {
			results = append(results, domain.TestCaseResult{Name: tc.Name, Status: domain.StatusSkipped})
			continue
		}
		result := Run(tc)
		results = append(results, result)
		if result.Failed() && opts.Bail {
			bailed = true
		}
	}
	return results
}
