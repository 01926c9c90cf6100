package harness

import (
	"fmt"
	"strings"
)

// AssertionMismatch is raised when an expectation does not hold
type AssertionMismatch struct {
	Matcher  string
	Actual   string
	Expected string
	File     string
	Line     int
}

func (e *AssertionMismatch) Error() string {
	switch e.Matcher {
	case "not.toBe":
		return fmt.Sprintf("expected %s not to be %s", e.Actual, e.Expected)
	case "toBeCloseTo":
		return fmt.Sprintf("expected %s to be close to %s", e.Actual, e.Expected)
	case "not.toBeCloseTo":
		return fmt.Sprintf("expected %s not to be close to %s", e.Actual, e.Expected)
	default:
		return fmt.Sprintf("expected %s to be %s // Object.is equality", e.Actual, e.Expected)
	}
}

// PanicError wraps a panic raised by a test body that was not an assertion
// failure.
type PanicError struct {
	Value any
	Stack []string
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// failNow is the panic payload used to abort a test case after a recorded
// failure. It never escapes Run.
type failNow struct {
	err error
}

func splitStack(stack []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(stack), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
