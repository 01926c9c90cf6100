package execution

import (
	"context"
	"time"

	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

// Executor executes suites and returns results
type Executor interface {
	Execute(ctx context.Context, suites []*harness.Suite) ([]domain.SuiteResult, time.Duration, error)
}

// Progress receives updates as suites complete
type Progress interface {
	Update(completed, passed, failed int)
	Finish()
}

// Observer is notified of every completed suite
type Observer interface {
	ObserveSuite(result domain.SuiteResult)
}
