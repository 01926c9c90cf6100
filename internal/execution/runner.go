package execution

import (
	"time"

	"github.com/rs/zerolog/log"

	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
)

// Runner executes a single suite
type Runner struct {
	options harness.RunOptions
}

// NewRunner creates a new Runner
func NewRunner(opts harness.RunOptions) *Runner {
	return &Runner{options: opts}
}

// SetOptions replaces the options used for subsequent runs
func (r *Runner) SetOptions(opts harness.RunOptions) {
	r.options = opts
}

// Run executes every case of the suite sequentially
func (r *Runner) Run(suite *harness.Suite, workerID int) domain.SuiteResult {
	start := time.Now()
	result := domain.SuiteResult{
		SuitePath: suite.Path,
		SuiteName: suite.Name,
		WorkerID:  workerID,
	}

	if suite.LoadErr != nil {
		result.Error = suite.LoadErr
		result.Duration = time.Since(start)
		log.Warn().Err(suite.LoadErr).Str("suite", suite.Path).Msg("suite could not be loaded")
		return result
	}

	result.Cases = harness.RunSuite(suite, r.options)
	result.Success = true
	for _, tc := range result.Cases {
		if tc.Failed() {
			result.Success = false
			break
		}
	}
	result.Duration = time.Since(start)

	log.Debug().
		Str("suite", suite.Path).
		Int("worker", workerID).
		Int("cases", len(result.Cases)).
		Bool("success", result.Success).
		Dur("duration", result.Duration).
		Msg("suite finished")
	return result
}
