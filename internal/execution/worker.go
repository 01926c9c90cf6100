package execution

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"mathcheck/internal/config"
	"mathcheck/internal/domain"
	"mathcheck/internal/harness"
	"mathcheck/internal/report"
)

// WorkerPool manages a pool of workers for parallel suite execution
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	collector *report.Collector
	progress  Progress
	observer  Observer
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, collector *report.Collector) *WorkerPool {
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		collector: collector,
	}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

// SetObserver sets the observer notified of each completed suite
func (wp *WorkerPool) SetObserver(observer Observer) {
	wp.observer = observer
}

// Execute executes suites in parallel using worker pool (no fail-fast).
func (wp *WorkerPool) Execute(ctx context.Context, suites []*harness.Suite) ([]domain.SuiteResult, time.Duration, error) {
	return wp.ExecuteWithOptions(ctx, suites, false)
}

// ExecuteWithOptions executes suites with optional fail-fast (stop dispatching after the first failed suite).
// Results are returned in the order of suites.
func (wp *WorkerPool) ExecuteWithOptions(ctx context.Context, suites []*harness.Suite, failFast bool) ([]domain.SuiteResult, time.Duration, error) {
	if len(suites) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(ctx, suites)
	}
	return wp.executeFailFast(ctx, suites)
}

type indexedResult struct {
	index  int
	result domain.SuiteResult
}

// tally tracks completion counts shared by the workers
type tally struct {
	mu        sync.Mutex
	completed int
	passed    int
	failed    int
}

func (wp *WorkerPool) workerCount(suites int) int {
	workerCount := wp.config.Processors
	if workerCount <= 0 {
		workerCount = 1
	}
	if workerCount > suites {
		workerCount = suites
	}
	return workerCount
}

// record updates counters, progress and observer for a finished suite.
// Returns true if the suite failed.
func (wp *WorkerPool) record(t *tally, result domain.SuiteResult) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	p, f := wp.collector.Counts(result)
	t.passed += p
	t.failed += f
	if wp.progress != nil {
		wp.progress.Update(t.completed, t.passed, t.failed)
	}
	if wp.observer != nil {
		wp.observer.ObserveSuite(result)
	}
	return !result.Success
}

// executeAll runs every suite, each worker taking its scheduled share.
func (wp *WorkerPool) executeAll(ctx context.Context, suites []*harness.Suite) ([]domain.SuiteResult, time.Duration, error) {
	workerCount := wp.workerCount(len(suites))
	distribution := wp.scheduler.Schedule(len(suites), workerCount)
	results := make(chan indexedResult, len(suites))

	var t tally
	startTime := time.Now()

	var wg sync.WaitGroup
	for i, indices := range distribution {
		wg.Add(1)
		go func(workerID int, indices []int) {
			defer wg.Done()
			for _, idx := range indices {
				if ctx.Err() != nil {
					return
				}
				result := wp.runner.Run(suites[idx], workerID)
				wp.record(&t, result)
				results <- indexedResult{index: idx, result: result}
			}
		}(i+1, indices)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	return wp.collect(ctx, results, startTime)
}

// executeFailFast runs suites and stops after the first failure.
func (wp *WorkerPool) executeFailFast(ctx context.Context, suites []*harness.Suite) ([]domain.SuiteResult, time.Duration, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan int, 1)
	results := make(chan indexedResult, len(suites))

	go func() {
		defer close(queue)
		for i := range suites {
			select {
			case <-runCtx.Done():
				return
			case queue <- i:
			}
		}
	}()

	var t tally
	var seenFailure bool
	var failMu sync.Mutex
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(len(suites)); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range queue {
				// drain without running once a failure stopped the run
				if runCtx.Err() != nil {
					continue
				}
				result := wp.runner.Run(suites[idx], workerID)
				failMu.Lock()
				done := seenFailure
				if !result.Success {
					seenFailure = true
				}
				failMu.Unlock()
				if done {
					continue
				}
				if wp.record(&t, result) {
					log.Debug().Str("suite", result.SuitePath).Msg("fail-fast: stopping after failed suite")
					cancel()
				}
				results <- indexedResult{index: idx, result: result}
			}
		}(i)
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	return wp.collect(ctx, results, startTime)
}

func (wp *WorkerPool) collect(ctx context.Context, results <-chan indexedResult, startTime time.Time) ([]domain.SuiteResult, time.Duration, error) {
	var indexed []indexedResult
	for r := range results {
		indexed = append(indexed, r)
	}
	if wp.progress != nil {
		wp.progress.Finish()
	}

	sort.Slice(indexed, func(i, j int) bool { return indexed[i].index < indexed[j].index })
	allResults := make([]domain.SuiteResult, len(indexed))
	for i, r := range indexed {
		allResults[i] = r.result
	}
	return allResults, time.Since(startTime), ctx.Err()
}
