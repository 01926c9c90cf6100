package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mathcheck/internal/config"
	"mathcheck/internal/discovery"
	"mathcheck/internal/domain"
	"mathcheck/internal/execution"
	"mathcheck/internal/harness"
	"mathcheck/internal/metrics"
	"mathcheck/internal/report"
	"mathcheck/internal/storage"
	"mathcheck/internal/ui"
)

// ErrTestsFailed is returned by run when any test case failed. main maps it
// to exit code 1 without printing it.
var ErrTestsFailed = errors.New("tests failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	loader    *suiteLoader
	filter    *discovery.Filter
	runner    *execution.Runner
	executor  *execution.WorkerPool
	collector *report.Collector
	storage   storage.Storage
	archiver  storage.Archiver
	formatter *ui.Formatter
	viewer    ui.Viewer
	errOut    io.Writer
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	loader *suiteLoader,
	filter *discovery.Filter,
	runner *execution.Runner,
	executor *execution.WorkerPool,
	collector *report.Collector,
	st storage.Storage,
	archiver storage.Archiver,
	formatter *ui.Formatter,
	viewer ui.Viewer,
	errOut io.Writer,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		loader:    loader,
		filter:    filter,
		runner:    runner,
		executor:  executor,
		collector: collector,
		storage:   st,
		archiver:  archiver,
		formatter: formatter,
		viewer:    viewer,
		errOut:    errOut,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	suites, err := rc.loader.Load()
	if err != nil {
		return err
	}

	if rc.config.Flags.OnlyFailed {
		last, err := rc.storage.Load()
		if err != nil {
			return fmt.Errorf("--failed needs a previous run: %w", err)
		}
		suites = only(suites, report.FailedPaths(last.Details))
	}

	if len(suites) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No suites to execute")
		return nil
	}

	output, err := rc.RunSuites(cmd.Context(), suites)
	if err != nil {
		return err
	}

	if !output.Passed() {
		if rc.config.Flags.OpenFails {
			if err := rc.viewer.View(output); err != nil {
				return err
			}
		}
		return ErrTestsFailed
	}
	return nil
}

// RunSuites executes suites, persists and reports the outcome. It is shared
// with watch mode.
func (rc *RunCommand) RunSuites(ctx context.Context, suites []*harness.Suite) (*domain.TestResultsOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts := harness.RunOptions{Bail: rc.config.Flags.FailFast}
	if pattern := rc.config.Flags.CaseFilter; pattern != "" {
		opts.Match = func(name string) bool { return rc.filter.Match(name, pattern) }
	}
	rc.runner.SetOptions(opts)

	runMetrics := metrics.New()
	rc.executor.SetObserver(runMetrics)
	rc.executor.SetProgress(ui.NewProgressBar(len(suites), rc.errOut))

	results, duration, err := rc.executor.ExecuteWithOptions(ctx, suites, rc.config.Flags.FailFast)
	if err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	failures := rc.collector.AllFailures(results)
	output := storage.BuildOutput(results, failures, duration, workers(rc.config.Processors, len(suites)), rc.config.Seed)

	if err := rc.storage.Save(output); err != nil {
		return nil, fmt.Errorf("failed to save test results: %w", err)
	}

	if path := rc.config.MetricsFile; path != "" {
		if err := runMetrics.WriteTextfile(path); err != nil {
			return nil, fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	if rc.config.Database.Archive {
		runID, err := rc.archiver.Archive(ctx, output)
		if err != nil {
			return nil, fmt.Errorf("failed to archive run: %w", err)
		}
		log.Info().Int64("run_id", runID).Msg("run archived")
	}

	rc.formatter.PrintFailures(failures)
	rc.formatter.PrintMetaStats(output)
	return output, nil
}

func workers(processors, suites int) int {
	if processors <= 0 {
		processors = 1
	}
	return min(processors, suites)
}
