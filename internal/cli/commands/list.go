package commands

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mathcheck/internal/config"
	"mathcheck/internal/report"
	"mathcheck/internal/storage"
	"mathcheck/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	loader    *suiteLoader
	formatter *ui.Formatter
	storage   storage.Storage
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	loader *suiteLoader,
	formatter *ui.Formatter,
	st storage.Storage,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		loader:    loader,
		formatter: formatter,
		storage:   st,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	suites, err := lc.loader.Load()
	if err != nil {
		return err
	}

	if len(suites) == 0 {
		color.New(color.FgYellow).Fprintln(cmd.OutOrStdout(), "No suites found")
		return nil
	}

	// Mark suites that failed last time; no previous run is fine
	var failedPaths map[string]struct{}
	if last, err := lc.storage.Load(); err == nil {
		failedPaths = report.FailedPaths(last.Details)
	} else {
		log.Debug().Err(err).Msg("no previous results")
	}

	lc.formatter.PrintTestList(suites, lc.config.Flags.TestCases, failedPaths)
	return nil
}
