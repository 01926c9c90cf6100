package commands

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"mathcheck/internal/config"
	"mathcheck/internal/discovery"
	"mathcheck/internal/harness"
	"mathcheck/internal/watch"
)

// WatchCommand runs all suites once, then reruns changed suite files
type WatchCommand struct {
	config  *config.Config
	run     *RunCommand
	scanner *discovery.Scanner
	parser  *discovery.Parser
	out     io.Writer
}

// NewWatchCommand creates a new WatchCommand
func NewWatchCommand(cfg *config.Config, run *RunCommand, scanner *discovery.Scanner, parser *discovery.Parser, out io.Writer) *WatchCommand {
	return &WatchCommand{
		config:  cfg,
		run:     run,
		scanner: scanner,
		parser:  parser,
		out:     out,
	}
}

// Execute runs the command until interrupted
func (wc *WatchCommand) Execute(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	suites, err := wc.run.loader.Load()
	if err != nil {
		return err
	}
	wc.runOnce(ctx, suites)

	root := wc.config.GetTestPath()
	color.New(color.FgCyan).Fprintf(wc.out, "\nWatching %s for suite changes (Ctrl+C to stop)\n", root)

	watcher := watch.New(root, wc.scanner, 0)
	return watcher.Run(ctx, func(paths []string) {
		changed := wc.run.filter.FilterByName(existing(paths), wc.config.Flags.NameFilter)
		if len(changed) == 0 {
			return
		}
		color.New(color.FgCyan).Fprintf(wc.out, "\n%d suite file(s) changed, rerunning\n", len(changed))
		wc.runOnce(ctx, wc.parser.LoadAll(changed))
	})
}

// runOnce runs suites and logs operational errors instead of stopping the watch
func (wc *WatchCommand) runOnce(ctx context.Context, suites []*harness.Suite) {
	if len(suites) == 0 {
		return
	}
	if _, err := wc.run.RunSuites(ctx, suites); err != nil {
		log.Error().Err(err).Msg("run failed")
	}
}

// existing drops paths that were removed
func existing(paths []string) []string {
	var kept []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			kept = append(kept, p)
		}
	}
	return kept
}
