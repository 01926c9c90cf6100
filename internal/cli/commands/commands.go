package commands

import (
	"io"

	"github.com/spf13/cobra"

	"mathcheck/internal/cli"
	"mathcheck/internal/config"
	"mathcheck/internal/discovery"
	"mathcheck/internal/execution"
	"mathcheck/internal/harness"
	"mathcheck/internal/logging"
	"mathcheck/internal/migration"
	"mathcheck/internal/report"
	"mathcheck/internal/storage"
	"mathcheck/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	config *config.Config

	Run     *RunCommand
	List    *ListCommand
	Migrate *MigrateCommand
	Fails   *FailsCommand
	Watch   *WatchCommand
}

// NewCommands creates the command set. Dependencies are wired by build once
// the config file, environment and flags have been applied.
func NewCommands(cfg *config.Config) *Commands {
	return &Commands{config: cfg}
}

// build wires every command's dependencies from the loaded config
func (c *Commands) build(out, errOut io.Writer) {
	cfg := c.config

	scanner := discovery.NewScanner(cfg.PathsToIgnore, cfg.SuiteSuffixes)
	filter := discovery.NewFilter()
	suiteParser := discovery.NewParser(cfg.SuiteSuffixes)
	loader := newSuiteLoader(cfg, scanner, filter, suiteParser)

	runner := execution.NewRunner(harness.RunOptions{})
	collector := report.NewCollector()
	pool := execution.NewWorkerPool(cfg, runner, execution.NewRoundRobinScheduler(), collector)

	jsonStorage := storage.NewJSONStorage(cfg)
	dbManager := migration.NewDatabaseManager(cfg)
	formatter := ui.NewFormatter(cfg, out)
	errorViewer := ui.NewErrorViewer(jsonStorage, out)

	c.Run = NewRunCommand(cfg, loader, filter, runner, pool, collector, jsonStorage, storage.NewMySQLArchive(dbManager), formatter, errorViewer, errOut)
	c.List = NewListCommand(cfg, loader, formatter, jsonStorage)
	c.Migrate = NewMigrateCommand(migration.NewSchemaMigrator(dbManager))
	c.Fails = NewFailsCommand(jsonStorage, errorViewer)
	c.Watch = NewWatchCommand(cfg, c.Run, scanner, suiteParser, out)
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags) {
	rootCmd.PersistentFlags().StringVarP(&flags.ProjectPath, "project", "C", "", "Project directory (config, .env and results are resolved from here)")
	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Config file (default <project>/"+config.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "Diagnostic log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flags.LogFormat, "log-format", "", "Diagnostic log format (console or json)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := flags.Apply(c.config); err != nil {
			return err
		}
		if err := logging.Setup(c.config.LogLevel, c.config.LogFormat, cmd.ErrOrStderr()); err != nil {
			return err
		}
		c.build(cmd.OutOrStdout(), cmd.ErrOrStderr())
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run arithmetic test suites",
		Long:  "Discover suite files, run them together with the built-in suites and report the results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run.Execute(cmd, args)
		},
	}
	addRunFlags(runCmd, flags)
	runCmd.Flags().BoolVar(&flags.OnlyFailed, "failed", false, "Run only suites that failed in the last run")
	runCmd.Flags().BoolVar(&flags.OpenFails, "open-fails", false, "Open the fails viewer when the run finishes with failures")
	runCmd.Flags().BoolVar(&flags.Archive, "archive", false, "Append the run to the MySQL history database")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List discovered suites",
		Long:  "Scan and list all suites without executing them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.List.Execute(cmd, args)
		},
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g. '*arith*')")
	listCmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases under each suite")
	listCmd.Flags().BoolVar(&flags.NoBuiltin, "no-builtin", false, "Leave out the built-in suites")
	rootCmd.AddCommand(listCmd)

	// Migrate command
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the run history database",
		Long:  "Create the MySQL database and tables used by run --archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Migrate.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(migrateCmd)

	// Fails command
	failsCmd := &cobra.Command{
		Use:   "fails",
		Short: "View test failures interactively",
		Long:  "Display test failures from the last run in an interactive viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Fails.Execute(cmd, args)
		},
	}
	rootCmd.AddCommand(failsCmd)

	// Watch command
	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "Run suites and rerun them when suite files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Watch.Execute(cmd, args)
		},
	}
	addRunFlags(watchCmd, flags)
	rootCmd.AddCommand(watchCmd)
}

// addRunFlags adds the flags shared by run and watch
func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of suites to run concurrently (default 1)")
	cmd.Flags().StringVarP(&flags.TestPath, "test-path", "t", "", "Path to the folder where suite discovery should start")
	cmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter suites by name pattern (supports wildcards, e.g. '*arith*')")
	cmd.Flags().StringVarP(&flags.CaseFilter, "name", "n", "", "Run only test cases whose name matches the pattern")
	cmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop on first test failure")
	cmd.Flags().BoolVar(&flags.NoBuiltin, "no-builtin", false, "Skip the built-in suites")
	cmd.Flags().Uint64Var(&flags.Seed, "seed", 0, "Seed for property samples (default from config)")
	cmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "Write Prometheus metrics in textfile format to this path")
}
