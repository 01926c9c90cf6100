package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"mathcheck/internal/cli"
	"mathcheck/internal/cli/commands"
	"mathcheck/internal/config"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:           "mathcheck",
		Short:         "Arithmetic test runner",
		Long:          `Runs the arithmetic module's built-in suites and data-driven .test.yaml suites, reporting every failed assertion by test case.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cfg := config.New()
	var flags cli.Flags

	cmds := commands.NewCommands(cfg)
	cmds.Register(rootCmd, &flags)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, commands.ErrTestsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}
