package commands

import (
	"github.com/spf13/cobra"

	"mathcheck/internal/migration"
)

// MigrateCommand handles the migrate command
type MigrateCommand struct {
	migrator migration.Migrator
}

// NewMigrateCommand creates a new MigrateCommand
func NewMigrateCommand(migrator migration.Migrator) *MigrateCommand {
	return &MigrateCommand{migrator: migrator}
}

// Execute runs the command
func (mc *MigrateCommand) Execute(cmd *cobra.Command, args []string) error {
	return mc.migrator.Run(cmd.Context())
}
