package migration

import (
	"context"
	"fmt"

	"github.com/fatih/color"
)

// Migrator prepares the run history schema
type Migrator interface {
	Run(ctx context.Context) error
}

// Schema holds the statements that create the history tables, in order
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		total_suites INT NOT NULL,
		passed_suites INT NOT NULL,
		failed_suites INT NOT NULL,
		total_cases INT NOT NULL,
		passed_cases INT NOT NULL,
		failed_cases INT NOT NULL,
		skipped_cases INT NOT NULL,
		assertions INT NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		workers INT NOT NULL,
		seed BIGINT UNSIGNED NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS failures (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		run_id BIGINT UNSIGNED NOT NULL,
		suite_name VARCHAR(255) NOT NULL,
		test_name VARCHAR(512) NOT NULL,
		file_path VARCHAR(1024) NOT NULL,
		message TEXT NOT NULL,
		expected TEXT,
		actual TEXT,
		file VARCHAR(1024),
		line INT,
		INDEX idx_failures_run (run_id),
		CONSTRAINT fk_failures_run FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// SchemaMigrator creates the history database and tables
type SchemaMigrator struct {
	manager *DatabaseManager
}

// NewSchemaMigrator creates a new SchemaMigrator
func NewSchemaMigrator(manager *DatabaseManager) *SchemaMigrator {
	return &SchemaMigrator{manager: manager}
}

// Run creates the database if needed and applies Schema
func (m *SchemaMigrator) Run(ctx context.Context) error {
	created, err := m.manager.EnsureDatabase(ctx)
	if err != nil {
		return err
	}
	if created {
		color.Green("✓ Created database %s", m.manager.config.Database.Name)
	}

	db, err := m.manager.Open(ctx, true)
	if err != nil {
		return err
	}
	defer db.Close()

	for i, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}

	color.Green("✓ History schema is up to date (%d tables)", len(Schema))
	return nil
}
