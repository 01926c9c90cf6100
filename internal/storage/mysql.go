package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"mathcheck/internal/domain"
	"mathcheck/internal/migration"
)

const insertRunQuery = `INSERT INTO runs
	(started_at, total_suites, passed_suites, failed_suites, total_cases, passed_cases,
	 failed_cases, skipped_cases, assertions, duration_seconds, workers, seed)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const insertFailureQuery = `INSERT INTO failures
	(run_id, suite_name, test_name, file_path, message, expected, actual, file, line)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// MySQLArchive appends runs to the MySQL history database created by
// `mathcheck migrate`.
type MySQLArchive struct {
	manager *migration.DatabaseManager
}

// NewMySQLArchive creates a new MySQLArchive
func NewMySQLArchive(manager *migration.DatabaseManager) *MySQLArchive {
	return &MySQLArchive{manager: manager}
}

// Archive inserts the run and its failures in a single transaction
func (a *MySQLArchive) Archive(ctx context.Context, output *domain.TestResultsOutput) (int64, error) {
	db, err := a.manager.Open(ctx, true)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin archive transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertRunQuery, runArgs(output.Meta)...)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	if len(output.Details) > 0 {
		stmt, err := tx.PrepareContext(ctx, insertFailureQuery)
		if err != nil {
			return 0, fmt.Errorf("prepare failure insert: %w", err)
		}
		defer stmt.Close()

		for _, f := range output.Details {
			if _, err := stmt.ExecContext(ctx, failureArgs(runID, f)...); err != nil {
				return 0, fmt.Errorf("insert failure %s: %w", f.TestName, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit archive transaction: %w", err)
	}

	log.Debug().Int64("run_id", runID).Int("failures", len(output.Details)).Msg("archived run")
	return runID, nil
}

func runArgs(meta domain.TestResultsMeta) []any {
	return []any{
		startedAt(meta.Timestamp),
		meta.TotalSuites,
		meta.PassedSuites,
		meta.FailedSuites,
		meta.TotalTestCases,
		meta.PassedTestCases,
		meta.FailedTestCases,
		meta.SkippedTestCases,
		meta.Assertions,
		meta.DurationSeconds,
		meta.Workers,
		meta.Seed,
	}
}

func failureArgs(runID int64, f domain.TestFailure) []any {
	return []any{
		runID,
		f.SuiteName,
		f.TestName,
		f.FilePath,
		f.Message,
		nullString(f.Expected),
		nullString(f.Actual),
		nullString(f.File),
		sql.NullInt64{Int64: int64(f.Line), Valid: f.Line > 0},
	}
}

// startedAt parses the run timestamp, falling back to now for hand-edited
// result files.
func startedAt(timestamp string) time.Time {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return time.Now().UTC()
	}
	return t.UTC()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
