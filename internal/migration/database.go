package migration

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"mathcheck/internal/config"
)

var validDatabaseName = regexp.MustCompile(`^[A-Za-z0-9_]{1,64}$`)

// DatabaseManager manages the run history database
type DatabaseManager struct {
	config *config.Config
}

// NewDatabaseManager creates a new DatabaseManager
func NewDatabaseManager(cfg *config.Config) *DatabaseManager {
	return &DatabaseManager{config: cfg}
}

// DSN returns the driver DSN. Without withDB it connects to the server only,
// which is needed before the database exists.
func (dm *DatabaseManager) DSN(withDB bool) string {
	dsn := mysql.NewConfig()
	dsn.User = dm.config.Database.User
	dsn.Passwd = dm.config.Database.Password
	dsn.Net = "tcp"
	dsn.Addr = dm.config.DatabaseAddr()
	dsn.ParseTime = true
	dsn.Timeout = 5 * time.Second
	if withDB {
		dsn.DBName = dm.config.Database.Name
	}
	return dsn.FormatDSN()
}

// Open connects and pings the server (withDB=false) or the history database
func (dm *DatabaseManager) Open(ctx context.Context, withDB bool) (*sql.DB, error) {
	db, err := sql.Open("mysql", dm.DSN(withDB))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database server %s: %w", dm.config.DatabaseAddr(), err)
	}
	return db, nil
}

// EnsureDatabase creates the history database if it does not exist.
// Returns true when it was created.
func (dm *DatabaseManager) EnsureDatabase(ctx context.Context) (bool, error) {
	dbName := dm.config.Database.Name
	if !IsValidDatabaseName(dbName) {
		return false, fmt.Errorf("invalid database name: %q", dbName)
	}

	db, err := dm.Open(ctx, false)
	if err != nil {
		return false, err
	}
	defer db.Close()

	exists, err := dm.databaseExists(ctx, db, dbName)
	if err != nil {
		return false, fmt.Errorf("failed to check database %s: %w", dbName, err)
	}
	if exists {
		return false, nil
	}

	if err := dm.createDatabase(ctx, db, dbName); err != nil {
		return false, fmt.Errorf("failed to create database %s: %w", dbName, err)
	}
	log.Info().Str("database", dbName).Msg("created history database")
	return true, nil
}

// databaseExists checks if a database exists
func (dm *DatabaseManager) databaseExists(ctx context.Context, db *sql.DB, dbName string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"
	err := db.QueryRowContext(ctx, query, dbName).Scan(&exists)
	return exists, err
}

// createDatabase creates a new database. The name is validated by the caller
// since identifiers can't be bound as parameters.
func (dm *DatabaseManager) createDatabase(ctx context.Context, db *sql.DB, dbName string) error {
	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s` CHARACTER SET utf8mb4", dbName)
	_, err := db.ExecContext(ctx, query)
	return err
}

// IsValidDatabaseName reports whether name is safe to interpolate as an identifier
func IsValidDatabaseName(name string) bool {
	return validDatabaseName.MatchString(name)
}
