// Package db manages the in-memory table store behind the dashboard
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"
)

// MemoryPath is the DSN for a private in-memory database.
const MemoryPath = ":memory:"

// DB wraps the SQL database connection with application-specific methods.
type DB struct {
	*sql.DB
	path string
}

// NewMemory opens an in-memory store. Nothing it holds outlives the process.
func NewMemory() (*DB, error) {
	return New(MemoryPath)
}

// New creates a new database connection and initializes the schema.
func New(path string) (*DB, error) {
	if path != MemoryPath {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(context.Background()); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{
		DB:   sqlDB,
		path: path,
	}

	if err := db.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	if err := db.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// Path returns the database DSN.
func (db *DB) Path() string {
	return db.path
}

// IsMemory reports whether the store lives only in process memory.
func (db *DB) IsMemory() bool {
	return db.path == MemoryPath
}

func (db *DB) configure() error {
	pragmas := []string{
		"PRAGMA synchronous=OFF",
		"PRAGMA cache_size=-16000", // 16MB cache
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	if !db.IsMemory() {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000")
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}

	return nil
}

func (db *DB) createSchema() error {
	if err := db.createSalesRecordsTable(); err != nil {
		return err
	}
	return db.createTeamOperationsTable()
}

func (db *DB) createSalesRecordsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS sales_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		leads INTEGER NOT NULL,
		sales INTEGER NOT NULL,
		conversion_rate REAL NOT NULL,
		revenue INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sales_records_date ON sales_records(date);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

func (db *DB) createTeamOperationsTable() error {
	query := `
	CREATE TABLE IF NOT EXISTS team_operations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		tasks_completed INTEGER NOT NULL,
		avg_days_per_task REAL NOT NULL,
		projects_completed INTEGER NOT NULL,
		late_projects INTEGER NOT NULL,
		task_efficiency REAL NOT NULL
	);
	`
	_, err := db.ExecContext(context.Background(), query)
	return err
}

// Close closes the database connection gracefully.
func (db *DB) Close() error {
	if !db.IsMemory() {
		// Checkpoint WAL before closing
		_, _ = db.ExecContext(context.Background(), "PRAGMA wal_checkpoint(TRUNCATE)")
	}
	return db.DB.Close()
}
