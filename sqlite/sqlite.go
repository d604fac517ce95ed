// Package sqlite provides SQLite-based storage implementations for shipdesk services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string

	// Now returns the current time. Overridable for tests.
	Now func() time.Time
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{
		path: path,
		Now:  func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	pragmas := []string{"PRAGMA busy_timeout = 5000"}
	if db.path != ":memory:" {
		// WAL lets the dashboard keep reading while an extraction creates ships.
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS ships (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			vessel_name TEXT NOT NULL,
			vessel_type TEXT NOT NULL DEFAULT '',
			shipping_line TEXT NOT NULL DEFAULT '',
			port TEXT NOT NULL DEFAULT '',
			operation_date TEXT NOT NULL DEFAULT '',
			company TEXT NOT NULL DEFAULT '',
			operation_type TEXT NOT NULL DEFAULT '',
			berth TEXT NOT NULL DEFAULT '',
			operation_manager TEXT NOT NULL DEFAULT '',
			auto_ops_lead TEXT NOT NULL DEFAULT '',
			auto_ops_assistant TEXT NOT NULL DEFAULT '',
			heavy_ops_lead TEXT NOT NULL DEFAULT '',
			heavy_ops_assistant TEXT NOT NULL DEFAULT '',
			total_vehicles INTEGER NOT NULL DEFAULT 0,
			total_automobiles_discharge INTEGER NOT NULL DEFAULT 0,
			heavy_equipment_discharge INTEGER NOT NULL DEFAULT 0,
			total_electric_vehicles INTEGER NOT NULL DEFAULT 0,
			total_static_cargo INTEGER NOT NULL DEFAULT 0,
			brv_target INTEGER NOT NULL DEFAULT 0,
			zee_target INTEGER NOT NULL DEFAULT 0,
			sou_target INTEGER NOT NULL DEFAULT 0,
			expected_rate INTEGER NOT NULL DEFAULT 0,
			total_drivers INTEGER NOT NULL DEFAULT 0,
			shift_start TEXT NOT NULL DEFAULT '',
			shift_end TEXT NOT NULL DEFAULT '',
			break_duration INTEGER NOT NULL DEFAULT 0,
			target_completion TEXT NOT NULL DEFAULT '',
			tico_vans INTEGER NOT NULL DEFAULT 0,
			tico_station_wagons INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			progress INTEGER NOT NULL DEFAULT 0,
			start_time TEXT NOT NULL DEFAULT '',
			estimated_completion TEXT NOT NULL DEFAULT '',
			deck_data TEXT,
			turnaround_data TEXT,
			inventory_data TEXT,
			hourly_quantity_data TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_ships_status ON ships(status);
		CREATE INDEX IF NOT EXISTS idx_ships_operation_date ON ships(operation_date);

		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			created_at TEXT NOT NULL
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
