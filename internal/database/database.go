// Package database persists the gift-mail store across sessions, on SQLite
// by default or PostgreSQL for shared hosting.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/focustense/penpals-server/internal/config"
)

// Database wraps the SQL connection and provides persistence operations.
type Database struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open opens the database described by cfg, creating the SQLite file (and
// its directory) on first use.
func Open(cfg config.DatabaseConfig) (*Database, error) {
	dialect := NewDialect(DialectType(cfg.Driver))

	dsn := cfg.DSN
	if _, ok := dialect.(*SQLiteDialect); ok {
		dir := filepath.Dir(cfg.Path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = cfg.Path
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	d := &Database{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}

	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// migrate creates the schema if it doesn't exist.
func (d *Database) migrate() error {
	migrations := []string{
		// Scheduled but undelivered parcels, one per (player, recipient).
		`CREATE TABLE IF NOT EXISTS outgoing_gifts (
			player_id BIGINT NOT NULL,
			npc_name TEXT NOT NULL,
			gift TEXT NOT NULL,
			quest_id TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (player_id, npc_name)
		)`,

		// Bounced parcels awaiting pickup from return mail.
		`CREATE TABLE IF NOT EXISTS returned_gifts (
			return_id TEXT PRIMARY KEY,
			player_id BIGINT NOT NULL,
			npc_name TEXT NOT NULL,
			gift TEXT NOT NULL,
			pickup_year INTEGER NOT NULL,
			pickup_season TEXT NOT NULL,
			pickup_day INTEGER NOT NULL,
			reasons INTEGER NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_returned_gifts_player_id ON returned_gifts(player_id)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}

	return nil
}

// DB returns the underlying sql.DB for advanced operations.
func (d *Database) DB() *sql.DB {
	return d.db
}
