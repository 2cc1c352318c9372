// Package postgres provides PostgreSQL-based storage implementations for lingua services.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

const (
	DefaultMaxOpenConns    = 10
	DefaultMaxIdleConns    = 5
	DefaultConnMaxLifetime = 5 * time.Minute
	DefaultPingTimeout     = 5 * time.Second
)

// Config holds connection settings, typically read from the PG* environment.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the key/value connection string for lib/pq.
func (c Config) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslmode,
	)
}

// DB represents a pooled PostgreSQL connection.
type DB struct {
	db  *sqlx.DB
	dsn string
}

// NewDB creates a new DB for the given connection string.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sqlx.Open("postgres", db.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(DefaultMaxOpenConns)
	conn.SetMaxIdleConns(DefaultMaxIdleConns)
	conn.SetConnMaxLifetime(DefaultConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), DefaultPingTimeout)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	db.db = conn

	if err := db.createSchema(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// createSchema creates the database tables if they don't exist.
// The seq columns preserve insertion order for listings.
func (db *DB) createSchema(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS alphabets (
			letter TEXT PRIMARY KEY,
			seq BIGSERIAL,
			url TEXT NOT NULL,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS words (
			id TEXT PRIMARY KEY,
			seq BIGSERIAL,
			alphabet TEXT NOT NULL,
			text TEXT NOT NULL,
			url TEXT NOT NULL,
			definitions TEXT[] NOT NULL DEFAULT '{}',
			needs_review BOOLEAN NOT NULL DEFAULT FALSE,
			deleted BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (alphabet, url)
		);

		CREATE INDEX IF NOT EXISTS idx_words_needs_review ON words(needs_review);
	`

	_, err := db.db.ExecContext(ctx, schema)
	return err
}
