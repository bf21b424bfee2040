package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// ErrNotConnected is returned when the store is used before Connect or after Close
var ErrNotConnected = errors.New("store not connected")

// Store owns the database connection and the physical schema
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Config holds database configuration
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the connection string
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// New creates a Store; no connection is opened until Connect is called
func New(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

// Connect opens the database connection with proper pooling and verifies it
func (s *Store) Connect(ctx context.Context, cfg Config) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	s.db = db
	return nil
}

// schemaStatements are executed independently by Initialize; each is
// idempotent so a partially created schema converges on re-run.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGSERIAL PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		email TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT customers_phone_number_key UNIQUE (phone_number),
		CONSTRAINT customers_email_key UNIQUE (email)
	)`,
	`CREATE TABLE IF NOT EXISTS addresses (
		id BIGSERIAL PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers (id) ON DELETE CASCADE,
		address_details TEXT NOT NULL,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		pin_code TEXT NOT NULL,
		is_primary BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers (phone_number)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_customer ON addresses (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_city ON addresses (city)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_state ON addresses (state)`,
	`CREATE INDEX IF NOT EXISTS idx_addresses_pin ON addresses (pin_code)`,
}

// Initialize creates the customers and addresses tables and their secondary
// indexes if absent. Statements run independently: a failure is logged and
// the remaining statements still run, but any failure is reported.
//
// Email uniqueness is enforced here (the stricter of two historical schema
// variants); pending product-owner confirmation.
func (s *Store) Initialize(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}

	var failed error
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.Error("schema statement failed",
				slog.String("error", err.Error()),
			)
			if failed == nil {
				failed = err
			}
		}
	}

	if failed != nil {
		return fmt.Errorf("failed to initialize schema: %w", failed)
	}

	return nil
}

// Conn returns the live connection handle
func (s *Store) Conn() (*sql.DB, error) {
	if s.db == nil {
		return nil, ErrNotConnected
	}
	return s.db, nil
}

// Close releases the connection; safe to call when no connection is open
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	db := s.db
	s.db = nil

	if err := db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	return nil
}

// Health performs a health check on the database
func (s *Store) Health(ctx context.Context) error {
	if s.db == nil {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var result int
	err := s.db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	if err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	if result != 1 {
		return fmt.Errorf("unexpected health check result: %d", result)
	}

	return nil
}
