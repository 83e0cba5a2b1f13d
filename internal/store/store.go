package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/roach88/jsonsql/internal/engine"
	"github.com/roach88/jsonsql/internal/register"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - no catalog
// 1 - jsonsql_columns catalog
const currentSchemaVersion = 1

// Store is a SQLite database with the JSON function library installed.
type Store struct {
	db      *sql.DB
	driver  string
	session *engine.Session
}

// Option configures Open.
type Option func(*options)

type options struct {
	register register.Options
	session  []engine.SessionOption
}

// WithRegisterOptions sets the options the functions are built with.
func WithRegisterOptions(o register.Options) Option {
	return func(opts *options) {
		opts.register = o
	}
}

// WithSessionOptions passes options to the planning session.
func WithSessionOptions(o ...engine.SessionOption) Option {
	return func(opts *options) {
		opts.session = append(opts.session, o...)
	}
}

// Open creates or opens a SQLite database at path. ":memory:" is accepted.
//
// Every connection of the returned store has the function library, the
// jsonsql_cast helper and the catalog table. Open is idempotent.
func Open(path string, opts ...Option) (*Store, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	catalog, err := register.NewCatalog(o.register)
	if err != nil {
		return nil, fmt.Errorf("build catalog: %w", err)
	}

	sessOpts := append([]engine.SessionOption{engine.WithIntPolicy(o.register.Function.IntPolicy)}, o.session...)
	session := engine.NewSession(sessOpts...)
	if err := register.RegisterAll(session, o.register); err != nil {
		return nil, fmt.Errorf("register functions: %w", err)
	}

	// sql.Register panics on reuse, and the hook closes over this store's
	// options, so every store gets its own driver name.
	driver := "sqlite3_jsonsql_" + uuid.NewString()
	sql.Register(driver, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return installFunctions(conn, catalog, session.IntPolicy())
		},
	})

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, and ":memory:" databases
	// are private to their connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db, path); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Info("store opened", "path", path, "driver", driver, "session", session.ID())
	return &Store{db: db, driver: driver, session: session}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	slog.Info("store closed", "driver", s.driver)
	return s.db.Close()
}

// DB returns the underlying sql.DB for direct queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Session returns the session used to plan queries.
func (s *Store) Session() *engine.Session {
	return s.session
}

// Query runs raw SQL. Callers are responsible for closing the returned rows.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// Exec runs a raw SQL statement.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, query, args...)
}

func applyPragmas(db *sql.DB, path string) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	if path != ":memory:" {
		pragmas = append([]string{"PRAGMA journal_mode = WAL"}, pragmas...)
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version >= currentSchemaVersion {
		return nil
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	if err := s.db.QueryRow(fmt.Sprintf("PRAGMA %s", name)).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
