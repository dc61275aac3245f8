package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/go-sql-driver/mysql"
	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name can be used unquoted as a table name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

type Options struct {
	Driver string
	DSN    string
	Table  string
	// CreateSchema creates the client table when it does not exist yet.
	CreateSchema bool
	Logger       zerolog.Logger
}

type DB struct {
	*sqlx.DB
	dialect Dialect
	table   string
}

func Open(ctx context.Context, opts Options) (*DB, error) {
	dialect, ok := dialects[opts.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %q", opts.Driver)
	}
	if !ValidIdentifier(opts.Table) {
		return nil, fmt.Errorf("invalid table name: %q", opts.Table)
	}

	var (
		db  *sqlx.DB
		err error
	)
	switch opts.Driver {
	case DriverSQLite:
		db, err = openSQLite(ctx, opts.DSN)
	case DriverMySQL:
		db, err = openMySQL(opts.DSN)
	case DriverPostgres:
		db, err = openPostgres(opts.DSN, opts.Logger)
	}
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &DB{DB: db, dialect: dialect, table: opts.Table}
	if opts.CreateSchema {
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
	}

	opts.Logger.Debug().
		Str("driver", opts.Driver).
		Str("table", opts.Table).
		Msg("database opened")

	return store, nil
}

func openSQLite(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases coherent and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return db, nil
}

func openMySQL(dsn string) (*sqlx.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mysql dsn: %w", err)
	}

	// Report matched rows rather than changed rows so Update can tell
	// "no such client" apart from "same values".
	cfg.ClientFoundRows = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return sqlx.NewDb(sql.OpenDB(connector), DriverMySQL), nil
}

func openPostgres(dsn string, logger zerolog.Logger) (*sqlx.DB, error) {
	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}

	cfg.Tracer = &tracelog.TraceLog{
		Logger:   pgxzero.NewLogger(logger),
		LogLevel: traceLevel(logger.GetLevel()),
	}

	// sqlx picks $n placeholders from the "pgx" driver name.
	return sqlx.NewDb(stdlib.OpenDB(*cfg), "pgx"), nil
}

// traceLevel logs every statement when debugging and only failures otherwise.
func traceLevel(level zerolog.Level) tracelog.LogLevel {
	if level <= zerolog.DebugLevel {
		return tracelog.LogLevelInfo
	}
	return tracelog.LogLevelError
}

func (db *DB) Table() string {
	return db.table
}

func (db *DB) Dialect() Dialect {
	return db.dialect
}

func (db *DB) Close() error {
	return db.DB.Close()
}
