package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/itsatony/stationhub/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	nuts "github.com/vaudience/go-nuts"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Dialect names the SQL flavour a connection speaks.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func init() {
	// modernc registers as "sqlite", which sqlx does not know; queries are written with '?'.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// DB is the interface every database connection implements
type DB interface {
	Close() error
	Ping(ctx context.Context) error
	GetDB() *sqlx.DB
	Dialect() Dialect
}

// PostgresDB represents a PostgreSQL connection opened through lib/pq or pgx
type PostgresDB struct {
	db *sqlx.DB
}

// SQLiteDB represents an embedded SQLite database
type SQLiteDB struct {
	db   *sqlx.DB
	path string
}

// Open connects using the driver selected in the configuration.
func Open(cfg config.DatabaseConfig) (DB, error) {
	switch cfg.Driver {
	case "postgres", "pgx":
		return NewPostgresDB(cfg)
	case "sqlite":
		return NewSQLiteDB(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg config.DatabaseConfig) (DB, error) {
	db, err := NewPostgresDBFromDSN(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[PostgresDB] Connected to %s:%d/%s via %s", cfg.Host, cfg.Port, cfg.DBName, cfg.Driver)
	return db, nil
}

// NewPostgresDBFromDSN connects with an explicit driver ("postgres" or "pgx") and DSN
func NewPostgresDBFromDSN(driver, dsn string) (DB, error) {
	if driver == "" {
		driver = "postgres"
	}
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}
	return &PostgresDB{db: db}, nil
}

// NewSQLiteDB opens (or creates) an SQLite database file. ":memory:" is accepted.
func NewSQLiteDB(path string) (DB, error) {
	db, err := sqlx.Connect("sqlite", sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("error opening SQLite database: %w", err)
	}

	// one connection: SQLite serialises writers and ":memory:" is per-connection
	db.SetMaxOpenConns(1)

	nuts.L.Infof("[SQLiteDB] Opened %s", path)
	return &SQLiteDB{db: db, path: path}, nil
}

// sqliteDSN enables foreign keys on every connection and stores timestamps in a
// sortable format.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_time_format=sqlite"
}

// Implementation of DB interface for PostgresDB
func (p *PostgresDB) Close() error {
	return p.db.Close()
}

func (p *PostgresDB) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *PostgresDB) GetDB() *sqlx.DB {
	return p.db
}

func (p *PostgresDB) Dialect() Dialect {
	return DialectPostgres
}

// Implementation of DB interface for SQLiteDB
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) GetDB() *sqlx.DB {
	return s.db
}

func (s *SQLiteDB) Dialect() Dialect {
	return DialectSQLite
}
