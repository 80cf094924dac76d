package database

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/itsatony/stationhub/internal/config"
	"github.com/jmoiron/sqlx"
)

func setupTestSQLite(t *testing.T) DB {
	t.Helper()

	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	runner, err := NewMigrationsRunner(db)
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	runner.DisableLogging()
	if err := runner.Run(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestMigrationsCreateSchema(t *testing.T) {
	db := setupTestSQLite(t)

	tables := []string{
		"users", "stations", "sensors", "routers", "technical_details",
		"breakdowns", "interventions", "station_history", "schema_migrations",
	}
	for _, table := range tables {
		var name string
		err := db.GetDB().Get(&name, "SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table)
		if err != nil {
			t.Errorf("table %s not created: %v", table, err)
		}
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	db := setupTestSQLite(t)

	runner, err := NewMigrationsRunner(db)
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	runner.DisableLogging()
	if err := runner.Run(); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	var count int
	if err := db.GetDB().Get(&count, "SELECT COUNT(*) FROM schema_migrations"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != len(runner.Migrations()) {
		t.Errorf("expected %d recorded migrations, got %d", len(runner.Migrations()), count)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	db := setupTestSQLite(t)

	_, err := db.GetDB().Exec(
		`INSERT INTO sensors (id, station_id, sensor_type, status, created_at) VALUES ('sn_1', 'st_missing', 'temp', 'operativo', CURRENT_TIMESTAMP)`,
	)
	if err == nil {
		t.Fatal("expected foreign key violation for unknown station")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := setupTestSQLite(t)
	ctx := context.Background()
	sentinel := errors.New("boom")

	err := WithTx(ctx, db.GetDB(), func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(tx.Rebind(
			`INSERT INTO users (id, username, email, password_hash, is_admin, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`),
			"usr_1", "ana", "ana@example.com", "x", false,
		); err != nil {
			return err
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}

	var count int
	if err := db.GetDB().Get(&count, "SELECT COUNT(*) FROM users"); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rollback, found %d users", count)
	}
}

func TestWithTxCommits(t *testing.T) {
	db := setupTestSQLite(t)

	err := WithTx(context.Background(), db.GetDB(), func(tx *sqlx.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO users (id, username, email, password_hash, is_admin, created_at, updated_at)
			 VALUES ('usr_1', 'ana', 'ana@example.com', 'x', 0, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		)
		return err
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var count int
	db.GetDB().Get(&count, "SELECT COUNT(*) FROM users")
	if count != 1 {
		t.Errorf("expected 1 user, got %d", count)
	}
}

func TestSplitStatements(t *testing.T) {
	sql := `-- header comment
CREATE TABLE a (id INT);

-- only a comment;
CREATE INDEX idx ON a(id);
`
	stmts := splitStatements(sql)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "mysql"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

// TestPostgresMigrations runs against a real server when TEST_DATABASE_URL is set.
func TestPostgresMigrations(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres integration test")
	}

	db, err := NewPostgresDBFromDSN("postgres", dsn)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer db.Close()

	runner, err := NewMigrationsRunner(db)
	if err != nil {
		t.Fatalf("failed to load migrations: %v", err)
	}
	runner.DisableLogging()
	if err := runner.Run(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
}

func TestSQLiteDSN(t *testing.T) {
	if got := sqliteDSN(":memory:"); got != ":memory:?_pragma=foreign_keys(1)&_time_format=sqlite" {
		t.Errorf("unexpected dsn %q", got)
	}
	if got := sqliteDSN("file:test.db?cache=shared"); got != "file:test.db?cache=shared&_pragma=foreign_keys(1)&_time_format=sqlite" {
		t.Errorf("unexpected dsn %q", got)
	}
}
