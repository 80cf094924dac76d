package database

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	nuts "github.com/vaudience/go-nuts"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

// Migration represents a single schema migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// MigrationsRunner applies the embedded migrations for one dialect
type MigrationsRunner struct {
	db         *sqlx.DB
	dialect    Dialect
	migrations []Migration
	quiet      bool
}

// NewMigrationsRunner loads the migrations matching the connection's dialect
func NewMigrationsRunner(db DB) (*MigrationsRunner, error) {
	runner := &MigrationsRunner{
		db:      db.GetDB(),
		dialect: db.Dialect(),
	}

	if err := runner.loadMigrations(); err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	return runner, nil
}

// DisableLogging silences progress output (used by tests)
func (r *MigrationsRunner) DisableLogging() {
	r.quiet = true
}

// Migrations returns the loaded migrations in version order
func (r *MigrationsRunner) Migrations() []Migration {
	return r.migrations
}

// loadMigrations reads NNNNNN_name.up.sql files from the dialect directory
func (r *MigrationsRunner) loadMigrations() error {
	dir := path.Join("migrations", string(r.dialect))
	entries, err := migrationFiles.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	for _, entry := range entries {
		filename := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(filename, ".up.sql") {
			continue
		}

		parts := strings.SplitN(filename, "_", 2)
		if len(parts) < 2 {
			continue
		}

		var version int
		if _, err := fmt.Sscanf(parts[0], "%d", &version); err != nil {
			nuts.L.Warnf("[Migrations] Skipping invalid migration file: %s", filename)
			continue
		}

		content, err := migrationFiles.ReadFile(path.Join(dir, filename))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", filename, err)
		}

		r.migrations = append(r.migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(parts[1], ".up.sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(r.migrations, func(i, j int) bool {
		return r.migrations[i].Version < r.migrations[j].Version
	})

	return nil
}

func (r *MigrationsRunner) createMigrationsTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		)`)
	return err
}

func (r *MigrationsRunner) appliedVersions() (map[int]bool, error) {
	var versions []int
	if err := r.db.Select(&versions, "SELECT version FROM schema_migrations ORDER BY version"); err != nil {
		return nil, err
	}

	applied := make(map[int]bool, len(versions))
	for _, v := range versions {
		applied[v] = true
	}
	return applied, nil
}

// Run executes all pending migrations, each inside its own transaction
func (r *MigrationsRunner) Run() error {
	if err := r.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := r.appliedVersions()
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	pending := 0
	for _, migration := range r.migrations {
		if applied[migration.Version] {
			continue
		}
		pending++

		r.logf("Applying migration %d: %s", migration.Version, migration.Name)

		tx, err := r.db.Beginx()
		if err != nil {
			return fmt.Errorf("failed to start transaction: %w", err)
		}

		for _, stmt := range splitStatements(migration.SQL) {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("failed to apply migration %d (%s): %w", migration.Version, migration.Name, err)
			}
		}

		if _, err := tx.Exec(
			tx.Rebind("INSERT INTO schema_migrations (version, name) VALUES (?, ?)"),
			migration.Version, migration.Name,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	if pending == 0 {
		r.logf("No pending migrations")
		return nil
	}
	r.logf("Applied %d migration(s)", pending)
	return nil
}

func (r *MigrationsRunner) logf(format string, args ...interface{}) {
	if r.quiet {
		return
	}
	nuts.L.Infof("[Migrations] "+format, args...)
}

// splitStatements splits a migration file on ';' terminators.
// Migration files must not contain ';' inside literals.
func splitStatements(sql string) []string {
	var out []string
	for _, stmt := range strings.Split(sql, ";") {
		if s := strings.TrimSpace(stmt); s != "" && !isCommentOnly(s) {
			out = append(out, s)
		}
	}
	return out
}

func isCommentOnly(stmt string) bool {
	for _, line := range strings.Split(stmt, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}
	return true
}
