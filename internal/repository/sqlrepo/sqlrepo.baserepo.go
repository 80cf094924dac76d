package sqlrepo

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"

	"github.com/itsatony/stationhub/internal/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const pgUniqueViolation = "23505"

// baseRepo runs queries against either a *sqlx.DB or a *sqlx.Tx. Queries are
// written with '?' placeholders (or :named parameters) and rebound per driver.
type baseRepo struct {
	ex     sqlx.ExtContext
	entity string
}

func (r *baseRepo) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := sqlx.GetContext(ctx, r.ex, dest, r.ex.Rebind(query), args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return errors.NewNotFoundError(r.entity+" not found", err)
		}
		return errors.NewDatabaseError(fmt.Sprintf("failed to get %s", r.entity), err)
	}
	return nil
}

func (r *baseRepo) list(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	if err := sqlx.SelectContext(ctx, r.ex, dest, r.ex.Rebind(query), args...); err != nil {
		return errors.NewDatabaseError(fmt.Sprintf("failed to list %s", r.entity), err)
	}
	return nil
}

func (r *baseRepo) count(ctx context.Context, query string, args ...interface{}) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.ex, &n, r.ex.Rebind(query), args...); err != nil {
		return 0, errors.NewDatabaseError(fmt.Sprintf("failed to count %s", r.entity), err)
	}
	return n, nil
}

func (r *baseRepo) insert(ctx context.Context, query string, arg interface{}) error {
	if _, err := sqlx.NamedExecContext(ctx, r.ex, query, arg); err != nil {
		if isUniqueViolation(err) {
			return errors.NewValidationError(r.entity+" already exists", err)
		}
		return errors.NewDatabaseError(fmt.Sprintf("failed to create %s", r.entity), err)
	}
	return nil
}

// update runs a named UPDATE and reports not-found when no row matched
func (r *baseRepo) update(ctx context.Context, query string, arg interface{}) error {
	result, err := sqlx.NamedExecContext(ctx, r.ex, query, arg)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.NewValidationError(r.entity+" already exists", err)
		}
		return errors.NewDatabaseError(fmt.Sprintf("failed to update %s", r.entity), err)
	}
	return r.expectRows(result)
}

func (r *baseRepo) deleteByID(ctx context.Context, table, id string) error {
	result, err := r.ex.ExecContext(ctx, r.ex.Rebind("DELETE FROM "+table+" WHERE id = ?"), id)
	if err != nil {
		return errors.NewDatabaseError(fmt.Sprintf("failed to delete %s", r.entity), err)
	}
	return r.expectRows(result)
}

func (r *baseRepo) deleteByStation(ctx context.Context, table, stationID string) (int64, error) {
	result, err := r.ex.ExecContext(ctx, r.ex.Rebind("DELETE FROM "+table+" WHERE station_id = ?"), stationID)
	if err != nil {
		return 0, errors.NewDatabaseError(fmt.Sprintf("failed to delete %s for station", r.entity), err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewDatabaseError("failed to get rows affected", err)
	}
	return rows, nil
}

func (r *baseRepo) expectRows(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return errors.NewDatabaseError("failed to get rows affected", err)
	}
	if rows == 0 {
		return errors.NewNotFoundError(r.entity+" not found", nil)
	}
	return nil
}

// isUniqueViolation recognises unique-constraint failures from lib/pq, pgx and sqlite
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	var liteErr *sqlite.Error
	if stderrors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
