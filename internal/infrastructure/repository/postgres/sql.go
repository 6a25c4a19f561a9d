package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Baguimon/STYX-sub000/internal/domain/assignment"
)

const (
	pqUniqueViolation      = "23505"
	pqSerializationFailure = "40001"
	pqForeignKeyViolation  = "23503"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// mapWriteError turns constraint races on roster rows into stale snapshot
// errors so callers refetch and re-apply.
func mapWriteError(op string, err error) error {
	if err == nil {
		return nil
	}
	switch pqCode(err) {
	case pqUniqueViolation, pqSerializationFailure, pqForeignKeyViolation:
		return fmt.Errorf("%w: %s: %v", assignment.ErrStaleSnapshot, op, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// bumpVersionQuery compare-and-sets the roster version of one row. Zero rows
// affected means the row moved on or no longer exists.
type bumpVersionQuery struct {
	table    string
	idColumn string
}

func (q bumpVersionQuery) sql() string {
	return fmt.Sprintf(
		`UPDATE %s SET roster_version = roster_version + 1, updated_at = NOW() WHERE %s = $1 AND roster_version = $2`,
		q.table, q.idColumn,
	)
}

// withRosterVersion runs fn in a transaction after bumping the roster version
// from expectedVersion. The whole change rolls back when fn fails.
func withRosterVersion(
	ctx context.Context,
	db *sqlx.DB,
	bump bumpVersionQuery,
	rosterID string,
	expectedVersion int64,
	fn func(tx *sqlx.Tx) error,
) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin roster tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, bump.sql(), rosterID, expectedVersion)
	if err != nil {
		return mapWriteError("bump roster version", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s is not at version %d", assignment.ErrStaleSnapshot, bump.table, rosterID, expectedVersion)
	}

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return mapWriteError("commit roster tx", err)
	}
	return nil
}

func expectOneRow(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("%w: %s matched %d rows", assignment.ErrStaleSnapshot, what, affected)
	}
	return nil
}
