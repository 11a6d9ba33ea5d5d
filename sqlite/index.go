package sqlite

import (
	"context"

	"github.com/fwojciec/locate"
)

// Compile-time interface verification.
var _ locate.IndexService = (*IndexService)(nil)

// IndexService implements locate.IndexService using SQLite.
type IndexService struct {
	db *DB
}

// NewIndexService creates a new IndexService.
func NewIndexService(db *DB) *IndexService {
	return &IndexService{db: db}
}

// ReplaceAll drops the FILES table and refills it with paths inside one
// transaction. Nothing is visible to readers until commit, and any error
// leaves the previous index in place.
func (s *IndexService) ReplaceAll(ctx context.Context, paths []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS FILES`); err != nil {
		return storageError("drop index", err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE FILES (PATH TEXT)`); err != nil {
		return storageError("create index", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO FILES (PATH) VALUES (?)`)
	if err != nil {
		return storageError("prepare insert", err)
	}
	defer stmt.Close()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return storageError("insert", err)
		}
		if err := locate.ValidatePath(path); err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, path); err != nil {
			return storageError("insert", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageError("commit", err)
	}
	return nil
}

// Scan evaluates pattern against every indexed path and returns the matches
// in insertion order. The pattern is compiled by the caller and reused for
// every row.
func (s *IndexService) Scan(ctx context.Context, pattern *locate.Pattern) ([]string, error) {
	if pattern == nil || pattern.Expr == nil {
		return nil, locate.Errorf(locate.EINVALID, "compiled pattern required")
	}

	rows, err := s.db.QueryContext(ctx, `SELECT PATH FROM FILES ORDER BY rowid`)
	if err != nil {
		return nil, storageError("scan", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, storageError("scan", err)
		}
		if pattern.Match(path) {
			matches = append(matches, path)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("scan", err)
	}
	return matches, nil
}

// Count returns the number of indexed paths.
func (s *IndexService) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM FILES`).Scan(&n); err != nil {
		return 0, storageError("count", err)
	}
	return n, nil
}

// storageError wraps err as ESTORAGE unless it already carries an
// application code.
func storageError(op string, err error) error {
	if code := locate.ErrorCode(err); code != locate.EINTERNAL {
		return err
	}
	return locate.Errorf(locate.ESTORAGE, "%s: %v", op, err)
}
