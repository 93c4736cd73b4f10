package store

import (
	"context"
	"database/sql"
	"fmt"
)

// withWriteTx runs fn inside a single transaction on the write pool: one
// connection, one commit at the end, rollback on any failure. Statement
// parameters are always passed out-of-band, never interpolated.
func (s *Store) withWriteTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	if s.write == nil {
		return fmt.Errorf("write pool not initialized")
	}

	tx, err := s.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Debug("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// execWrite runs one parameterized statement on the write pool inside its
// own transaction and returns the number of rows affected.
func (s *Store) execWrite(ctx context.Context, query string, args ...any) (int64, error) {
	var affected int64
	err := s.withWriteTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("query failed: %w", err)
		}
		affected, err = res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		return nil
	})
	return affected, err
}

// queryRead runs one parameterized statement on the read pool. No transaction
// is opened for a single read. The caller owns the returned rows.
func (s *Store) queryRead(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if s.read == nil {
		return nil, fmt.Errorf("read pool not initialized")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := s.read.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rows, nil
}

// queryReadRow runs a single-row read on the read pool.
func (s *Store) queryReadRow(ctx context.Context, query string, args ...any) *sql.Row {
	return s.read.QueryRowContext(ctx, query, args...)
}
