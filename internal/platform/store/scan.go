package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
)

// ScanFunc maps the current row into T
type ScanFunc[T any] func(Row) (T, error)

// Many runs a query and scans every row with scan
func Many[T any](ctx context.Context, q RowQuerier, scan ScanFunc[T], sql string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Maybe runs a single row query; ok=false when it matched nothing
func Maybe[T any](ctx context.Context, q RowQuerier, scan ScanFunc[T], sql string, args ...any) (v T, ok bool, err error) {
	v, err = scan(q.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, err
	}
	return v, true, nil
}
