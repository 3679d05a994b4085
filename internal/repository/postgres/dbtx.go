package postgres

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sqlx.DB / *sqlx.Tx the repositories need.
// Accepting either lets production code run on the pool while every
// test query runs inside a rolled-back transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row

	// sqlx struct-scanning methods
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
