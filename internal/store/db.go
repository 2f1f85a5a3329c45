package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of database/sql used by the postgres stores. Both
// *sql.DB and *sql.Tx satisfy it, so a store can run against the shared
// pool or inside a transaction without changing its queries.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
