package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Queryer is the subset of sqlx used by the repositories. Both *sqlx.DB and
// *sqlx.Conn satisfy it, so the same repository code serves request handling
// and per-job sessions pinned to a single connection.
type Queryer interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryxContext(ctx context.Context, query string, args ...interface{}) (*sqlx.Rows, error)
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}
