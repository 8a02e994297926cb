package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// DBTX is an interface abstracting *sqlx.DB and *sqlx.Tx for repository use.
type DBTX interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// contextKey is the key type for context values
type contextKey string

const (
	// TransactionContextKey carries the active transaction, when any
	TransactionContextKey contextKey = "tx"
)

// GetExecutor returns the transaction bound to ctx, or the base DB.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx := ctx.Value(TransactionContextKey); tx != nil {
		if sqlxTx, ok := tx.(*sqlx.Tx); ok {
			return sqlxTx
		}
	}
	return db
}

// nullable converts an empty string to a SQL NULL on write.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
