// Package database persists normalized import output to PostgreSQL.
//
// The store is a thin layer over pgx: callers hand it the canonical field
// bags produced by the mapping pipeline and it takes care of column order,
// NULL handling, and bulk insert via COPY.
package database

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// bulkCopyThreshold is the batch size at which COPY starts paying for its
// setup round trips. Smaller batches go through plain INSERTs.
const bulkCopyThreshold = 8

// placeholderList renders "$1, $2, ..., $n" for a dynamic column list.
func placeholderList(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteString(", ")
		}
		b.WriteByte('$')
		b.WriteString(strconv.Itoa(i))
	}
	return b.String()
}

// DBTX is the subset of pgx behavior the store needs. Both *pgxpool.Pool and
// pgx.Tx satisfy it, so the same store methods run inside or outside a
// transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Store runs queries against a DBTX.
type Store struct {
	db DBTX
}

// New creates a store bound to db.
func New(db DBTX) *Store {
	return &Store{db: db}
}

// InTx runs fn inside a transaction on pool, committing on nil return and
// rolling back otherwise.
func InTx(ctx context.Context, pool *pgxpool.Pool, fn func(*Store) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) // No-op if already committed

	if err := fn(New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
