package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harborpoint/creimport/internal/mapper"
)

// TransactionRow pairs a property and batch with one transformed
// transaction bag.
type TransactionRow struct {
	PropertyID uuid.UUID
	BatchID    uuid.UUID
	Fields     map[mapper.CanonicalField]mapper.Value
}

func transactionCopyColumns() []string {
	return append([]string{"id", "property_id", "batch_id"}, TransactionColumns()...)
}

func transactionCopyValues(id uuid.UUID, row TransactionRow) []any {
	fields := mapper.TransactionFields()
	values := make([]any, 0, len(fields)+3)
	values = append(values, id, row.PropertyID, row.BatchID)
	for _, f := range fields {
		values = append(values, columnValue(transactionColumnTypes[f], row.Fields[f]))
	}
	return values
}

// BulkInsertTransactions inserts rows, through plain INSERTs below the COPY
// threshold and COPY above it. Rows whose bags carry no values at all are
// the caller's problem to filter; a file with no transaction columns should
// insert nothing rather than empty shells.
func (s *Store) BulkInsertTransactions(ctx context.Context, rows []TransactionRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	if len(rows) < bulkCopyThreshold {
		for _, row := range rows {
			if err := s.InsertTransaction(ctx, row); err != nil {
				return 0, err
			}
		}
		return int64(len(rows)), nil
	}

	copied, err := s.db.CopyFrom(ctx,
		pgx.Identifier{"transactions"},
		transactionCopyColumns(),
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return transactionCopyValues(uuid.New(), rows[i]), nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy transactions: %w", err)
	}
	return copied, nil
}

// InsertTransaction inserts a single transaction. BulkInsertTransactions
// routes batches below the COPY threshold here.
func (s *Store) InsertTransaction(ctx context.Context, row TransactionRow) error {
	cols := transactionCopyColumns()

	query := fmt.Sprintf(
		"INSERT INTO transactions (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		placeholderList(len(cols)),
	)

	if _, err := s.db.Exec(ctx, query, transactionCopyValues(uuid.New(), row)...); err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// HasValues reports whether any field in the bag is non-null. Used to skip
// transaction shells for rows that mapped no transaction columns.
func HasValues(fields map[mapper.CanonicalField]mapper.Value) bool {
	for _, v := range fields {
		if !v.IsNull() {
			return true
		}
	}
	return false
}

// CountTransactionsByBatch returns how many transactions a batch inserted.
func (s *Store) CountTransactionsByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}
