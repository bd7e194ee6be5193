package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harborpoint/creimport/internal/mapper"
)

// PropertyRow pairs a batch with one transformed property bag.
type PropertyRow struct {
	BatchID uuid.UUID
	Fields  map[mapper.CanonicalField]mapper.Value
}

// propertyCopyColumns is the full COPY column list: bookkeeping columns
// followed by the data columns in canonical order.
func propertyCopyColumns() []string {
	return append([]string{"id", "batch_id"}, PropertyColumns()...)
}

// propertyCopyValues builds one COPY row. Fields absent from the bag store
// NULL, same as fields the pipeline nulled.
func propertyCopyValues(id uuid.UUID, row PropertyRow) []any {
	fields := mapper.PropertyFields()
	values := make([]any, 0, len(fields)+2)
	values = append(values, id, row.BatchID)
	for _, f := range fields {
		values = append(values, columnValue(propertyColumnTypes[f], row.Fields[f]))
	}
	return values
}

// BulkInsertProperties inserts rows and returns the generated IDs in input
// order. Batches below the COPY threshold use plain INSERTs; the rest go
// through COPY. COPY is all-or-nothing; run it inside InTx when the batch
// bookkeeping must stay consistent with the data.
func (s *Store) BulkInsertProperties(ctx context.Context, rows []PropertyRow) ([]uuid.UUID, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	if len(rows) < bulkCopyThreshold {
		ids := make([]uuid.UUID, len(rows))
		for i, row := range rows {
			id, err := s.InsertProperty(ctx, row)
			if err != nil {
				return nil, err
			}
			ids[i] = id
		}
		return ids, nil
	}

	ids := make([]uuid.UUID, len(rows))
	for i := range ids {
		ids[i] = uuid.New()
	}

	copied, err := s.db.CopyFrom(ctx,
		pgx.Identifier{"properties"},
		propertyCopyColumns(),
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			return propertyCopyValues(ids[i], rows[i]), nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("copy properties: %w", err)
	}
	if copied != int64(len(rows)) {
		return nil, fmt.Errorf("copy properties: copied %d of %d rows", copied, len(rows))
	}
	return ids, nil
}

// InsertProperty inserts a single property and returns its ID.
// BulkInsertProperties routes batches below the COPY threshold here.
func (s *Store) InsertProperty(ctx context.Context, row PropertyRow) (uuid.UUID, error) {
	id := uuid.New()
	cols := propertyCopyColumns()

	query := fmt.Sprintf(
		"INSERT INTO properties (%s) VALUES (%s)",
		strings.Join(cols, ", "),
		placeholderList(len(cols)),
	)

	if _, err := s.db.Exec(ctx, query, propertyCopyValues(id, row)...); err != nil {
		return uuid.Nil, fmt.Errorf("insert property: %w", err)
	}
	return id, nil
}

// CountPropertiesByBatch returns how many properties a batch inserted.
func (s *Store) CountPropertiesByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties WHERE batch_id = $1`, batchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count properties: %w", err)
	}
	return count, nil
}
