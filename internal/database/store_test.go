package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/harborpoint/creimport/internal/mapper"
)

type execCall struct {
	sql  string
	args []any
}

// fakeDB records store calls without a database. Query is unimplemented;
// tests that need row sets go through QueryRow's scan hook instead.
type fakeDB struct {
	execs    []execCall
	copies   int
	copyRows int64
	scan     func(dest ...any) error
}

func (f *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, execCall{sql: sql, args: args})
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errors.New("fakeDB: Query not implemented")
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return fakeRow{scan: f.scan}
}

func (f *fakeDB) CopyFrom(ctx context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	var n int64
	for src.Next() {
		if _, err := src.Values(); err != nil {
			return n, err
		}
		n++
	}
	f.copies++
	f.copyRows = n
	return n, nil
}

func sampleProperty() PropertyRow {
	return PropertyRow{
		BatchID: uuid.New(),
		Fields: map[mapper.CanonicalField]mapper.Value{
			mapper.FieldAddress: mapper.Text("4600 Ross Ave"),
			mapper.FieldCity:    mapper.Text("Dallas"),
		},
	}
}

func TestBulkInsertPropertiesSmallBatchUsesInserts(t *testing.T) {
	db := &fakeDB{}
	store := New(db)

	ids, err := store.BulkInsertProperties(context.Background(), []PropertyRow{sampleProperty(), sampleProperty()})
	if err != nil {
		t.Fatalf("BulkInsertProperties: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("ids = %d, want 2", len(ids))
	}
	if ids[0] == ids[1] {
		t.Error("generated IDs must be distinct")
	}
	if db.copies != 0 {
		t.Errorf("COPY used %d times for a batch below the threshold", db.copies)
	}
	if len(db.execs) != 2 {
		t.Fatalf("execs = %d, want 2", len(db.execs))
	}
	for _, call := range db.execs {
		if !strings.HasPrefix(call.sql, "INSERT INTO properties") {
			t.Errorf("sql = %q, want INSERT INTO properties", call.sql)
		}
		if want := len(propertyCopyColumns()); len(call.args) != want {
			t.Errorf("args = %d, want %d (one per column)", len(call.args), want)
		}
	}
}

func TestBulkInsertPropertiesLargeBatchUsesCopy(t *testing.T) {
	db := &fakeDB{}
	store := New(db)

	rows := make([]PropertyRow, bulkCopyThreshold)
	for i := range rows {
		rows[i] = sampleProperty()
	}

	ids, err := store.BulkInsertProperties(context.Background(), rows)
	if err != nil {
		t.Fatalf("BulkInsertProperties: %v", err)
	}
	if len(ids) != len(rows) {
		t.Fatalf("ids = %d, want %d", len(ids), len(rows))
	}
	if db.copies != 1 {
		t.Errorf("copies = %d, want 1", db.copies)
	}
	if db.copyRows != int64(len(rows)) {
		t.Errorf("copied rows = %d, want %d", db.copyRows, len(rows))
	}
	if len(db.execs) != 0 {
		t.Errorf("execs = %d, want 0 for a COPY batch", len(db.execs))
	}
}

func TestBulkInsertTransactionsSmallBatchUsesInserts(t *testing.T) {
	db := &fakeDB{}
	store := New(db)

	rows := []TransactionRow{
		{PropertyID: uuid.New(), BatchID: uuid.New(), Fields: map[mapper.CanonicalField]mapper.Value{
			mapper.FieldSalePrice: mapper.Number(12500000),
		}},
		{PropertyID: uuid.New(), BatchID: uuid.New(), Fields: map[mapper.CanonicalField]mapper.Value{
			mapper.FieldSaleDate: mapper.Text("2024-03-15"),
		}},
	}

	inserted, err := store.BulkInsertTransactions(context.Background(), rows)
	if err != nil {
		t.Fatalf("BulkInsertTransactions: %v", err)
	}
	if inserted != 2 {
		t.Errorf("inserted = %d, want 2", inserted)
	}
	if db.copies != 0 {
		t.Errorf("COPY used %d times for a batch below the threshold", db.copies)
	}
	if len(db.execs) != 2 {
		t.Fatalf("execs = %d, want 2", len(db.execs))
	}
	for _, call := range db.execs {
		if !strings.HasPrefix(call.sql, "INSERT INTO transactions") {
			t.Errorf("sql = %q, want INSERT INTO transactions", call.sql)
		}
		if want := len(transactionCopyColumns()); len(call.args) != want {
			t.Errorf("args = %d, want %d (one per column)", len(call.args), want)
		}
	}
}

func TestFailImportBatchRecordsReason(t *testing.T) {
	db := &fakeDB{}
	store := New(db)

	id := uuid.New()
	if err := store.FailImportBatch(context.Background(), id, "copy properties: broken pipe"); err != nil {
		t.Fatalf("FailImportBatch: %v", err)
	}
	if len(db.execs) != 1 {
		t.Fatalf("execs = %d, want 1", len(db.execs))
	}

	call := db.execs[0]
	if !strings.Contains(call.sql, "failure_reason") {
		t.Errorf("sql = %q, want failure_reason update", call.sql)
	}
	if call.args[0] != id {
		t.Errorf("args[0] = %v, want batch ID", call.args[0])
	}
	if call.args[1] != BatchStatusFailed {
		t.Errorf("args[1] = %v, want %q", call.args[1], BatchStatusFailed)
	}
	if call.args[2] != "copy properties: broken pipe" {
		t.Errorf("args[2] = %v, want the failure reason", call.args[2])
	}
}

func TestCountsByBatch(t *testing.T) {
	db := &fakeDB{scan: func(dest ...any) error {
		*(dest[0].(*int64)) = 7
		return nil
	}}
	store := New(db)

	props, err := store.CountPropertiesByBatch(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CountPropertiesByBatch: %v", err)
	}
	if props != 7 {
		t.Errorf("properties = %d, want 7", props)
	}

	txs, err := store.CountTransactionsByBatch(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("CountTransactionsByBatch: %v", err)
	}
	if txs != 7 {
		t.Errorf("transactions = %d, want 7", txs)
	}
}
