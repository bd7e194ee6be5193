package database

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/harborpoint/creimport/internal/mapper"
)

func TestToPgText(t *testing.T) {
	tests := []struct {
		name string
		in   mapper.Value
		want pgtype.Text
	}{
		{"text", mapper.Text("Dallas"), pgtype.Text{String: "Dallas", Valid: true}},
		{"null", mapper.Null(), pgtype.Text{Valid: false}},
		{"empty text", mapper.Text(""), pgtype.Text{Valid: false}},
		{"number renders as text", mapper.Number(42), pgtype.Text{String: "42", Valid: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToPgText(tt.in); got != tt.want {
				t.Errorf("ToPgText(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToPgFloat8(t *testing.T) {
	if got := ToPgFloat8(mapper.Number(6.25)); got != (pgtype.Float8{Float64: 6.25, Valid: true}) {
		t.Errorf("number = %+v", got)
	}
	for name, v := range map[string]mapper.Value{
		"null": mapper.Null(),
		"text": mapper.Text("6.25"),
		"bool": mapper.Bool(true),
		"nan":  mapper.Number(math.NaN()),
		"inf":  mapper.Number(math.Inf(1)),
	} {
		if got := ToPgFloat8(v); got.Valid {
			t.Errorf("%s: ToPgFloat8(%+v) = %+v, want invalid", name, v, got)
		}
	}
}

func TestToPgBool(t *testing.T) {
	if got := ToPgBool(mapper.Bool(true)); got != (pgtype.Bool{Bool: true, Valid: true}) {
		t.Errorf("bool = %+v", got)
	}
	if got := ToPgBool(mapper.Text("yes")); got.Valid {
		t.Errorf("text should not convert to bool, got %+v", got)
	}
}

func TestToPgDate(t *testing.T) {
	got := ToPgDate(mapper.Text("2024-03-15"))
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Valid || !got.Time.Equal(want) {
		t.Errorf("ToPgDate = %+v, want %v", got, want)
	}

	for _, v := range []mapper.Value{mapper.Null(), mapper.Text("3/15/2024"), mapper.Number(2024)} {
		if ToPgDate(v).Valid {
			t.Errorf("ToPgDate(%+v) should be invalid", v)
		}
	}
}

// The column catalogs and the canonical field vocabulary must cover each
// other exactly.
func TestColumnCatalogsCoverAllFields(t *testing.T) {
	for _, f := range mapper.PropertyFields() {
		if _, ok := propertyColumnTypes[f]; !ok {
			t.Errorf("property field %q has no column type", f)
		}
	}
	for f := range propertyColumnTypes {
		if !mapper.IsPropertyField(f) {
			t.Errorf("property column catalog names undeclared field %q", f)
		}
	}
	for _, f := range mapper.TransactionFields() {
		if _, ok := transactionColumnTypes[f]; !ok {
			t.Errorf("transaction field %q has no column type", f)
		}
	}
	for f := range transactionColumnTypes {
		if !mapper.IsTransactionField(f) {
			t.Errorf("transaction column catalog names undeclared field %q", f)
		}
	}
}

func TestCopyRowShape(t *testing.T) {
	cols := propertyCopyColumns()
	row := PropertyRow{Fields: map[mapper.CanonicalField]mapper.Value{
		mapper.FieldAddress:   mapper.Text("4600 Ross Ave"),
		mapper.FieldYearBuilt: mapper.Number(1987),
	}}
	values := propertyCopyValues(uuid.Nil, row)

	if len(values) != len(cols) {
		t.Fatalf("value count %d does not match column count %d", len(values), len(cols))
	}

	// Column 2 onward follows canonical declaration order: address first.
	if got := values[2].(pgtype.Text); got.String != "4600 Ross Ave" || !got.Valid {
		t.Errorf("address value = %+v", got)
	}
	// Absent fields store NULL.
	if got := values[3].(pgtype.Text); got.Valid {
		t.Errorf("city should be NULL, got %+v", got)
	}
}
