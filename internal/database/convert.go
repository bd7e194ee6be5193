package database

import (
	"math"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/harborpoint/creimport/internal/mapper"
)

// Converters from pipeline values to pgtype. A null or mismatched value
// becomes Valid=false so the database stores NULL rather than a zero.

// ToPgText converts a value for a text column.
func ToPgText(v mapper.Value) pgtype.Text {
	if v.IsNull() {
		return pgtype.Text{Valid: false}
	}
	s := v.AsText()
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgFloat8 converts a value for a double precision column.
func ToPgFloat8(v mapper.Value) pgtype.Float8 {
	if v.Kind != mapper.KindNumber {
		return pgtype.Float8{Valid: false}
	}
	if math.IsNaN(v.Number) || math.IsInf(v.Number, 0) {
		return pgtype.Float8{Valid: false}
	}
	return pgtype.Float8{Float64: v.Number, Valid: true}
}

// ToPgBool converts a value for a boolean column.
func ToPgBool(v mapper.Value) pgtype.Bool {
	if v.Kind != mapper.KindBool {
		return pgtype.Bool{Valid: false}
	}
	return pgtype.Bool{Bool: v.Bool, Valid: true}
}

// ToPgDate converts a value for a date column. Dates arrive from the
// pipeline already normalized to ISO form; anything else stores NULL.
func ToPgDate(v mapper.Value) pgtype.Date {
	if v.Kind != mapper.KindText {
		return pgtype.Date{Valid: false}
	}
	t, err := time.Parse("2006-01-02", v.Text)
	if err != nil {
		return pgtype.Date{Valid: false}
	}
	return pgtype.Date{Time: t, Valid: true}
}

// columnValue converts a canonical field value into the pgtype argument for
// its column shape.
func columnValue(kind colType, v mapper.Value) any {
	switch kind {
	case colNumber:
		return ToPgFloat8(v)
	case colBool:
		return ToPgBool(v)
	case colDate:
		return ToPgDate(v)
	default:
		return ToPgText(v)
	}
}
