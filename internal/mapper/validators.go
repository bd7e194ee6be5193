package mapper

import (
	"regexp"
	"strings"
	"time"
)

// ValidatorFunc is a post-transform predicate. Validators run only on
// non-null values and only for property fields; a false result nulls the
// field and appends a diagnostic, it never discards the row.
type ValidatorFunc func(Value) bool

// validators keys every canonical field with a registered validator.
// Transaction fields deliberately have none: transaction values skip
// validation entirely (see package notes).
var validators = map[CanonicalField]ValidatorFunc{
	FieldAddress: validAddress,
	FieldCity:    minLength(2),
	FieldState:   exactLength(2),
	FieldZipCode: validZip,

	FieldBuildingSizeSqft: positiveNumber,
	FieldLotSizeAcres:     positiveNumber,
	FieldUnits:            positiveNumber,
	FieldFloors:           positiveNumber,
	FieldAvailableSqft:    positiveNumber,
	FieldTypicalFloorSqft: positiveNumber,
	FieldAvgUnitSqft:      positiveNumber,
	FieldFrontageFt:       positiveNumber,

	FieldYearBuilt:     plausibleYear,
	FieldYearRenovated: plausibleYear,

	FieldOccupancyPct: numberInRange(0, 100),
	FieldVacancyPct:   numberInRange(0, 100),
	FieldCapRate:      numberInRange(0, 50),

	FieldLatitude:  numberInRange(-90, 90),
	FieldLongitude: numberInRange(-180, 180),
}

// Validate applies the field's registered validator to a transformed value.
// Fields without a validator, and null values, are always acceptable.
func Validate(field CanonicalField, v Value) bool {
	fn, ok := validatorFor(field)
	if !ok || v.IsNull() {
		return true
	}
	return fn(v)
}

// validatorFor returns the registered validator for a field, if any.
func validatorFor(field CanonicalField) (ValidatorFunc, bool) {
	fn, ok := validators[field]
	return fn, ok
}

// addressPlaceholders are degenerate cells that show up in the address column
// of provider exports: bare compass directions and zone words carry no street
// address.
var addressPlaceholders = map[string]struct{}{
	"n": {}, "s": {}, "e": {}, "w": {},
	"north": {}, "south": {}, "east": {}, "west": {},
	"zone": {}, "tbd": {}, "unknown": {},
}

const minAddressLength = 5

func validAddress(v Value) bool {
	if v.Kind != KindText {
		return false
	}
	s := strings.TrimSpace(v.Text)
	if len(s) < minAddressLength {
		return false
	}
	_, placeholder := addressPlaceholders[strings.ToLower(s)]
	return !placeholder
}

func minLength(n int) ValidatorFunc {
	return func(v Value) bool {
		return v.Kind == KindText && len(strings.TrimSpace(v.Text)) >= n
	}
}

func exactLength(n int) ValidatorFunc {
	return func(v Value) bool {
		return v.Kind == KindText && len(strings.TrimSpace(v.Text)) == n
	}
}

// zipPattern accepts 5-digit, ZIP+4, and bare 9-digit codes.
var zipPattern = regexp.MustCompile(`^(\d{5}(-\d{4})?|\d{9})$`)

func validZip(v Value) bool {
	return v.Kind == KindText && zipPattern.MatchString(strings.TrimSpace(v.Text))
}

func positiveNumber(v Value) bool {
	return v.Kind == KindNumber && v.Number > 0
}

func numberInRange(lo, hi float64) ValidatorFunc {
	return func(v Value) bool {
		return v.Kind == KindNumber && v.Number >= lo && v.Number <= hi
	}
}

// plausibleYear bounds year fields to the historically plausible range for
// US commercial building stock. The upper bound allows a building delivering
// next year.
func plausibleYear(v Value) bool {
	if v.Kind != KindNumber {
		return false
	}
	year := int(v.Number)
	return year >= 1800 && year <= time.Now().Year()+1
}
