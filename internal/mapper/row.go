package mapper

import "fmt"

// ImportRowResult holds the canonical records produced from one source row,
// plus every diagnostic collected along the way. The transaction bag is empty
// when the file carries no transaction columns.
type ImportRowResult struct {
	Property    map[CanonicalField]Value
	Transaction map[CanonicalField]Value
	Errors      []string
}

// TransformRow converts one raw row into canonical property and transaction
// bags using previously resolved mappings.
//
// Processing is fail-soft end to end: every mapped column is attempted
// regardless of earlier failures in the same row, a transform panic is caught
// and recorded as a diagnostic with the value treated as null, and a failed
// validation nulls just that field. TransformRow never panics outward and
// never rejects a row; missing keys and odd value kinds degrade to null.
//
// Property values are validated after transformation; transaction values are
// not (there are no registered transaction validators today).
func TransformRow(row map[string]Value, propertyMapping, transactionMapping ColumnMapping) ImportRowResult {
	result := ImportRowResult{
		Property:    make(map[CanonicalField]Value, len(propertyMapping)),
		Transaction: make(map[CanonicalField]Value, len(transactionMapping)),
	}

	processMapping(row, propertyMapping, propertyFieldOrder, true, &result)
	processMapping(row, transactionMapping, transactionFieldOrder, false, &result)

	return result
}

// processMapping walks one mapping side in canonical field declaration order
// so diagnostics come out in a deterministic sequence for identical input.
func processMapping(row map[string]Value, mapping ColumnMapping, order []CanonicalField, validate bool, result *ImportRowResult) {
	byField := make(map[CanonicalField]string, len(mapping))
	for raw, field := range mapping {
		byField[field] = raw
	}

	for _, field := range order {
		raw, ok := byField[field]
		if !ok {
			continue
		}

		value, diag := safeTransform(field, row[raw])
		if diag != "" {
			result.Errors = append(result.Errors, diag)
		}

		if validate && !value.IsNull() {
			if validator, ok := validatorFor(field); ok && !validator(value) {
				result.Errors = append(result.Errors, fmt.Sprintf(
					"validation failed for %s: %q is out of range", field, value.AsText()))
				value = Null()
			}
		}

		if validate {
			result.Property[field] = value
		} else {
			result.Transaction[field] = value
		}
	}
}

// safeTransform invokes the field's transform inside a recover boundary.
// Transforms are written to be total, but a panic from one must degrade to a
// null field, not abort the row.
func safeTransform(field CanonicalField, v Value) (out Value, diag string) {
	defer func() {
		if r := recover(); r != nil {
			out = Null()
			diag = fmt.Sprintf("transform failed for %s: %v", field, r)
		}
	}()
	return transformFor(field)(v), ""
}
