package mapper

import "fmt"

// ColumnMapping maps a raw column name (stored verbatim) to the canonical
// field it was bound to. Keys are unique within a mapping, and a raw column
// bound on the property side never also appears on the transaction side.
type ColumnMapping map[string]CanonicalField

// AutoMapResult is the outcome of resolving one file's header row. It cannot
// represent failure: every problem is reported through Warnings or
// UnmappedColumns and the import proceeds with whatever could be bound.
type AutoMapResult struct {
	PropertyMapping    ColumnMapping
	TransactionMapping ColumnMapping
	UnmappedColumns    []string
	Warnings           []string
	DetectedSource     SourceKind
}

// Resolve binds raw headers to canonical fields using the alias tables for
// the given source. Property fields are resolved first, transaction fields
// over the remaining headers, so the two mappings never share a column.
//
// Binding is first-match-wins twice over: fields are visited in declaration
// order, and within a field the alias list is scanned in priority order; the
// first alias equal (case/whitespace-insensitively) to an unused header claims
// that header and ends the scan for the field, even if a later alias is also
// present. The result is fully determined by the inputs.
func Resolve(headers []string, source SourceKind) AutoMapResult {
	table := tablesFor(source)

	norms := make([]string, len(headers))
	for i, h := range headers {
		norms[i] = normalizeHeader(h)
	}
	used := make([]bool, len(headers))

	result := AutoMapResult{
		PropertyMapping:    make(ColumnMapping),
		TransactionMapping: make(ColumnMapping),
		DetectedSource:     source,
	}

	bind(table.Property, headers, norms, used, result.PropertyMapping, &result)
	bind(table.Transaction, headers, norms, used, result.TransactionMapping, &result)

	// Known false positive: "location type" survives in an old subtype alias
	// list but is a classification column, not an address-like value. If it
	// was bound anyway, reverse the binding and tell the operator.
	for raw, field := range result.PropertyMapping {
		if normalizeHeader(raw) == locationTypeColumn {
			delete(result.PropertyMapping, raw)
			for i, norm := range norms {
				if norm == locationTypeColumn {
					used[i] = false
				}
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"column %q matched field %q but is excluded: location type is a classification, not an address", raw, field))
			break
		}
	}

	for i, h := range headers {
		if !used[i] && !isSkipped(norms[i]) {
			result.UnmappedColumns = append(result.UnmappedColumns, h)
		}
	}

	bound := make(map[CanonicalField]bool, len(result.PropertyMapping))
	for _, field := range result.PropertyMapping {
		bound[field] = true
	}
	for _, field := range requiredFields {
		if !bound[field] {
			result.Warnings = append(result.Warnings, fmt.Sprintf(
				"CRITICAL: no column mapped for required field %q", field))
		}
	}

	return result
}

// bind resolves one alias table side into mapping, consuming headers from the
// shared used set.
//
// A file may carry the same header text twice, and some alias spellings serve
// two fields ("property link" is both an external ID and a source URL in
// Crexi exports). Mapping keys are raw header strings, so binding the second
// copy would silently replace the first. The duplicate is consumed and
// reported instead, keeping the first binding.
func bind(fields []fieldAliases, headers, norms []string, used []bool, mapping ColumnMapping, result *AutoMapResult) {
	for _, fa := range fields {
		for _, alias := range fa.Aliases {
			idx := -1
			for i, norm := range norms {
				if !used[i] && norm == alias {
					idx = i
					break
				}
			}
			if idx < 0 {
				continue
			}
			used[idx] = true
			if prev, dup := boundField(result, headers[idx]); dup {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"duplicate column %q: already bound to %q, ignoring the copy matching %q",
					headers[idx], prev, fa.Field))
				break
			}
			mapping[headers[idx]] = fa.Field
			break // first match wins, no fallback to later aliases
		}
	}
}

// boundField looks a raw header up across both sides of the result.
func boundField(r *AutoMapResult, raw string) (CanonicalField, bool) {
	if field, ok := r.PropertyMapping[raw]; ok {
		return field, true
	}
	field, ok := r.TransactionMapping[raw]
	return field, ok
}
