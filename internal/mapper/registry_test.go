package mapper

import "testing"

// These tests keep the field vocabulary, alias tables, and registries in
// lockstep: a field added to one without the others is a test failure here,
// not a silent no-op at import time.

func TestTransformKeysAreDeclaredFields(t *testing.T) {
	for field := range transforms {
		if !IsPropertyField(field) && !IsTransactionField(field) {
			t.Errorf("transform registered for undeclared field %q", field)
		}
	}
}

func TestValidatorKeysAreDeclaredPropertyFields(t *testing.T) {
	for field := range validators {
		if !IsPropertyField(field) {
			t.Errorf("validator registered for %q, which is not a property field", field)
		}
	}
}

func TestAliasTableFieldsAreDeclared(t *testing.T) {
	for _, source := range Sources() {
		table := tablesFor(source)
		for _, fa := range table.Property {
			if !IsPropertyField(fa.Field) {
				t.Errorf("source %s: property alias table names undeclared field %q", source, fa.Field)
			}
			if len(fa.Aliases) == 0 {
				t.Errorf("source %s: field %q has an empty alias list", source, fa.Field)
			}
		}
		for _, fa := range table.Transaction {
			if !IsTransactionField(fa.Field) {
				t.Errorf("source %s: transaction alias table names undeclared field %q", source, fa.Field)
			}
			if len(fa.Aliases) == 0 {
				t.Errorf("source %s: field %q has an empty alias list", source, fa.Field)
			}
		}
	}
}

func TestEveryDeclaredFieldHasAliases(t *testing.T) {
	for _, source := range []SourceKind{SourceCoStar, SourceCrexi} {
		table := tablesFor(source)

		covered := make(map[CanonicalField]bool)
		for _, fa := range table.Property {
			covered[fa.Field] = true
		}
		for _, field := range PropertyFields() {
			if !covered[field] {
				t.Errorf("source %s: property field %q has no alias list", source, field)
			}
		}

		covered = make(map[CanonicalField]bool)
		for _, fa := range table.Transaction {
			covered[fa.Field] = true
		}
		for _, field := range TransactionFields() {
			if !covered[field] {
				t.Errorf("source %s: transaction field %q has no alias list", source, field)
			}
		}
	}
}

func TestFieldOrderHasNoDuplicates(t *testing.T) {
	seen := make(map[CanonicalField]string)
	for _, field := range PropertyFields() {
		if side, dup := seen[field]; dup {
			t.Errorf("field %q declared twice (%s and property)", field, side)
		}
		seen[field] = "property"
	}
	for _, field := range TransactionFields() {
		if side, dup := seen[field]; dup {
			t.Errorf("field %q declared twice (%s and transaction)", field, side)
		}
		seen[field] = "transaction"
	}
}

// Aliases are stored pre-normalized; a raw-cased or padded alias would never
// match anything at resolve time.
func TestAliasesAreNormalized(t *testing.T) {
	for _, source := range []SourceKind{SourceCoStar, SourceCrexi} {
		table := tablesFor(source)
		for _, side := range [][]fieldAliases{table.Property, table.Transaction} {
			for _, fa := range side {
				for _, alias := range fa.Aliases {
					if alias != normalizeHeader(alias) {
						t.Errorf("source %s: alias %q for %q is not normalized", source, alias, fa.Field)
					}
				}
			}
		}
	}
}

// Only the documented "location type" false positive may appear both as an
// alias and on the skip list; any other overlap would bind a column the skip
// list promises to exclude, with no post-check to reverse it.
func TestSkipListAliasOverlapIsOnlyLocationType(t *testing.T) {
	for _, source := range []SourceKind{SourceCoStar, SourceCrexi} {
		table := tablesFor(source)
		for _, side := range [][]fieldAliases{table.Property, table.Transaction} {
			for _, fa := range side {
				for _, alias := range fa.Aliases {
					if isSkipped(alias) && alias != locationTypeColumn {
						t.Errorf("source %s: alias %q for %q is on the skip list", source, alias, fa.Field)
					}
				}
			}
		}
	}
}
