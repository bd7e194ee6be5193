package mapper

import "testing"

// ----------------------------------------------------------------------------
// Currency / number parsing
// ----------------------------------------------------------------------------

func TestTransformCurrency(t *testing.T) {
	tests := []struct {
		name  string
		field CanonicalField
		in    Value
		want  Value
	}{
		{"formatted sale price", FieldSalePrice, Text("$1,250,000"), Number(1250000)},
		{"empty string is null not zero", FieldSalePrice, Text(""), Null()},
		{"whitespace only is null", FieldSalePrice, Text("   "), Null()},
		{"numeric input passes through", FieldSalePrice, Number(750000), Number(750000)},
		{"null input stays null", FieldSalePrice, Null(), Null()},
		{"unparseable text is null", FieldSalePrice, Text("call for pricing"), Null()},
		{"accounting negative", FieldNOI, Text("($12,500)"), Number(-12500)},
		{"euro symbol", FieldAskingPrice, Text("€900,000"), Number(900000)},
		{"unit suffix stripped", FieldBuildingSizeSqft, Text("1,250 SF"), Number(1250)},
		{"feet marker stripped", FieldClearHeightFt, Text("24'"), Number(24)},
		{"integer field rounds", FieldUnits, Text("12.6"), Number(13)},
		{"negative longitude", FieldLongitude, Text("-96.7970"), Number(-96.797)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(tt.field, tt.in)
			if got != tt.want {
				t.Errorf("Transform(%s, %v) = %+v, want %+v", tt.field, tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformPercent(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want Value
	}{
		{"trailing percent sign", Text("6.5%"), Number(6.5)},
		{"bare number", Text("6.5"), Number(6.5)},
		{"numeric passthrough", Number(7), Number(7)},
		{"empty is null", Text(""), Null()},
		{"garbage is null", Text("n/a"), Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(FieldCapRate, tt.in)
			if got != tt.want {
				t.Errorf("Transform(cap_rate, %v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Classification remapping
// ----------------------------------------------------------------------------

func TestTransformPropertyType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Warehouse/Distribution", "industrial"},
		{"Flex/Office", "industrial"}, // flex outranks office in table order
		{"Office Building", "office"},
		{"Medical", "office"},
		{"Strip Center Retail", "retail"},
		{"Garden Apartments", "multifamily"},
		{"Multi-Family", "multifamily"},
		{"Vacant Land", "land"},
		{"Self Storage Facility", "special_purpose"},
		{"Hotel & Casino", "special_purpose"},
		{"Quonset Hut", "Quonset Hut"}, // no keyword: original passes through
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Transform(FieldPropertyType, Text(tt.in))
			if got.AsText() != tt.want {
				t.Errorf("Transform(property_type, %q) = %q, want %q", tt.in, got.AsText(), tt.want)
			}
		})
	}
}

func TestTransformStarRating(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5 Star", "A"},
		{"4 Star", "A"},
		{"3 Star", "A"},
		{"2 Star", "B"},
		{"1 Star", "C"},
		{"3-Star", "A"},
		{"Class B", "Class B"}, // not a star rating: unchanged
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Transform(FieldBuildingClass, Text(tt.in))
			if got.AsText() != tt.want {
				t.Errorf("Transform(building_class, %q) = %q, want %q", tt.in, got.AsText(), tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Boolean coercion
// ----------------------------------------------------------------------------

func TestTransformBool(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want bool
	}{
		{"yes", Text("yes"), true},
		{"uppercase", Text("TRUE"), true},
		{"one", Text("1"), true},
		{"single y", Text("y"), true},
		{"no", Text("no"), false},
		{"empty is false not null", Text(""), false},
		{"garbage is false", Text("maybe"), false},
		{"numeric one", Number(1), true},
		{"numeric zero", Number(0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(FieldInForeclosure, tt.in)
			if got.Kind != KindBool || got.Bool != tt.want {
				t.Errorf("Transform(in_foreclosure, %v) = %+v, want bool %v", tt.in, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Identifier extraction
// ----------------------------------------------------------------------------

func TestTransformExternalID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"crexi listing url", "https://www.crexi.com/properties/412833/tx-sunbelt-business-park", "412833"},
		{"singular path segment", "https://example.com/property/99/detail", "99"},
		{"bare id preserved", "8-1234-077", "8-1234-077"},
		{"free text preserved", "see broker", "see broker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(FieldExternalID, Text(tt.in))
			if got.AsText() != tt.want {
				t.Errorf("Transform(external_id, %q) = %q, want %q", tt.in, got.AsText(), tt.want)
			}
		})
	}

	if got := Transform(FieldExternalID, Text("")); !got.IsNull() {
		t.Errorf("empty external id should be null, got %+v", got)
	}
}

// ----------------------------------------------------------------------------
// State normalization
// ----------------------------------------------------------------------------

func TestTransformState(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"california", "CA"},
		{"New   York", "NE"}, // double space defeats the lookup: heuristic truncation
		{"New York", "NY"},
		{"tx", "TX"},
		{"TX", "TX"},
		{"District of Columbia", "DC"},
		{"Timbuktu", "TI"}, // documented fallback heuristic, not geocoding
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := Transform(FieldState, Text(tt.in))
			if got.AsText() != tt.want {
				t.Errorf("Transform(state, %q) = %q, want %q", tt.in, got.AsText(), tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Date normalization
// ----------------------------------------------------------------------------

func TestTransformDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Value
	}{
		{"us format", "6/1/2024", Text("2024-06-01")},
		{"iso format", "2024-06-01", Text("2024-06-01")},
		{"written month", "Jan 2, 2024", Text("2024-01-02")},
		{"compact", "20240601", Text("2024-06-01")},
		{"invalid", "soon", Null()},
		{"empty", "", Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transform(FieldSaleDate, Text(tt.in))
			if got != tt.want {
				t.Errorf("Transform(sale_date, %q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Identity for unregistered fields
// ----------------------------------------------------------------------------

func TestTransformIdentityForUnregisteredFields(t *testing.T) {
	in := Text("Jones Lang LaSalle")
	if got := Transform(FieldLeasingCompany, in); got != in {
		t.Errorf("unregistered field must pass through, got %+v", got)
	}
}
