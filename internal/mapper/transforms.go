package mapper

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TransformFunc normalizes one raw cell value for a canonical field. Every
// transform is total: any input yields a value or null, never a panic. The
// row orchestrator still wraps calls in a recover boundary as a second line
// of defense.
type TransformFunc func(Value) Value

// transforms keys every canonical field with a registered transform. A field
// absent here passes its raw value through unchanged. Registry hygiene (every
// key is a declared field, every alias-table field is declared) is enforced
// by tests rather than at runtime.
var transforms = map[CanonicalField]TransformFunc{
	// Identification.
	FieldExternalID: idFromURL,

	// Classification.
	FieldPropertyType:  remapPropertyType,
	FieldBuildingClass: starRatingToClass,

	// Geography.
	FieldState:     normalizeState,
	FieldLatitude:  parseFloat,
	FieldLongitude: parseFloat,

	// Sizes and counts round to whole numbers.
	FieldBuildingSizeSqft: parseInteger,
	FieldUnits:            parseInteger,
	FieldFloors:           parseInteger,
	FieldYearBuilt:        parseInteger,
	FieldYearRenovated:    parseInteger,
	FieldParkingSpaces:    parseInteger,
	FieldClearHeightFt:    parseInteger,
	FieldDockDoors:        parseInteger,
	FieldDriveInDoors:     parseInteger,
	FieldTypicalFloorSqft: parseInteger,
	FieldFrontageFt:       parseInteger,
	FieldAvgUnitSqft:      parseInteger,
	FieldRooms:            parseInteger,
	FieldAvailableSqft:    parseInteger,
	FieldTaxYear:          parseInteger,

	// Fractional numerics.
	FieldLotSizeAcres: parseFloat,
	FieldParkingRatio: parseFloat,
	FieldPowerMW:      parseFloat,

	// Percentages.
	FieldOccupancyPct: parsePercent,
	FieldVacancyPct:   parsePercent,
	FieldCapRate:      parsePercent,

	// Money.
	FieldLeaseRateSqft: parseFloat,
	FieldAskingPrice:   parseFloat,
	FieldNOI:           parseFloat,
	FieldAssessedValue: parseFloat,
	FieldDefaultAmount: parseFloat,

	// Flags.
	FieldOwnerOccupied: parseBool,
	FieldInForeclosure: parseBool,

	// Dates.
	FieldAuctionDate: normalizeDate,

	// Transaction side.
	FieldSalePrice:         parseFloat,
	FieldSaleDate:          normalizeDate,
	FieldPricePerSqft:      parseFloat,
	FieldPricePerUnit:      parseFloat,
	FieldCapRateAtSale:     parsePercent,
	FieldLeaseTermMonths:   parseInteger,
	FieldLeaseCommencement: normalizeDate,
	FieldRentPerSqft:       parseFloat,
	FieldLoanAmount:        parseFloat,
	FieldInterestRate:      parsePercent,
	FieldLoanMaturityDate:  normalizeDate,
}

// Transform normalizes a raw value for a canonical field. Fields without a
// registered transform pass through unchanged.
func Transform(field CanonicalField, v Value) Value {
	return transformFor(field)(v)
}

// transformFor returns the registered transform for a field, or identity.
func transformFor(field CanonicalField) TransformFunc {
	if fn, ok := transforms[field]; ok {
		return fn
	}
	return identity
}

func identity(v Value) Value { return v }

// floatToken extracts the leading numeric token after symbol cleanup, so
// values like "1,250 SF" or "24' clear" parse as 1250 and 24.
var floatToken = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// parseFloat parses currency and general numeric cells: currency symbols,
// thousands separators, unit suffixes, and accounting-style parentheses are
// stripped before parsing. Numeric input passes through unchanged; empty or
// unparseable input is null, never zero.
func parseFloat(v Value) Value {
	if v.Kind == KindNumber {
		return v
	}
	if v.IsNull() {
		return Null()
	}
	s := strings.TrimSpace(v.AsText())
	if s == "" {
		return Null()
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	token := floatToken.FindString(s)
	if token == "" {
		return Null()
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return Null()
	}
	if negative {
		f = -f
	}
	return Number(f)
}

// parseInteger parses like parseFloat and rounds to the nearest whole number,
// for fields that are integral by nature (square footage, years, counts).
func parseInteger(v Value) Value {
	parsed := parseFloat(v)
	if parsed.IsNull() {
		return Null()
	}
	return Number(math.Round(parsed.Number))
}

// parsePercent parses percentage cells: a trailing % is stripped, numeric
// input passes through.
func parsePercent(v Value) Value {
	if v.Kind == KindNumber {
		return v
	}
	if v.IsNull() {
		return Null()
	}
	s := strings.TrimSpace(v.AsText())
	s = strings.TrimSuffix(s, "%")
	return parseFloat(Text(s))
}

// propertyTypeKeywords maps free-text type descriptions onto the fixed
// vocabulary. Table order matters: the first keyword contained in the input
// wins, so more specific entries sit above generic ones ("flex" before
// "office" keeps "Flex/Office" industrial).
var propertyTypeKeywords = []struct {
	keyword   string
	canonical string
}{
	{"industrial", "industrial"},
	{"warehouse", "industrial"},
	{"distribution", "industrial"},
	{"manufacturing", "industrial"},
	{"flex", "industrial"},
	{"office", "office"},
	{"medical", "office"},
	{"retail", "retail"},
	{"shopping", "retail"},
	{"storefront", "retail"},
	{"restaurant", "retail"},
	{"multifamily", "multifamily"},
	{"multi-family", "multifamily"},
	{"apartment", "multifamily"},
	{"land", "land"},
	{"development site", "land"},
	{"special", "special_purpose"},
	{"self storage", "special_purpose"},
	{"church", "special_purpose"},
	{"school", "special_purpose"},
	{"hospitality", "special_purpose"},
	{"hotel", "special_purpose"},
}

// remapPropertyType classifies noisy free-text property types. No keyword
// match passes the original through unchanged: a wrong-but-present type is
// more useful downstream than a null.
func remapPropertyType(v Value) Value {
	if v.Kind != KindText {
		return v
	}
	s := strings.ToLower(strings.TrimSpace(v.Text))
	if s == "" {
		return Null()
	}
	for _, entry := range propertyTypeKeywords {
		if strings.Contains(s, entry.keyword) {
			return Text(entry.canonical)
		}
	}
	return v
}

var starRatingPattern = regexp.MustCompile(`^\s*([0-9])\s*[- ]?\s*star`)

// starRatingToClass converts CoStar "N Star" ratings to a building class
// letter: 3 stars and up is A, 2 is B, 1 is C. Anything that is not a star
// rating (already a class letter, free text) passes through unchanged.
func starRatingToClass(v Value) Value {
	if v.Kind != KindText {
		return v
	}
	m := starRatingPattern.FindStringSubmatch(strings.ToLower(v.Text))
	if m == nil {
		return v
	}
	n, _ := strconv.Atoi(m[1])
	switch {
	case n >= 3:
		return Text("A")
	case n == 2:
		return Text("B")
	case n == 1:
		return Text("C")
	default:
		return v
	}
}

// parseBool coerces flag cells. Only the usual truthy tokens are true;
// everything else, including empty, is false. Flag fields never go null:
// an absent flag means the flag is not set.
func parseBool(v Value) Value {
	switch v.Kind {
	case KindBool:
		return v
	case KindNumber:
		return Bool(v.Number == 1)
	}
	switch strings.ToLower(strings.TrimSpace(v.AsText())) {
	case "yes", "true", "1", "y":
		return Bool(true)
	default:
		return Bool(false)
	}
}

// listingIDPattern matches the numeric ID embedded in provider listing URLs,
// e.g. https://www.crexi.com/properties/412833/tx-sunbelt-business-park.
var listingIDPattern = regexp.MustCompile(`/(?:properties|property)/(\d+)`)

// idFromURL extracts a numeric listing ID from a known URL shape. Cells that
// already hold a bare ID (or anything else) are preserved as text rather than
// discarded, so a non-URL external ID survives untouched.
func idFromURL(v Value) Value {
	if v.Kind != KindText {
		return v
	}
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return Null()
	}
	if m := listingIDPattern.FindStringSubmatch(s); m != nil {
		return Text(m[1])
	}
	return Text(s)
}

// usStates maps US state full names to their postal abbreviations.
var usStates = map[string]string{
	"alabama":        "AL",
	"alaska":         "AK",
	"arizona":        "AZ",
	"arkansas":       "AR",
	"california":     "CA",
	"colorado":       "CO",
	"connecticut":    "CT",
	"delaware":       "DE",
	"florida":        "FL",
	"georgia":        "GA",
	"hawaii":         "HI",
	"idaho":          "ID",
	"illinois":       "IL",
	"indiana":        "IN",
	"iowa":           "IA",
	"kansas":         "KS",
	"kentucky":       "KY",
	"louisiana":      "LA",
	"maine":          "ME",
	"maryland":       "MD",
	"massachusetts":  "MA",
	"michigan":       "MI",
	"minnesota":      "MN",
	"mississippi":    "MS",
	"missouri":       "MO",
	"montana":        "MT",
	"nebraska":       "NE",
	"nevada":         "NV",
	"new hampshire":  "NH",
	"new jersey":     "NJ",
	"new mexico":     "NM",
	"new york":       "NY",
	"north carolina": "NC",
	"north dakota":   "ND",
	"ohio":           "OH",
	"oklahoma":       "OK",
	"oregon":         "OR",
	"pennsylvania":   "PA",
	"rhode island":   "RI",
	"south carolina": "SC",
	"south dakota":   "SD",
	"tennessee":      "TN",
	"texas":          "TX",
	"utah":           "UT",
	"vermont":        "VT",
	"virginia":       "VA",
	"washington":     "WA",
	"west virginia":  "WV",
	"wisconsin":      "WI",
	"wyoming":        "WY",

	"district of columbia": "DC",
}

// normalizeState normalizes state cells to a 2-letter code. Two-letter input
// is uppercased as-is, known full names go through the lookup table, and
// anything else is truncated to its first two letters uppercased. The
// truncation is a documented heuristic, not authoritative geocoding; the
// state validator still gets a say afterwards.
func normalizeState(v Value) Value {
	if v.Kind != KindText {
		return v
	}
	s := strings.TrimSpace(v.Text)
	if s == "" {
		return Null()
	}
	if len(s) == 2 {
		return Text(strings.ToUpper(s))
	}
	if code, ok := usStates[strings.ToLower(s)]; ok {
		return Text(code)
	}
	runes := []rune(s)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return Text(strings.ToUpper(string(runes)))
}

// Date layouts split by year format so 2-digit years get pivot handling.
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"2006-01-02", "2006/01/02", "2006.01.02",
		"Jan 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// twoDigitYearPivot defines how 2-digit years are interpreted: years landing
// more than this many years in the future belong to the previous century.
const twoDigitYearPivot = 20

// normalizeDate parses a calendar date and re-emits it as YYYY-MM-DD,
// discarding any time-of-day. Invalid input is null.
func normalizeDate(v Value) Value {
	if v.IsNull() {
		return Null()
	}
	s := strings.TrimSpace(v.AsText())
	if s == "" {
		return Null()
	}

	for _, layout := range fourDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Text(t.Format("2006-01-02"))
		}
	}

	pivotYear := time.Now().Year() + twoDigitYearPivot
	for _, layout := range twoDigitYearLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return Text(t.Format("2006-01-02"))
		}
	}

	return Null()
}
