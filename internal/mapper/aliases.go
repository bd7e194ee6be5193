package mapper

// Alias tables: per provider, the ordered list of raw column names that may
// carry each canonical field. Two rules are load-bearing and must survive any
// edit to this file:
//
//  1. Field order within a table is the tie-break when two canonical fields
//     could plausibly claim the same header (earlier field wins).
//  2. Alias order within a field is priority: the first alias present in the
//     header set is bound and the rest are ignored, even if also present.
//
// Aliases are written in normalized form (lowercase, single spaces); matching
// is case/whitespace-insensitive against raw headers.

type fieldAliases struct {
	Field   CanonicalField
	Aliases []string
}

type aliasTable struct {
	Property    []fieldAliases
	Transaction []fieldAliases
}

// tablesFor selects the alias tables for a source. Manual files and Reonomy
// exports reuse the CoStar tables; see the package notes on resolver behavior.
func tablesFor(source SourceKind) aliasTable {
	if source == SourceCrexi {
		return crexiAliases
	}
	return costarAliases
}

// skipList holds raw columns that must never bind to a canonical field, even
// on a textual alias match:
//
//   - "location type" is a classification column that looks address-like;
//   - country/region columns aggregate too coarsely to be useful;
//   - per-bedroom rent breakdowns are more granular than the canonical schema.
var skipList = map[string]struct{}{
	locationTypeColumn:   {},
	"country":            {},
	"region":             {},
	"market region":      {},
	"cbsa":               {},
	"studio rent":        {},
	"one bedroom rent":   {},
	"two bedroom rent":   {},
	"three bedroom rent": {},
	"four bedroom rent":  {},
}

// locationTypeColumn is the known false-positive: it survives in an old
// subtype alias list, so the resolver re-checks and un-binds it after the
// fact rather than trusting the alias match.
const locationTypeColumn = "location type"

// isSkipped reports whether a normalized header is on the skip list.
func isSkipped(norm string) bool {
	_, ok := skipList[norm]
	return ok
}

// KnownAliases returns the union of every alias spelling across all provider
// tables, mapped to its canonical field. Where providers disagree on what a
// spelling means, the CoStar reading wins. Diagnostics use this to suggest
// near-miss spellings for unmapped columns; it plays no part in resolution.
func KnownAliases() map[string]CanonicalField {
	union := make(map[string]CanonicalField, len(knownAliases))
	for alias, field := range knownAliases {
		union[alias] = field
	}
	return union
}

var knownAliases = buildKnownAliases()

func buildKnownAliases() map[string]CanonicalField {
	union := make(map[string]CanonicalField)
	for _, table := range []aliasTable{crexiAliases, costarAliases} {
		for _, side := range [][]fieldAliases{table.Property, table.Transaction} {
			for _, fa := range side {
				for _, alias := range fa.Aliases {
					union[alias] = fa.Field
				}
			}
		}
	}
	return union
}

var costarAliases = aliasTable{
	Property: []fieldAliases{
		{FieldAddress, []string{"property address", "address", "street address", "site address"}},
		{FieldCity, []string{"city", "property city"}},
		{FieldState, []string{"state", "property state", "st"}},
		{FieldExternalID, []string{"propertyid", "property id", "costar property id"}},
		{FieldPropertyName, []string{"property name", "building name", "park name"}},
		{FieldParcelNumber, []string{"parcel number 1(min)", "parcel number", "apn", "assessor parcel number"}},
		{FieldSourceURL, []string{"costar research link", "property url", "listing url"}},
		{FieldPropertyType, []string{"propertytype", "property type", "primary type"}},
		{FieldPropertySubtype, []string{"secondary type", "property subtype", "subtype", "location type"}},
		{FieldBuildingClass, []string{"star rating", "building class", "class"}},
		{FieldZoning, []string{"zoning", "zoning code"}},
		{FieldZipCode, []string{"zip", "zip code", "postal code"}},
		{FieldCounty, []string{"county name", "county"}},
		{FieldSubmarket, []string{"submarket name", "submarket", "submarket cluster"}},
		{FieldMarket, []string{"market name", "market"}},
		{FieldLatitude, []string{"latitude", "lat"}},
		{FieldLongitude, []string{"longitude", "lon", "lng"}},
		{FieldBuildingSizeSqft, []string{"rba", "rentable building area", "building sf", "total building size", "gla"}},
		{FieldLotSizeAcres, []string{"land area (ac)", "land area ac", "lot size (acres)", "land acres"}},
		{FieldUnits, []string{"number of units", "units", "unit count"}},
		{FieldFloors, []string{"number of stories", "stories", "floors"}},
		{FieldYearBuilt, []string{"year built", "built"}},
		{FieldYearRenovated, []string{"year renovated", "renovated"}},
		{FieldParkingSpaces, []string{"number of parking spaces", "parking spaces"}},
		{FieldParkingRatio, []string{"parking ratio", "parking ratio (per 1000 sf)"}},
		{FieldTenancy, []string{"tenancy", "tenancy type"}},
		{FieldClearHeightFt, []string{"ceiling height", "clear height", "ceiling ht"}},
		{FieldDockDoors, []string{"number of loading docks", "loading docks", "dock doors", "docks"}},
		{FieldDriveInDoors, []string{"drive in bays", "drive ins", "grade level doors"}},
		{FieldTypicalFloorSqft, []string{"typical floor size", "typical floor sf"}},
		{FieldFrontageFt, []string{"frontage", "street frontage"}},
		{FieldAnchorTenant, []string{"anchor tenants", "anchor tenant", "anchor gla tenants"}},
		{FieldAvgUnitSqft, []string{"avg unit sf", "average unit size"}},
		{FieldRooms, []string{"number of rooms", "rooms", "keys"}},
		{FieldPowerMW, []string{"critical power (mw)", "power capacity", "total power"}},
		{FieldOccupancyPct, []string{"percent leased", "occupancy", "occupancy rate"}},
		{FieldVacancyPct, []string{"vacancy %", "vacancy percent", "vacancy rate"}},
		{FieldAvailableSqft, []string{"total available space (sf)", "available sf", "space available"}},
		{FieldLeaseRateSqft, []string{"rent/sf/yr", "avg asking rate/sf", "asking rent per sf"}},
		{FieldLeasingCompany, []string{"leasing company name", "leasing company", "leasing agent"}},
		{FieldAskingPrice, []string{"for sale price", "asking price", "list price"}},
		{FieldCapRate, []string{"cap rate", "market cap rate"}},
		{FieldNOI, []string{"net operating income", "noi"}},
		{FieldAssessedValue, []string{"total assessed value", "assessed value", "assessed total value"}},
		{FieldTaxYear, []string{"assessed year", "tax year"}},
		{FieldOwnerName, []string{"owner name", "owner", "true owner name"}},
		{FieldOwnerPhone, []string{"owner phone", "owner contact phone"}},
		{FieldOwnerAddress, []string{"owner address", "owner mailing address"}},
		{FieldContactName, []string{"owner contact", "contact name", "true owner contact"}},
		{FieldOwnerOccupied, []string{"owner occupied", "owner occupied?"}},
		{FieldInForeclosure, []string{"in foreclosure", "foreclosure"}},
		{FieldForeclosureStatus, []string{"foreclosure status", "distress status"}},
		{FieldAuctionDate, []string{"auction date", "foreclosure auction date"}},
		{FieldLenderName, []string{"lender name", "foreclosing lender"}},
		{FieldDefaultAmount, []string{"default amount", "amount in default"}},
	},
	Transaction: []fieldAliases{
		{FieldTransactionType, []string{"transaction type", "deal type"}},
		{FieldSalePrice, []string{"last sale price", "sale price", "sold price"}},
		{FieldSaleDate, []string{"last sale date", "sale date", "sold date"}},
		{FieldPricePerSqft, []string{"sale price/sf", "price per sf", "price/sf"}},
		{FieldPricePerUnit, []string{"sale price/unit", "price per unit", "price/unit"}},
		{FieldBuyer, []string{"buyer name", "buyer", "buyer company name"}},
		{FieldSeller, []string{"seller name", "seller", "seller company name"}},
		{FieldBroker, []string{"listing broker company", "sale broker", "broker name"}},
		{FieldCapRateAtSale, []string{"sale cap rate", "actual cap rate", "cap rate at sale"}},
		{FieldLeaseType, []string{"lease type", "service type"}},
		{FieldLeaseTermMonths, []string{"lease term (months)", "lease term", "term in months"}},
		{FieldLeaseCommencement, []string{"lease commencement date", "commencement date", "lease start date"}},
		{FieldRentPerSqft, []string{"starting rent/sf", "effective rent/sf", "rent per sf"}},
		{FieldLoanAmount, []string{"loan amount", "mortgage amount", "first mortgage amount"}},
		{FieldLender, []string{"mortgage lender", "lender", "loan originator"}},
		{FieldInterestRate, []string{"interest rate", "mortgage interest rate"}},
		{FieldLoanMaturityDate, []string{"loan maturity date", "mortgage maturity date", "maturity date"}},
	},
}

var crexiAliases = aliasTable{
	Property: []fieldAliases{
		{FieldAddress, []string{"address", "property address", "full address"}},
		{FieldCity, []string{"city"}},
		{FieldState, []string{"state", "state/province"}},
		{FieldExternalID, []string{"property link", "crexi", "crexi id", "listing id"}},
		{FieldPropertyName, []string{"name", "property name", "listing name"}},
		{FieldParcelNumber, []string{"apn", "parcel number", "parcel id"}},
		{FieldSourceURL, []string{"property link", "listing url", "url"}},
		{FieldPropertyType, []string{"property type", "type", "asset type"}},
		{FieldPropertySubtype, []string{"subtype", "property subtype", "asset subtype"}},
		{FieldBuildingClass, []string{"class", "building class"}},
		{FieldZoning, []string{"zoning"}},
		{FieldZipCode, []string{"zip", "zip code", "postal code"}},
		{FieldCounty, []string{"county"}},
		{FieldSubmarket, []string{"submarket", "neighborhood"}},
		{FieldMarket, []string{"market", "metro"}},
		{FieldLatitude, []string{"latitude", "lat"}},
		{FieldLongitude, []string{"longitude", "lon", "lng"}},
		{FieldBuildingSizeSqft, []string{"sq ft", "square footage", "building size", "size (sf)"}},
		{FieldLotSizeAcres, []string{"lot size (acres)", "lot size acres", "acres", "lot size"}},
		{FieldUnits, []string{"units", "number of units", "# of units"}},
		{FieldFloors, []string{"stories", "floors", "# of floors"}},
		{FieldYearBuilt, []string{"year built"}},
		{FieldYearRenovated, []string{"year renovated", "renovated"}},
		{FieldParkingSpaces, []string{"parking spaces", "parking count"}},
		{FieldParkingRatio, []string{"parking ratio"}},
		{FieldTenancy, []string{"tenancy", "occupancy type"}},
		{FieldClearHeightFt, []string{"clear height", "ceiling height"}},
		{FieldDockDoors, []string{"dock doors", "loading docks", "dock high doors"}},
		{FieldDriveInDoors, []string{"drive in doors", "grade level doors"}},
		{FieldTypicalFloorSqft, []string{"typical floor size", "floor plate"}},
		{FieldFrontageFt, []string{"frontage", "road frontage"}},
		{FieldAnchorTenant, []string{"anchor tenant", "major tenant", "tenant name"}},
		{FieldAvgUnitSqft, []string{"avg unit size", "average unit sf"}},
		{FieldRooms, []string{"keys", "rooms", "room count"}},
		{FieldPowerMW, []string{"power (mw)", "critical power"}},
		{FieldOccupancyPct, []string{"occupancy", "occupancy %", "percent occupied"}},
		{FieldVacancyPct, []string{"vacancy", "vacancy %"}},
		{FieldAvailableSqft, []string{"available sf", "space available", "available space"}},
		{FieldLeaseRateSqft, []string{"rate/sf/yr", "asking rate", "lease rate"}},
		{FieldLeasingCompany, []string{"leasing company", "listing brokerage"}},
		{FieldAskingPrice, []string{"asking price", "price", "list price"}},
		{FieldCapRate, []string{"cap rate", "pro forma cap rate"}},
		{FieldNOI, []string{"noi", "net operating income"}},
		{FieldAssessedValue, []string{"assessed value", "tax assessment"}},
		{FieldTaxYear, []string{"tax year", "assessment year"}},
		{FieldOwnerName, []string{"owner", "owner name", "seller name"}},
		{FieldOwnerPhone, []string{"owner phone", "contact phone"}},
		{FieldOwnerAddress, []string{"owner address", "owner mailing address"}},
		{FieldContactName, []string{"contact", "contact name", "broker contact"}},
		{FieldOwnerOccupied, []string{"owner occupied"}},
		{FieldInForeclosure, []string{"foreclosure", "in foreclosure", "auction"}},
		{FieldForeclosureStatus, []string{"foreclosure status", "auction status"}},
		{FieldAuctionDate, []string{"auction date", "auction end date"}},
		{FieldLenderName, []string{"lender", "lender name"}},
		{FieldDefaultAmount, []string{"default amount", "unpaid balance"}},
	},
	Transaction: []fieldAliases{
		{FieldTransactionType, []string{"transaction type", "listing type"}},
		{FieldSalePrice, []string{"sale price", "closed price", "sold price"}},
		{FieldSaleDate, []string{"sale date", "closed date", "close of escrow"}},
		{FieldPricePerSqft, []string{"price/sq ft", "price per sq ft", "price/sf"}},
		{FieldPricePerUnit, []string{"price/unit", "price per unit"}},
		{FieldBuyer, []string{"buyer", "purchaser"}},
		{FieldSeller, []string{"seller"}},
		{FieldBroker, []string{"broker", "brokerage", "listing broker"}},
		{FieldCapRateAtSale, []string{"cap rate at sale", "closed cap rate", "in-place cap rate"}},
		{FieldLeaseType, []string{"lease type", "lease structure"}},
		{FieldLeaseTermMonths, []string{"lease term (months)", "lease term", "remaining term"}},
		{FieldLeaseCommencement, []string{"lease commencement", "lease start", "commencement date"}},
		{FieldRentPerSqft, []string{"rent/sf", "annual rent psf", "rent per sf"}},
		{FieldLoanAmount, []string{"loan amount", "financing amount", "debt amount"}},
		{FieldLender, []string{"lender", "loan provider"}},
		{FieldInterestRate, []string{"interest rate", "rate"}},
		{FieldLoanMaturityDate, []string{"loan maturity", "maturity date", "loan due date"}},
	},
}
