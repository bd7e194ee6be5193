package mapper

// CanonicalField is the stable internal name a raw column is normalized to.
// The vocabulary is a contract with the storage and display layers: adding a
// field means updating the alias tables, optionally a transform and/or
// validator, and the database schema in lockstep.
type CanonicalField string

// Property fields.
const (
	// Required for a usable record. Missing mappings for these raise
	// CRITICAL warnings at resolve time.
	FieldAddress CanonicalField = "address"
	FieldCity    CanonicalField = "city"
	FieldState   CanonicalField = "state"

	// Identification.
	FieldExternalID   CanonicalField = "external_id"
	FieldPropertyName CanonicalField = "property_name"
	FieldParcelNumber CanonicalField = "parcel_number"
	FieldSourceURL    CanonicalField = "source_url"

	// Classification.
	FieldPropertyType    CanonicalField = "property_type"
	FieldPropertySubtype CanonicalField = "property_subtype"
	FieldBuildingClass   CanonicalField = "building_class"
	FieldZoning          CanonicalField = "zoning"

	// Geography.
	FieldZipCode   CanonicalField = "zip_code"
	FieldCounty    CanonicalField = "county"
	FieldSubmarket CanonicalField = "submarket"
	FieldMarket    CanonicalField = "market"
	FieldLatitude  CanonicalField = "latitude"
	FieldLongitude CanonicalField = "longitude"

	// Size.
	FieldBuildingSizeSqft CanonicalField = "building_size_sqft"
	FieldLotSizeAcres     CanonicalField = "lot_size_acres"
	FieldUnits            CanonicalField = "units"
	FieldFloors           CanonicalField = "floors"

	// Building detail.
	FieldYearBuilt     CanonicalField = "year_built"
	FieldYearRenovated CanonicalField = "year_renovated"
	FieldParkingSpaces CanonicalField = "parking_spaces"
	FieldParkingRatio  CanonicalField = "parking_ratio"
	FieldTenancy       CanonicalField = "tenancy"

	// Type-specific: industrial.
	FieldClearHeightFt CanonicalField = "clear_height_ft"
	FieldDockDoors     CanonicalField = "dock_doors"
	FieldDriveInDoors  CanonicalField = "drive_in_doors"

	// Type-specific: office.
	FieldTypicalFloorSqft CanonicalField = "typical_floor_sqft"

	// Type-specific: retail.
	FieldFrontageFt   CanonicalField = "frontage_ft"
	FieldAnchorTenant CanonicalField = "anchor_tenant"

	// Type-specific: multifamily.
	FieldAvgUnitSqft CanonicalField = "avg_unit_sqft"

	// Type-specific: hospitality.
	FieldRooms CanonicalField = "rooms"

	// Type-specific: data center.
	FieldPowerMW CanonicalField = "power_mw"

	// Leasing status.
	FieldOccupancyPct   CanonicalField = "occupancy_pct"
	FieldVacancyPct     CanonicalField = "vacancy_pct"
	FieldAvailableSqft  CanonicalField = "available_sqft"
	FieldLeaseRateSqft  CanonicalField = "lease_rate_sqft"
	FieldLeasingCompany CanonicalField = "leasing_company"

	// Financial.
	FieldAskingPrice   CanonicalField = "asking_price"
	FieldCapRate       CanonicalField = "cap_rate"
	FieldNOI           CanonicalField = "noi"
	FieldAssessedValue CanonicalField = "assessed_value"
	FieldTaxYear       CanonicalField = "tax_year"

	// Owner / contact.
	FieldOwnerName     CanonicalField = "owner_name"
	FieldOwnerPhone    CanonicalField = "owner_phone"
	FieldOwnerAddress  CanonicalField = "owner_address"
	FieldContactName   CanonicalField = "contact_name"
	FieldOwnerOccupied CanonicalField = "owner_occupied"

	// Distress / foreclosure.
	FieldInForeclosure     CanonicalField = "in_foreclosure"
	FieldForeclosureStatus CanonicalField = "foreclosure_status"
	FieldAuctionDate       CanonicalField = "auction_date"
	FieldLenderName        CanonicalField = "lender_name"
	FieldDefaultAmount     CanonicalField = "default_amount"
)

// Transaction fields.
const (
	FieldTransactionType CanonicalField = "transaction_type"

	// Sale terms.
	FieldSalePrice     CanonicalField = "sale_price"
	FieldSaleDate      CanonicalField = "sale_date"
	FieldPricePerSqft  CanonicalField = "price_per_sqft"
	FieldPricePerUnit  CanonicalField = "price_per_unit"
	FieldBuyer         CanonicalField = "buyer"
	FieldSeller        CanonicalField = "seller"
	FieldBroker        CanonicalField = "broker"
	FieldCapRateAtSale CanonicalField = "cap_rate_at_sale"

	// Lease terms.
	FieldLeaseType         CanonicalField = "lease_type"
	FieldLeaseTermMonths   CanonicalField = "lease_term_months"
	FieldLeaseCommencement CanonicalField = "lease_commencement_date"
	FieldRentPerSqft       CanonicalField = "rent_per_sqft"

	// Financing terms.
	FieldLoanAmount       CanonicalField = "loan_amount"
	FieldLender           CanonicalField = "lender"
	FieldInterestRate     CanonicalField = "interest_rate"
	FieldLoanMaturityDate CanonicalField = "loan_maturity_date"
)

// requiredFields must each have a column bound after resolution; a miss is a
// CRITICAL warning, not an error.
var requiredFields = []CanonicalField{FieldAddress, FieldCity, FieldState}

// PropertyFields lists every canonical property field in declaration order.
// The order is load-bearing: it is the tie-break when multiple fields could
// claim the same header, and the iteration order of row transformation.
func PropertyFields() []CanonicalField {
	fields := make([]CanonicalField, len(propertyFieldOrder))
	copy(fields, propertyFieldOrder)
	return fields
}

// TransactionFields lists every canonical transaction field in declaration
// order.
func TransactionFields() []CanonicalField {
	fields := make([]CanonicalField, len(transactionFieldOrder))
	copy(fields, transactionFieldOrder)
	return fields
}

var propertyFieldOrder = []CanonicalField{
	FieldAddress, FieldCity, FieldState,
	FieldExternalID, FieldPropertyName, FieldParcelNumber, FieldSourceURL,
	FieldPropertyType, FieldPropertySubtype, FieldBuildingClass, FieldZoning,
	FieldZipCode, FieldCounty, FieldSubmarket, FieldMarket, FieldLatitude, FieldLongitude,
	FieldBuildingSizeSqft, FieldLotSizeAcres, FieldUnits, FieldFloors,
	FieldYearBuilt, FieldYearRenovated, FieldParkingSpaces, FieldParkingRatio, FieldTenancy,
	FieldClearHeightFt, FieldDockDoors, FieldDriveInDoors,
	FieldTypicalFloorSqft,
	FieldFrontageFt, FieldAnchorTenant,
	FieldAvgUnitSqft,
	FieldRooms,
	FieldPowerMW,
	FieldOccupancyPct, FieldVacancyPct, FieldAvailableSqft, FieldLeaseRateSqft, FieldLeasingCompany,
	FieldAskingPrice, FieldCapRate, FieldNOI, FieldAssessedValue, FieldTaxYear,
	FieldOwnerName, FieldOwnerPhone, FieldOwnerAddress, FieldContactName, FieldOwnerOccupied,
	FieldInForeclosure, FieldForeclosureStatus, FieldAuctionDate, FieldLenderName, FieldDefaultAmount,
}

var transactionFieldOrder = []CanonicalField{
	FieldTransactionType,
	FieldSalePrice, FieldSaleDate, FieldPricePerSqft, FieldPricePerUnit,
	FieldBuyer, FieldSeller, FieldBroker, FieldCapRateAtSale,
	FieldLeaseType, FieldLeaseTermMonths, FieldLeaseCommencement, FieldRentPerSqft,
	FieldLoanAmount, FieldLender, FieldInterestRate, FieldLoanMaturityDate,
}

// IsPropertyField reports whether f is a declared property field.
func IsPropertyField(f CanonicalField) bool {
	_, ok := propertyFieldSet[f]
	return ok
}

// IsTransactionField reports whether f is a declared transaction field.
func IsTransactionField(f CanonicalField) bool {
	_, ok := transactionFieldSet[f]
	return ok
}

var (
	propertyFieldSet    = fieldSet(propertyFieldOrder)
	transactionFieldSet = fieldSet(transactionFieldOrder)
)

func fieldSet(fields []CanonicalField) map[CanonicalField]struct{} {
	set := make(map[CanonicalField]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
