package database

import "github.com/harborpoint/creimport/internal/mapper"

// colType is the PostgreSQL column shape a canonical field lands in. The
// catalogs below are a contract with schema.sql: a field added to the mapper
// vocabulary needs a column type here and a column there.
type colType int

const (
	colText colType = iota
	colNumber
	colBool
	colDate
)

var propertyColumnTypes = map[mapper.CanonicalField]colType{
	mapper.FieldAddress:           colText,
	mapper.FieldCity:              colText,
	mapper.FieldState:             colText,
	mapper.FieldExternalID:        colText,
	mapper.FieldPropertyName:      colText,
	mapper.FieldParcelNumber:      colText,
	mapper.FieldSourceURL:         colText,
	mapper.FieldPropertyType:      colText,
	mapper.FieldPropertySubtype:   colText,
	mapper.FieldBuildingClass:     colText,
	mapper.FieldZoning:            colText,
	mapper.FieldZipCode:           colText,
	mapper.FieldCounty:            colText,
	mapper.FieldSubmarket:         colText,
	mapper.FieldMarket:            colText,
	mapper.FieldLatitude:          colNumber,
	mapper.FieldLongitude:         colNumber,
	mapper.FieldBuildingSizeSqft:  colNumber,
	mapper.FieldLotSizeAcres:      colNumber,
	mapper.FieldUnits:             colNumber,
	mapper.FieldFloors:            colNumber,
	mapper.FieldYearBuilt:         colNumber,
	mapper.FieldYearRenovated:     colNumber,
	mapper.FieldParkingSpaces:     colNumber,
	mapper.FieldParkingRatio:      colNumber,
	mapper.FieldTenancy:           colText,
	mapper.FieldClearHeightFt:     colNumber,
	mapper.FieldDockDoors:         colNumber,
	mapper.FieldDriveInDoors:      colNumber,
	mapper.FieldTypicalFloorSqft:  colNumber,
	mapper.FieldFrontageFt:        colNumber,
	mapper.FieldAnchorTenant:      colText,
	mapper.FieldAvgUnitSqft:       colNumber,
	mapper.FieldRooms:             colNumber,
	mapper.FieldPowerMW:           colNumber,
	mapper.FieldOccupancyPct:      colNumber,
	mapper.FieldVacancyPct:        colNumber,
	mapper.FieldAvailableSqft:     colNumber,
	mapper.FieldLeaseRateSqft:     colNumber,
	mapper.FieldLeasingCompany:    colText,
	mapper.FieldAskingPrice:       colNumber,
	mapper.FieldCapRate:           colNumber,
	mapper.FieldNOI:               colNumber,
	mapper.FieldAssessedValue:     colNumber,
	mapper.FieldTaxYear:           colNumber,
	mapper.FieldOwnerName:         colText,
	mapper.FieldOwnerPhone:        colText,
	mapper.FieldOwnerAddress:      colText,
	mapper.FieldContactName:       colText,
	mapper.FieldOwnerOccupied:     colBool,
	mapper.FieldInForeclosure:     colBool,
	mapper.FieldForeclosureStatus: colText,
	mapper.FieldAuctionDate:       colDate,
	mapper.FieldLenderName:        colText,
	mapper.FieldDefaultAmount:     colNumber,
}

var transactionColumnTypes = map[mapper.CanonicalField]colType{
	mapper.FieldTransactionType:   colText,
	mapper.FieldSalePrice:         colNumber,
	mapper.FieldSaleDate:          colDate,
	mapper.FieldPricePerSqft:      colNumber,
	mapper.FieldPricePerUnit:      colNumber,
	mapper.FieldBuyer:             colText,
	mapper.FieldSeller:            colText,
	mapper.FieldBroker:            colText,
	mapper.FieldCapRateAtSale:     colNumber,
	mapper.FieldLeaseType:         colText,
	mapper.FieldLeaseTermMonths:   colNumber,
	mapper.FieldLeaseCommencement: colDate,
	mapper.FieldRentPerSqft:       colNumber,
	mapper.FieldLoanAmount:        colNumber,
	mapper.FieldLender:            colText,
	mapper.FieldInterestRate:      colNumber,
	mapper.FieldLoanMaturityDate:  colDate,
}

// PropertyColumns returns the properties table data columns in canonical
// field declaration order. Column names equal canonical field names.
func PropertyColumns() []string {
	return columnNames(mapper.PropertyFields())
}

// TransactionColumns returns the transactions table data columns in
// canonical field declaration order.
func TransactionColumns() []string {
	return columnNames(mapper.TransactionFields())
}

func columnNames(fields []mapper.CanonicalField) []string {
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f)
	}
	return cols
}
