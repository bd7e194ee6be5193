// Package mapper converts rows from heterogeneous commercial-real-estate CSV
// exports into canonical property and transaction records.
//
// This package is the heart of the importer and has no I/O, database, or UI
// dependencies. It can be driven by web handlers, CLI tools, or tests without
// modification.
//
// # Pipeline
//
// Processing a file goes through three stages:
//
//  1. [DetectSource] classifies the header row against per-provider
//     fingerprint columns (CoStar, Crexi, or manual/unknown).
//  2. [Resolve] binds each raw column to a canonical field using the
//     detected provider's alias tables. Alias lists are priority-ordered:
//     the first alias present in the header set wins, and a header already
//     claimed by one field is never reused by another.
//  3. [TransformRow] applies per-field transforms and validators to each
//     data row, producing an [ImportRowResult].
//
// # Fail-soft contract
//
// Nothing in this package aborts on bad data. Detection falls back to
// [SourceManual], unresolvable columns are reported in
// [AutoMapResult].UnmappedColumns, and a cell that cannot be transformed or
// validated becomes null with a diagnostic string appended to the row result.
// A row is never rejected here; the accept/reject decision belongs to the
// persistence layer.
//
// # Immutability
//
// Alias tables, transforms, and validators are package-level data fixed at
// compile time. Rows are independent, so callers may process them from
// multiple goroutines without coordination.
package mapper
