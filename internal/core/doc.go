// Package core provides the business logic for price-list scanning.
//
// This package holds all domain logic independent of any console, HTML or
// HTTP surface. It can be used by the interactive session, the web view or
// tests without modification.
//
// # Architecture
//
// The package is organized around a few key concepts:
//
//   - Header resolution: [ResolveHeaders] maps a header row to the name,
//     price and weight columns using a fixed synonym table.
//   - Loading: a [Loader] discovers files whose name contains a keyword,
//     parses each data row into a [Product] and derives the unit price.
//   - Catalog: an append-only, ordered [Catalog] accumulating every load pass.
//   - Service: the [Service] owns one Catalog for a session and is the entry
//     point for loading and searching.
//
// # Load Pass
//
// A load pass scans one directory:
//
//  1. Entries whose name contains the keyword are collected in directory order
//  2. Each file is decoded (UTF-8 by default, BOM stripped) and its first line
//     resolved into a [HeaderMapping]; .xlsx files are read from their first
//     sheet instead
//  3. Files are parsed by up to Workers goroutines; results keep file order
//  4. Every following non-blank line becomes a Product with
//     UnitPrice = round(Price/Weight, 2)
//  5. The products of the whole pass are appended to the Catalog at once
//
// # Error Policy
//
// Bad input is reported through sentinel errors ([ErrMissingColumn],
// [ErrMalformedNumber], [ErrZeroWeight], [ErrShortRow]) wrapped in
// [*RowError] or [*FileError]. The [ErrorPolicy] decides what happens next:
//
//   - PolicyFail: the first error aborts the pass and nothing is appended
//   - PolicySkipRow: bad rows are skipped, files with bad headers are skipped
//   - PolicySkipFile: a file with any bad row is skipped as a whole
//
// Skipped input is logged and returned as [LoadIssue] values.
//
// # Error Codes
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a unique code for support reference:
//
//   - VAL001-VAL099: Validation errors (columns, numbers, weights, rows)
//   - FILE001-FILE099: File errors (missing directory, permissions, encoding)
//   - LOAD001-LOAD099: Load pass errors (cancelled, timed out)
//   - RATE001-RATE099: HTTP view rate limiting
package core
