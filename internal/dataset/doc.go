// Package dataset normalizes delimited text into uniform keyed records.
//
// This package is the heart of the ingestion pipeline, containing all domain
// logic independent of any transport or storage layer. It can be used by web
// handlers, CLI tools, or tests without modification.
//
// The pipeline has three stages, composed per parse call:
//
//  1. Header deduplication: [UniquifyColumnNames] rewrites the header line so
//     every column name is structurally unique, appending zero-width space
//     markers to collisions. Without this, converting rows into keyed records
//     would silently drop cells that share a column name.
//  2. Parser selection: every parse derives its own [ParserTable]. The table
//     is call-scoped by construction, so enabling the coercion policy for one
//     parse can never be observed by a concurrent or subsequent parse.
//  3. Materialization: [Read] and [Materialize] run the parse engine exactly
//     once and return a [Table] of ordered columns and keyed rows.
//
// # Coercion policy
//
// The downstream table renderer cannot consume every value the parsers could
// produce, so two adjustments are opt-in via [Options].Coerce:
//
//   - Integer cells become *big.Int, so values beyond float64's integer range
//     survive without precision loss.
//   - The literal cell values "inf" and "-inf" pass through as strings. The
//     row format has no representation for mathematical infinity; the two
//     strings are a wire convention the renderer recognizes.
//
// Date parsing is not part of the toggle: dates are always re-emitted as
// canonical RFC 3339 UTC strings by the default table.
package dataset
