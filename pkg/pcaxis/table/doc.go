// Package table defines the data model for parsed PC-Axis documents.
//
// A parsed document is represented by a Dataset, which pairs the document's
// metadata header with the fully expanded observation rows. All types in this
// package are plain values built once by the parser and treated as immutable
// afterwards; nothing here is shared between parse invocations.
//
// # Core Types
//
// Metadata: ordered multi-value mapping of attribute names to value lists
//
// Dimension: a named classification axis with an ordered member list
//
// DimensionSet: the document's dimensions, STUB axes before HEADING axes
//
// Row: one expanded observation — dimension member labels plus a value
//
// Dataset: the complete parse result (Metadata + DimensionSet + Rows)
//
// # Ordering
//
// Order is load-bearing throughout: Metadata iterates keys in first-seen
// order and keeps each key's values in declaration order; DimensionSet keeps
// STUB dimensions before HEADING dimensions, each group in declared order;
// Rows enumerate the cartesian product of dimension members in row-major
// order (the last dimension varies fastest), which is the layout contract of
// the PX data block.
//
// # Missing Values
//
// A data token that cannot be parsed as a number is represented by NaN in
// Row.Value rather than failing the parse. Row's JSON encoding renders NaN
// as null so encoded output stays valid JSON.
package table
