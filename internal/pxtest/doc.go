// Package pxtest provides shared PX document fixtures and test servers.
//
// The fixtures cover the document shapes tests keep reaching for: a
// small two-dimensional table, a three-dimensional one, a dimensionless
// scalar, quoting edge cases, and the three structural failure modes.
// WriteDocument puts a fixture on disk for file-locator tests and
// Server serves fixtures over HTTP for URL-locator tests.
package pxtest
