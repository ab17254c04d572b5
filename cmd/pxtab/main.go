// Pxtab is a parser and catalog service for PC-Axis (PX) statistical files.
//
// It reads the PX format published by statistics offices and turns each
// document into labelled observation rows, providing:
//   - Full metadata decoding with declaration order preserved
//   - Cartesian expansion of STUB and HEADING dimensions over the data block
//   - Charset handling for the legacy encodings PX publishers still use
//   - A catalog service that keeps named sources refreshed on a schedule
//   - SQLite persistence and Prometheus metrics for the catalog
//
// Usage:
//
//	# Parse a document and print its table
//	pxtab parse tables/population.px
//
//	# Machine-readable output
//	pxtab parse --output csv tables/population.px
//
//	# Inspect the metadata header only
//	pxtab meta tables/population.px
//
//	# Re-parse on every file change
//	pxtab watch tables/population.px
//
//	# Run the catalog service with a configuration file
//	pxtab run --config /etc/pxtab/config.yaml
//
//	# Show version information
//	pxtab version
package main

func main() {
	Execute()
}
