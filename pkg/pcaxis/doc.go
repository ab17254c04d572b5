// Package pcaxis provides parsing for the PC-Axis (PX) statistical file
// format.
//
// PX is the tabular exchange format used by many national statistics
// offices. A PX document is a metadata header of ATTRIBUTE=VALUES
// declarations followed by a flat data block; pcaxis turns it into an
// ordered metadata mapping plus one labelled row per data cell.
//
// # Architecture
//
// The package is organized into subpackages:
//
// - table: Dataset, Dimension and Metadata types for parsed documents
// - parser: section splitting, attribute scanning and table expansion
// - errors: typed structural errors with suggestions
//
// # Basic Usage
//
// Parse document text:
//
//	ds, err := pcaxis.Parse(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Title:", ds.Title())
//	for _, row := range ds.Rows {
//	    fmt.Println(row.Labels, row.Value)
//	}
//
// Fetch and parse in one step:
//
//	ds, err := pcaxis.Load(ctx, "https://pxweb.example.org/table.px", "ISO-8859-15")
//
// # Document Structure
//
// A PX document looks like:
//
//	CHARSET="ANSI";
//	TITLE="Population by area and year";
//	STUB="area";
//	HEADING="year";
//	VALUES("area")="North","South";
//	VALUES("year")="2019","2020";
//	DATA=
//	11 12
//	21 22;
//
// STUB and HEADING name the row and column dimensions; each dimension's
// members come from its VALUES(name) attribute. The data block holds one
// token per cell in row-major order, last dimension fastest, so the
// example expands to (North,2019)=11, (North,2020)=12, (South,2019)=21,
// (South,2020)=22.
//
// # Error Handling
//
// Structural problems return typed errors:
//
//	ds, err := pcaxis.Parse(text)
//	if err != nil {
//	    switch {
//	    case pxerrors.IsMalformedDocument(err):
//	        // no DATA= marker
//	    case pxerrors.IsMissingDimensionValues(err):
//	        // STUB/HEADING entry without VALUES(name)
//	    case pxerrors.IsCountMismatch(err):
//	        // data block size disagrees with the dimensions
//	    }
//	}
//
// Cell values that fail to parse as numbers are not errors: they become
// NaN, the conventional marker for withheld or missing observations.
package pcaxis
