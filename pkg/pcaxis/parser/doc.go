// Package parser turns PC-Axis document text into structured datasets.
//
// The parser reads a decoded PX document, splits it into the metadata and
// data sections, decodes the attribute declarations, resolves the table
// dimensions, and expands the flat data block into one row per cell.
//
// # Basic Usage
//
// Parse a document held in memory:
//
//	p := parser.NewParser()
//	ds, err := p.Parse(text)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Title:", ds.Title())
//	fmt.Println("Rows:", ds.RowCount())
//
// # Configuration
//
// Configure parser limits:
//
//	p := parser.NewParser().
//	    WithMaxDocumentSize(16 * 1024 * 1024) // 16MB limit
//
// # Error Handling
//
// Structural failures carry a typed error from the errors package:
//
//	ds, err := p.Parse(text)
//	if err != nil {
//	    var perr *pxerrors.Error
//	    if errors.As(err, &perr) {
//	        fmt.Println(perr.Type, perr.Suggestion)
//	    }
//	}
//
// Unparsable data tokens are never errors: each becomes a NaN cell so one
// confidential or missing value cannot reject an otherwise valid table.
//
// # Document Grammar
//
// The parser recognises the following shape, after line terminators are
// normalised to spaces:
//
//	document  := metadata "DATA=" data
//	metadata  := { attribute ";" }
//	attribute := name "=" values
//	values    := { '"' text '"' [ "," ] }
//	data      := { token }   (whitespace separated)
//
// Semicolons and equals signs inside double quotes do not terminate
// attributes; the scanner tracks quote state explicitly rather than
// pattern-matching, so malformed input cannot trigger pathological
// backtracking.
//
// # Parsing Stages
//
// Parsing runs as a fixed pipeline:
//
// 1. Section split: normalise line breaks, cut at the first DATA= marker
//
// 2. Attribute scan: split metadata into NAME=VALUES fragments at
// unquoted semicolons
//
// 3. Value decode: collect the quoted runs of each fragment into an
// ordered metadata mapping
//
// 4. Dimension resolve: read STUB and HEADING, look up each VALUES(name)
// member list
//
// 5. Table expand: walk the cartesian product of the members in row-major
// order and pair it with the whitespace-separated data tokens
//
// Every stage keeps its state call-local, so a single Parser is safe for
// concurrent use.
package parser
