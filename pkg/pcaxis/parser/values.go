package parser

import (
	"strings"

	"tabworks/pxtab/pkg/pcaxis/table"
)

// decodeMetadata turns raw attribute fragments into the ordered metadata
// mapping. Each fragment is cut at its first equals sign; the name keeps
// any subscript such as VALUES("year") intact but loses its double quotes,
// so lookups use the bare key VALUES(year).
//
// Repeated declarations of the same name append to the earlier values
// rather than replacing them, which keeps member lists that were split
// across several declarations complete and in source order.
func decodeMetadata(fragments []string) *table.Metadata {
	meta := table.NewMetadata()
	for _, frag := range fragments {
		name, blob, ok := strings.Cut(frag, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(strings.ReplaceAll(name, `"`, ""))
		if name == "" {
			continue
		}
		meta.Append(name, decodeValueList(blob)...)
	}
	return meta
}

// decodeValueList collects the double-quoted runs of a values blob, in
// order. Text outside quotes (commas, line-join whitespace) is separator
// material and is discarded. Spaces just inside the quotes are trimmed;
// a run that is empty after trimming is dropped, so NAME="" decodes to an
// empty list. A quote left open at the end of the blob never closes its
// run, so the dangling text is dropped as well.
func decodeValueList(blob string) []string {
	var values []string

	start := 0
	inQuote := false
	for i := 0; i < len(blob); i++ {
		if blob[i] != '"' {
			continue
		}
		if !inQuote {
			inQuote = true
			start = i + 1
			continue
		}
		inQuote = false
		if v := strings.Trim(blob[start:i], " "); v != "" {
			values = append(values, v)
		}
	}

	return values
}
