package parser

import (
	"strings"

	pxerrors "tabworks/pxtab/pkg/pcaxis/errors"
)

// dataMarker separates the metadata section from the data section. The
// document is cut at the first occurrence so a quoted "DATA=" later in the
// data block cannot produce a second split.
const dataMarker = "DATA="

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// splitSections divides a PX document into its metadata and data sections.
//
// Line terminators are replaced with spaces first, so declarations that
// span physical lines collapse into single logical fragments. The data
// section is stripped of surrounding whitespace and of the single trailing
// semicolon that closes the DATA declaration.
func splitSections(doc string) (metaText, dataText string, err error) {
	normalized := lineBreaks.Replace(doc)

	idx := strings.Index(normalized, dataMarker)
	if idx < 0 {
		return "", "", pxerrors.NewMalformedDocument()
	}

	metaText = normalized[:idx]

	dataText = strings.TrimSpace(normalized[idx+len(dataMarker):])
	dataText = strings.TrimSuffix(dataText, ";")
	dataText = strings.TrimSpace(dataText)

	return metaText, dataText, nil
}
