package parser

import (
	"fmt"

	"tabworks/pxtab/pkg/pcaxis/table"
)

const defaultMaxDocumentSize = 64 * 1024 * 1024 // 64MB

// Parser parses PC-Axis document text into datasets.
type Parser struct {
	maxDocumentSize int
}

// NewParser creates a parser with default settings.
func NewParser() *Parser {
	return &Parser{
		maxDocumentSize: defaultMaxDocumentSize,
	}
}

// WithMaxDocumentSize sets the maximum accepted document size in bytes.
// Zero disables the limit.
func (p *Parser) WithMaxDocumentSize(size int) *Parser {
	p.maxDocumentSize = size
	return p
}

// Parse parses a complete, already decoded PX document.
func (p *Parser) Parse(text string) (*table.Dataset, error) {
	if p.maxDocumentSize > 0 && len(text) > p.maxDocumentSize {
		return nil, fmt.Errorf("document is %d bytes, limit is %d", len(text), p.maxDocumentSize)
	}

	metaText, dataText, err := splitSections(text)
	if err != nil {
		return nil, err
	}

	meta := decodeMetadata(scanAttributes(metaText))

	dims, err := extractDimensions(meta)
	if err != nil {
		return nil, err
	}

	rows, err := expandTable(dims, dataText)
	if err != nil {
		return nil, err
	}

	return &table.Dataset{
		Metadata:   meta,
		Dimensions: dims,
		Rows:       rows,
	}, nil
}

// ParseBytes parses a document held in a byte slice.
func (p *Parser) ParseBytes(data []byte) (*table.Dataset, error) {
	return p.Parse(string(data))
}
