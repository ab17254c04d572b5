package pcaxis

import (
	"context"

	"tabworks/pxtab/pkg/fetch"
	"tabworks/pxtab/pkg/pcaxis/parser"
	"tabworks/pxtab/pkg/pcaxis/table"
)

// Parse parses decoded PX document text with default parser settings.
func Parse(text string) (*table.Dataset, error) {
	p := parser.NewParser()
	return p.Parse(text)
}

// ParseBytes parses a PX document held in a byte slice. The bytes must
// already be UTF-8; use Load or fetch.DecodeCharset for legacy charsets.
func ParseBytes(data []byte) (*table.Dataset, error) {
	p := parser.NewParser()
	return p.ParseBytes(data)
}

// Load fetches the document at locator, decodes it from charset to UTF-8,
// and parses it. Fetch failures are returned unchanged, so callers can
// tell a transport problem from a malformed document.
func Load(ctx context.Context, locator, charset string) (*table.Dataset, error) {
	return LoadWith(ctx, fetch.New(fetch.DefaultConfig()), locator, charset)
}

// LoadWith is Load with a caller-supplied Fetcher.
func LoadWith(ctx context.Context, f *fetch.Fetcher, locator, charset string) (*table.Dataset, error) {
	text, err := f.Fetch(ctx, locator, charset)
	if err != nil {
		return nil, err
	}
	return Parse(text)
}
