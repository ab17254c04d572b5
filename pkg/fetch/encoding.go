package fetch

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// DecodeCharset converts raw document bytes in the named charset to UTF-8
// text. The charset is looked up by its IANA name (case-insensitive, e.g.
// "ISO-8859-15", "windows-1252"). The empty string means the bytes are
// already UTF-8 and are passed through untouched.
func DecodeCharset(data []byte, charset string) (string, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" {
		return string(data), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return "", fmt.Errorf("unknown charset %q: %w", charset, err)
	}
	if enc == nil {
		// The index knows the name but has no decoder for it
		return "", fmt.Errorf("unsupported charset %q", charset)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode charset %q: %w", charset, err)
	}
	return string(decoded), nil
}
