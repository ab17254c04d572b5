package fetch

import (
	"net/url"
	"strings"
)

// Kind classifies a document locator.
type Kind string

const (
	// KindURL is a locator fetched over the network.
	KindURL Kind = "url"

	// KindFile is a locator read from the filesystem.
	KindFile Kind = "file"
)

// urlSchemes are the schemes treated as network locators. Everything else,
// including a Windows drive prefix that technically parses as a scheme, is
// a filesystem path.
var urlSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ftp":   true,
}

// Classify reports whether locator names a network URL or a filesystem
// path.
func Classify(locator string) Kind {
	u, err := url.Parse(locator)
	if err != nil {
		return KindFile
	}
	if urlSchemes[strings.ToLower(u.Scheme)] {
		return KindURL
	}
	return KindFile
}

// Scheme returns the lowercase scheme of a URL locator, or "file" for a
// filesystem path. Useful as a metrics label.
func Scheme(locator string) string {
	if Classify(locator) == KindFile {
		return "file"
	}
	u, _ := url.Parse(locator)
	return strings.ToLower(u.Scheme)
}
