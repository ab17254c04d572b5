package parser

import "strings"

// scanAttributes splits metadata text into raw NAME=VALUES fragments.
//
// A fragment ends at a semicolon outside double quotes, or at the end of
// the input. The scanner walks the text once, flipping quote state on each
// double quote, so semicolons inside quoted values (common in PX notes and
// contact fields) never terminate a fragment. Fragments that are empty or
// carry no equals sign are dropped.
//
// Quote and semicolon are both single ASCII bytes, so scanning bytes is
// safe even when values contain multi-byte characters.
func scanAttributes(metaText string) []string {
	var fragments []string

	start := 0
	inQuote := false
	for i := 0; i < len(metaText); i++ {
		switch metaText[i] {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				if frag := cleanFragment(metaText[start:i]); frag != "" {
					fragments = append(fragments, frag)
				}
				start = i + 1
			}
		}
	}
	if frag := cleanFragment(metaText[start:]); frag != "" {
		fragments = append(fragments, frag)
	}

	return fragments
}

// cleanFragment trims a raw fragment and rejects anything that cannot be a
// NAME=VALUES declaration. The empty string signals rejection.
func cleanFragment(raw string) string {
	frag := strings.TrimSpace(raw)
	if frag == "" || !strings.Contains(frag, "=") {
		return ""
	}
	return frag
}
