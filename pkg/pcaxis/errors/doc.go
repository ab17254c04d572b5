// Package errors defines the typed errors returned by the PC-Axis parser.
//
// Parsing fails as a whole only on structural problems — a missing DATA=
// marker, a dimension without a member list, or a data block whose size
// disagrees with the dimension product. Each case carries a Type constant
// plus the details needed to diagnose it (the offending dimension name, or
// both sides of a count mismatch).
//
// Per-value problems are deliberately NOT errors: a data token that fails
// numeric conversion becomes a NaN observation and the parse continues, so
// one bad cell never discards a whole table.
//
// Callers branch on error kinds with the predicate helpers:
//
//	ds, err := pcaxis.Parse(text)
//	if pxerrors.IsCountMismatch(err) {
//	    var perr *pxerrors.Error
//	    errors.As(err, &perr)
//	    log.Printf("expected %d observations, data block has %d",
//	        perr.ProductSize, perr.TokenCount)
//	}
//
// Acquisition-layer errors (transport, HTTP status, charset) are defined by
// package fetch and pass through the pcaxis entry points unchanged; they
// never appear as *Error values.
package errors
