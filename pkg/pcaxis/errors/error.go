package errors

import (
	stderrors "errors"
	"fmt"
)

// Type categorizes a structural parse error.
type Type string

const (
	// TypeMalformedDocument — the literal DATA= marker is absent, so the
	// document cannot be split into metadata and data sections.
	TypeMalformedDocument Type = "malformed_document"

	// TypeMissingDimensionValues — a name listed under STUB or HEADING has
	// no corresponding VALUES(name) attribute.
	TypeMissingDimensionValues Type = "missing_dimension_values"

	// TypeCountMismatch — the cartesian product of the dimension member
	// lists differs from the number of tokens in the data block.
	TypeCountMismatch Type = "count_mismatch"
)

// Error is a structural PC-Axis parse error. Exactly one stage of the parse
// pipeline produces each Type; the parse stops at the stage that detected
// the problem.
type Error struct {
	Type    Type   // Category of error
	Message string // Human-readable description

	// Dimension is the offending dimension name for
	// TypeMissingDimensionValues, otherwise "".
	Dimension string

	// ProductSize and TokenCount carry both sides of a TypeCountMismatch:
	// the expected observation count (product of member list sizes) and the
	// actual token count of the data block.
	ProductSize int
	TokenCount  int

	// Suggestion is an optional hint for fixing the source document.
	Suggestion string
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (suggestion: %s)", e.Suggestion)
	}
	return msg
}

// NewMalformedDocument returns the error for a document without a DATA=
// marker.
func NewMalformedDocument() *Error {
	return &Error{
		Type:       TypeMalformedDocument,
		Message:    "document has no DATA= marker",
		Suggestion: "check that the input is a PX file and was decoded with the right charset",
	}
}

// NewMissingDimensionValues returns the error for a STUB/HEADING entry
// whose VALUES(name) attribute is absent.
func NewMissingDimensionValues(dimension string) *Error {
	return &Error{
		Type:       TypeMissingDimensionValues,
		Message:    fmt.Sprintf("no VALUES(%s) attribute for dimension %q", dimension, dimension),
		Dimension:  dimension,
		Suggestion: fmt.Sprintf("declare VALUES(%s)=... in the metadata section", dimension),
	}
}

// NewCountMismatch returns the error for a data block whose token count
// disagrees with the dimension product.
func NewCountMismatch(productSize, tokenCount int) *Error {
	return &Error{
		Type:        TypeCountMismatch,
		Message:     fmt.Sprintf("dimension product expects %d observations, data block has %d tokens", productSize, tokenCount),
		ProductSize: productSize,
		TokenCount:  tokenCount,
	}
}

// TypeOf returns the Type of err if it is (or wraps) an *Error, and ""
// otherwise.
func TypeOf(err error) Type {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ""
}

// IsMalformedDocument reports whether err is a TypeMalformedDocument error.
func IsMalformedDocument(err error) bool {
	return TypeOf(err) == TypeMalformedDocument
}

// IsMissingDimensionValues reports whether err is a
// TypeMissingDimensionValues error.
func IsMissingDimensionValues(err error) bool {
	return TypeOf(err) == TypeMissingDimensionValues
}

// IsCountMismatch reports whether err is a TypeCountMismatch error.
func IsCountMismatch(err error) bool {
	return TypeOf(err) == TypeCountMismatch
}
