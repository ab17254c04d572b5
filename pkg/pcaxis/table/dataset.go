package table

import (
	"encoding/json"
	"math"
	"strconv"
)

// Row is one expanded observation: one member label per dimension, in
// DimensionSet order, plus the observation value. Value is NaN when the
// source token could not be parsed as a number (PX files commonly mark
// confidential or missing cells with tokens like "." or "..").
type Row struct {
	Labels []string
	Value  float64
}

// IsMissing reports whether the row's value is the NaN missing-value marker.
func (r Row) IsMissing() bool {
	return math.IsNaN(r.Value)
}

// MarshalJSON encodes the row as {"labels": [...], "value": <number|null>}.
// NaN has no JSON representation, so missing values encode as null.
func (r Row) MarshalJSON() ([]byte, error) {
	var value any
	if !math.IsNaN(r.Value) {
		value = r.Value
	}
	return json.Marshal(struct {
		Labels []string `json:"labels"`
		Value  any      `json:"value"`
	}{Labels: r.Labels, Value: value})
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON, mapping a
// null value back to NaN.
func (r *Row) UnmarshalJSON(data []byte) error {
	var wire struct {
		Labels []string `json:"labels"`
		Value  *float64 `json:"value"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Labels = wire.Labels
	if wire.Value == nil {
		r.Value = math.NaN()
	} else {
		r.Value = *wire.Value
	}
	return nil
}

// Dataset is the result of parsing one PX document: the metadata header,
// the extracted dimensions, and the expanded rows. A Dataset is built once
// per parse invocation and never mutated afterwards; the caller owns it
// exclusively.
type Dataset struct {
	Metadata   *Metadata    `json:"metadata"`
	Dimensions DimensionSet `json:"dimensions"`
	Rows       []Row        `json:"rows"`
}

// Title returns the document's TITLE attribute, or "" if absent.
func (d *Dataset) Title() string {
	return d.Metadata.First(KeyTitle)
}

// Units returns the document's UNITS attribute, or "" if absent.
func (d *Dataset) Units() string {
	return d.Metadata.First(KeyUnits)
}

// RowCount returns the number of expanded rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// MissingCount returns how many rows carry the NaN missing-value marker.
func (d *Dataset) MissingCount() int {
	n := 0
	for _, r := range d.Rows {
		if r.IsMissing() {
			n++
		}
	}
	return n
}

// FormatValue renders a row value for display: plain decimal notation with
// the fewest digits that round-trip, ".." for missing values (the
// conventional PX marker).
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ".."
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
