package table

import (
	"encoding/json"
	"fmt"
)

// Metadata is an ordered multi-value mapping of PX attribute names to their
// decoded value lists. Keys iterate in first-seen order; values within a key
// keep declaration order. Repeated declarations of the same name append to
// the existing list rather than replacing it, so a document with several
// NOTE attributes retains all of them.
//
// Attribute names are case-sensitive and may carry a parenthesized qualifier
// (e.g. "VALUES(Region)"); the qualifier is part of the key.
type Metadata struct {
	keys   []string
	values map[string][]string
}

// NewMetadata returns an empty Metadata.
func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string][]string)}
}

// Append adds values under name, creating the key on first use and
// appending on repeat declarations.
func (m *Metadata) Append(name string, values ...string) {
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = append(m.values[name], values...)
}

// Get returns the merged value list for name in declaration order,
// or nil if the attribute was never declared.
func (m *Metadata) Get(name string) []string {
	return m.values[name]
}

// First returns the first declared value for name, or "" if the attribute
// is absent or declared with an empty value list.
func (m *Metadata) First(name string) string {
	if vs := m.values[name]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Last returns the most recently declared value for name, or "".
// Callers that want last-write-wins semantics for repeatable attributes
// (such as NOTE) use this instead of Get.
func (m *Metadata) Last(name string) string {
	if vs := m.values[name]; len(vs) > 0 {
		return vs[len(vs)-1]
	}
	return ""
}

// Has reports whether name was declared, even with an empty value list.
func (m *Metadata) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Keys returns the attribute names in first-seen order. The returned slice
// is a copy and safe for the caller to modify.
func (m *Metadata) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Len returns the number of distinct attribute names.
func (m *Metadata) Len() int {
	return len(m.keys)
}

// metadataWire is the JSON form of one attribute.
type metadataWire struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// MarshalJSON encodes the metadata as an array of {"name", "values"}
// objects. A JSON object would lose the declaration order, so the wire
// form is a list.
func (m *Metadata) MarshalJSON() ([]byte, error) {
	attrs := make([]metadataWire, len(m.keys))
	for i, name := range m.keys {
		attrs[i] = metadataWire{Name: name, Values: m.values[name]}
	}
	return json.Marshal(attrs)
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON,
// replacing any existing content.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var attrs []metadataWire
	if err := json.Unmarshal(data, &attrs); err != nil {
		return err
	}
	*m = *NewMetadata()
	for _, attr := range attrs {
		m.Append(attr.Name, attr.Values...)
	}
	return nil
}

// ValuesKey synthesizes the metadata key that holds the member list for a
// dimension, e.g. ValuesKey("Region") == "VALUES(Region)".
func ValuesKey(dimension string) string {
	return fmt.Sprintf("VALUES(%s)", dimension)
}

// Well-known PX attribute names interpreted by this package. Every other
// attribute passes through Metadata as an opaque key/value-list entry.
const (
	KeyStub    = "STUB"
	KeyHeading = "HEADING"
	KeyTitle   = "TITLE"
	KeyUnits   = "UNITS"
	KeyData    = "DATA"
)
