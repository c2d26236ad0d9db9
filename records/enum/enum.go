// Package enum backs small closed enumerations stored as uint8
package enum

import "fmt"

// Names lists the name of every value of an enumeration
// in value order. The zero value is the default.
type Names []string

// Valid returns true if v names a member
func (names Names) Valid(v uint8) bool {
	return int(v) < len(names)
}

// String returns the name of v
func (names Names) String(v uint8) string {
	if !names.Valid(v) {
		return fmt.Sprintf("Unknown(%d)", v)
	}

	return names[v]
}

// MarshalText encodes v as its name
func (names Names) MarshalText(kind string, v uint8) ([]byte, error) {
	if !names.Valid(v) {
		return nil, fmt.Errorf("invalid %s %d", kind, v)
	}

	return []byte(names[v]), nil
}

// Parse returns the value named text
func (names Names) Parse(kind string, text []byte) (uint8, error) {
	for i, name := range names {
		if name == string(text) {
			return uint8(i), nil
		}
	}

	return 0, fmt.Errorf("invalid %s %q", kind, text)
}
