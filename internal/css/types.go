package css

import (
	"sort"
	"strings"
)

// Declaration represents a single property declaration of an inline style
type Declaration struct {
	Property string // CSS property name, case as given
	Value    string // CSS property value
}

// Declarations is an ordered list of declarations with unique properties.
// It serializes to the inline style format "prop:value;prop:value".
type Declarations []Declaration

// Len returns the number of declarations
func (d Declarations) Len() int {
	return len(d)
}

// index returns the position of property in the list, or -1
func (d Declarations) index(property string) int {
	for i, decl := range d {
		if decl.Property == property {
			return i
		}
	}
	return -1
}

// Get returns the value of property
func (d Declarations) Get(property string) (string, bool) {
	if i := d.index(property); i >= 0 {
		return d[i].Value, true
	}
	return "", false
}

// Has reports whether property is declared
func (d Declarations) Has(property string) bool {
	return d.index(property) >= 0
}

// Set returns the list with property set to value. An existing property keeps
// its position; when replace is false an existing value is left untouched.
func (d Declarations) Set(property, value string, replace bool) Declarations {
	if i := d.index(property); i >= 0 {
		if replace {
			out := d.Clone()
			out[i].Value = value
			return out
		}
		return d
	}
	out := make(Declarations, len(d), len(d)+1)
	copy(out, d)
	return append(out, Declaration{Property: property, Value: value})
}

// Delete returns the list without property
func (d Declarations) Delete(property string) Declarations {
	i := d.index(property)
	if i < 0 {
		return d
	}
	out := make(Declarations, 0, len(d)-1)
	out = append(out, d[:i]...)
	return append(out, d[i+1:]...)
}

// Clone returns an independent copy of the list
func (d Declarations) Clone() Declarations {
	if d == nil {
		return nil
	}
	out := make(Declarations, len(d))
	copy(out, d)
	return out
}

// Sorted returns a copy of the list ordered by property
func (d Declarations) Sorted() Declarations {
	out := d.Clone()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Property < out[j].Property
	})
	return out
}

// Equal reports whether both lists hold the same property/value pairs,
// ignoring order
func (d Declarations) Equal(other Declarations) bool {
	if len(d) != len(other) {
		return false
	}
	for _, decl := range d {
		value, ok := other.Get(decl.Property)
		if !ok || value != decl.Value {
			return false
		}
	}
	return true
}

// String formats the list as an inline style attribute value
func (d Declarations) String() string {
	parts := make([]string, 0, len(d))
	for _, decl := range d {
		parts = append(parts, decl.Property+PropertySeparator+decl.Value)
	}
	return strings.Join(parts, RuleSeparator)
}
