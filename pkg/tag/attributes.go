package tag

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	dataPrefix = "data-"

	nameAttribute     = "name"
	titleAttribute    = "title"
	idAttribute       = "id"
	typeAttribute     = "type"
	checkedAttribute  = "checked"
	disabledAttribute = "disabled"
	selectedAttribute = "selected"
)

// attributes is an insertion-ordered list of attributes with unique keys
type attributes []html.Attribute

func (a attributes) index(key string) int {
	for i, attr := range a {
		if attr.Key == key {
			return i
		}
	}
	return -1
}

func (a attributes) clone() attributes {
	if a == nil {
		return nil
	}
	out := make(attributes, len(a))
	copy(out, a)
	return out
}

// set stores value under key, keeping the position of an existing key
func (a *attributes) set(key, value string) {
	if i := a.index(key); i >= 0 {
		(*a)[i].Val = value
		return
	}
	*a = append(*a, html.Attribute{Key: key, Val: value})
}

func (a *attributes) remove(key string) {
	if i := a.index(key); i >= 0 {
		*a = append((*a)[:i], (*a)[i+1:]...)
	}
}

// Attr returns the value of the attribute named name
func (t *Tag) Attr(name string) (string, bool) {
	if i := t.attributes.index(name); i >= 0 {
		return t.attributes[i].Val, true
	}
	return "", false
}

// HasAttribute reports whether the attribute named name is set
func (t *Tag) HasAttribute(name string) bool {
	return t.attributes.index(name) >= 0
}

// Attributes returns a copy of the attributes in insertion order
func (t *Tag) Attributes() []html.Attribute {
	out := make([]html.Attribute, len(t.attributes))
	copy(out, t.attributes)
	return out
}

// AttributeCount returns the number of attributes
func (t *Tag) AttributeCount() int {
	return len(t.attributes)
}

// RemoveAttribute removes the attribute named name if it is set
func (t *Tag) RemoveAttribute(name string) *Tag {
	t.attributes.remove(name)
	return t
}

// Attribute sets the attribute name to value. When replace is false and the
// attribute is already set, the call does nothing.
func (t *Tag) Attribute(name, value string, replace bool) (*Tag, error) {
	if err := checkName("attribute", name); err != nil {
		return t, err
	}
	if !replace && t.HasAttribute(name) {
		return t, nil
	}
	t.attributes.set(name, value)
	return t, nil
}

// SetAttribute sets the attribute name to value, replacing any existing value
func (t *Tag) SetAttribute(name, value string) (*Tag, error) {
	return t.Attribute(name, value, true)
}

// Merge sets every attribute of attrs, in order. Keys are validated before
// anything is applied.
func (t *Tag) Merge(attrs []html.Attribute, replace bool) (*Tag, error) {
	for _, attr := range attrs {
		if err := checkName("attribute", attr.Key); err != nil {
			return t, err
		}
	}
	for _, attr := range attrs {
		Must(t.Attribute(attr.Key, attr.Val, replace))
	}
	return t, nil
}

// SetName sets the name attribute
func (t *Tag) SetName(value string) *Tag {
	t.attributes.set(nameAttribute, value)
	return t
}

// SetTitle sets the title attribute
func (t *Tag) SetTitle(value string) *Tag {
	t.attributes.set(titleAttribute, value)
	return t
}

// SetID sets the id attribute
func (t *Tag) SetID(value string) *Tag {
	t.attributes.set(idAttribute, value)
	return t
}

// SetType sets the type attribute
func (t *Tag) SetType(value string) *Tag {
	t.attributes.set(typeAttribute, value)
	return t
}

// ToggleAttribute sets a boolean attribute: present sets it to its own name
// (disabled="disabled"), otherwise it is removed
func (t *Tag) ToggleAttribute(name string, present bool) (*Tag, error) {
	if err := checkName("attribute", name); err != nil {
		return t, err
	}
	if present {
		t.attributes.set(name, name)
	} else {
		t.attributes.remove(name)
	}
	return t, nil
}

// Checked toggles the checked attribute
func (t *Tag) Checked(present bool) *Tag {
	return Must(t.ToggleAttribute(checkedAttribute, present))
}

// Disabled toggles the disabled attribute
func (t *Tag) Disabled(present bool) *Tag {
	return Must(t.ToggleAttribute(disabledAttribute, present))
}

// Selected toggles the selected attribute
func (t *Tag) Selected(present bool) *Tag {
	return Must(t.ToggleAttribute(selectedAttribute, present))
}

// dataKey prefixes key with "data-" unless it already is
func dataKey(key string) string {
	if strings.HasPrefix(key, dataPrefix) {
		return key
	}
	return dataPrefix + key
}

// Data sets a data attribute. The key is prefixed with "data-" unless it
// already starts with it.
func (t *Tag) Data(key, value string, replace bool) (*Tag, error) {
	if err := checkName("data", key); err != nil {
		return t, err
	}
	return t.Attribute(dataKey(key), value, replace)
}

// DataAll sets a data attribute for every entry of attrs, in order
func (t *Tag) DataAll(attrs []html.Attribute, replace bool) (*Tag, error) {
	prefixed := make([]html.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		if err := checkName("data", attr.Key); err != nil {
			return t, err
		}
		prefixed = append(prefixed, html.Attribute{Key: dataKey(attr.Key), Val: attr.Val})
	}
	return t.Merge(prefixed, replace)
}
