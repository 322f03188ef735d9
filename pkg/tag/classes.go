package tag

import (
	"strings"
)

const (
	classAttribute = "class"
	classSeparator = " "
)

// splitClasses splits a class list on single spaces, dropping empty tokens
func splitClasses(s string) []string {
	classes := []string{}
	for _, class := range strings.Split(s, classSeparator) {
		if class != "" {
			classes = append(classes, class)
		}
	}
	return classes
}

// Classes returns the class attribute as a list, in attribute order
func (t *Tag) Classes() []string {
	value, ok := t.Attr(classAttribute)
	if !ok {
		return []string{}
	}
	return splitClasses(value)
}

// SetClasses replaces the class attribute. An empty list removes it.
func (t *Tag) SetClasses(classes []string) *Tag {
	kept := make([]string, 0, len(classes))
	for _, class := range classes {
		if class != "" {
			kept = append(kept, class)
		}
	}
	if len(kept) == 0 {
		return t.RemoveAttribute(classAttribute)
	}
	t.attributes.set(classAttribute, strings.Join(kept, classSeparator))
	return t
}

// HasClass reports whether name is one of the classes. The match is exact
// and case-sensitive.
func (t *Tag) HasClass(name string) bool {
	for _, class := range t.Classes() {
		if class == name {
			return true
		}
	}
	return false
}

// AddClass adds the space-separated classes of list. Existing classes keep
// their order, new ones follow in the given order, and duplicates are dropped.
func (t *Tag) AddClass(list string) *Tag {
	seen := map[string]bool{}
	merged := []string{}
	for _, class := range append(t.Classes(), splitClasses(list)...) {
		if seen[class] {
			continue
		}
		seen[class] = true
		merged = append(merged, class)
	}
	return t.SetClasses(merged)
}

// RemoveClass removes every class named in the space-separated list
func (t *Tag) RemoveClass(list string) *Tag {
	removed := map[string]bool{}
	for _, class := range splitClasses(list) {
		removed[class] = true
	}
	kept := []string{}
	for _, class := range t.Classes() {
		if !removed[class] {
			kept = append(kept, class)
		}
	}
	return t.SetClasses(kept)
}
