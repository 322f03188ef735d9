package tag

import (
	"hash/fnv"
	"sort"
)

// Equal reports whether a and b are structurally equal: text by value, tags
// by (*Tag).Equal
func Equal(a, b Element) bool {
	if isNil(a) || isNil(b) {
		return isNil(a) && isNil(b)
	}
	switch a := a.(type) {
	case *Tag:
		b, ok := b.(*Tag)
		return ok && a.Equal(b)
	case *Text:
		b, ok := b.(*Text)
		return ok && a.value == b.value
	}
	return false
}

// Equal reports whether t and o are structurally equal. Attribute order and
// the order of classes and style rules are ignored; content order is not.
func (t *Tag) Equal(o *Tag) bool {
	if t == o {
		return true
	}
	if t == nil || o == nil {
		return false
	}
	if t.name != o.name || len(t.attributes) != len(o.attributes) {
		return false
	}

	plain, otherPlain := t.plainAttributes(), o.plainAttributes()
	if len(plain) != len(otherPlain) {
		return false
	}
	for _, attr := range plain {
		if value, ok := o.Attr(attr.Key); !ok || value != attr.Val {
			return false
		}
	}

	if !t.equalStyles(o) {
		return false
	}

	classes, otherClasses := t.Classes(), o.Classes()
	if len(classes) != len(otherClasses) {
		return false
	}
	sort.Strings(classes)
	sort.Strings(otherClasses)
	for i := range classes {
		if classes[i] != otherClasses[i] {
			return false
		}
	}

	if len(t.contents) != len(o.contents) {
		return false
	}
	for i := range t.contents {
		if !Equal(t.contents[i], o.contents[i]) {
			return false
		}
	}
	return true
}

// equalStyles compares the parsed style rules, or the raw attribute values
// when either side cannot be parsed
func (t *Tag) equalStyles(o *Tag) bool {
	styles, err := t.Styles()
	otherStyles, otherErr := o.Styles()
	if err != nil || otherErr != nil {
		raw, _ := t.Attr(styleAttribute)
		otherRaw, _ := o.Attr(styleAttribute)
		return raw == otherRaw
	}
	return styles.Equal(otherStyles)
}

// plainAttributes returns the attributes other than class and style, sorted
// by key
func (t *Tag) plainAttributes() attributes {
	plain := make(attributes, 0, len(t.attributes))
	for _, attr := range t.attributes {
		if attr.Key == classAttribute || attr.Key == styleAttribute {
			continue
		}
		plain = append(plain, attr)
	}
	sort.Slice(plain, func(i, j int) bool {
		return plain[i].Key < plain[j].Key
	})
	return plain
}

// Hash returns a hash of the name, attributes, style rules and classes of t.
// Equal tags have equal hashes. Contents are not hashed.
func (t *Tag) Hash() uint64 {
	h := fnv.New64a()
	write := func(parts ...string) {
		for _, part := range parts {
			h.Write([]byte(part))
			h.Write([]byte{0})
		}
	}

	write("name", t.name)

	write("attributes")
	for _, attr := range t.plainAttributes() {
		write(attr.Key, attr.Val)
	}

	write("styles")
	if styles, err := t.Styles(); err == nil {
		for _, rule := range styles.Sorted() {
			write(rule.Property, rule.Value)
		}
	} else {
		raw, _ := t.Attr(styleAttribute)
		write(raw)
	}

	write("classes")
	classes := t.Classes()
	sort.Strings(classes)
	write(classes...)

	return h.Sum64()
}
