package tag

import (
	"golang.org/x/net/html"
)

// Element is a node of a tag tree: either a *Tag or a *Text.
type Element interface {
	// String renders the element to markup text.
	String() string
	// Parent returns the tag holding the element, or nil.
	Parent() *Tag

	setParent(p *Tag)
}

// Text is a leaf holding text content. Its value is stored unescaped and
// escaped when rendered.
type Text struct {
	value  string
	parent *Tag
}

// NewText creates a text node
func NewText(value string) *Text {
	return &Text{value: value}
}

// Value returns the unescaped text
func (t *Text) Value() string {
	return t.value
}

// Parent returns the tag holding the text, or nil
func (t *Text) Parent() *Tag {
	return t.parent
}

func (t *Text) setParent(p *Tag) {
	t.parent = p
}

// String returns the HTML-escaped text
func (t *Text) String() string {
	return html.EscapeString(t.value)
}

// isNil reports whether e is nil or a typed nil pointer
func isNil(e Element) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Tag:
		return v == nil
	case *Text:
		return v == nil
	}
	return false
}
