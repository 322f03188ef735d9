// Package tag implements a mutable HTML element tree.
//
// A Tag owns its attributes and an ordered list of contents (tags and text).
// Mutating methods return the receiver so calls can be chained; methods that
// can fail return the receiver and an error, and leave the tag untouched when
// they fail. Use Must to chain them when failure is a programming error.
//
// Parent pointers are set on insertion and are not owning. Inserting the same
// node in two places is not prevented and cycles are not detected: keeping
// the structure a tree is up to the caller. A Tag is not safe for concurrent
// mutation.
//
// Tag and attribute names must not hold whitespace, control characters,
// quotes, "<", ">", "/" or "=". Text and attribute values are escaped when
// rendered.
//
// Parsing follows the HTML tree construction rules, so some trees do not
// survive a render/parse round trip unchanged: adjacent Text nodes come back
// merged, empty Text nodes are dropped, tag and attribute names are
// lower-cased, and a table gets the tbody its rows imply.
package tag

import (
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Tag is an HTML element with attributes and ordered contents
type Tag struct {
	name       string
	attributes attributes
	contents   []Element
	parent     *Tag
}

// invalidNameChars may not appear in tag and attribute names
const invalidNameChars = "\"'<>/="

// checkName fails when name cannot be written verbatim as a tag or
// attribute name: empty, or holding whitespace, control characters, quotes,
// "<", ">", "/" or "="
func checkName(kind, name string) error {
	if name == "" {
		return errors.Wrapf(ErrInvalidArgument, "empty %s name", kind)
	}
	for _, r := range name {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(invalidNameChars, r) {
			return errors.Wrapf(ErrInvalidArgument, "%s name %q contains %q", kind, name, r)
		}
	}
	return nil
}

// New creates an empty tag. The name is kept as given.
func New(name string) (*Tag, error) {
	if err := checkName("tag", name); err != nil {
		return nil, err
	}
	return &Tag{name: name}, nil
}

// MustNew is like New but panics if the name is invalid
func MustNew(name string) *Tag {
	return Must(New(name))
}

// Must returns t and panics if err is not nil. It allows chaining calls
// that can only fail on programming errors:
//
//	div := tag.Must(tag.MustNew("div").Style("color", "red", true))
func Must(t *Tag, err error) *Tag {
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the tag name
func (t *Tag) Name() string {
	return t.name
}

// Parent returns the tag holding t, or nil for a root
func (t *Tag) Parent() *Tag {
	return t.parent
}

func (t *Tag) setParent(p *Tag) {
	t.parent = p
}

// Contents returns a copy of the contents, tags and text, in order
func (t *Tag) Contents() []Element {
	out := make([]Element, len(t.contents))
	copy(out, t.contents)
	return out
}

// Children returns the tags among the contents, in order
func (t *Tag) Children() []*Tag {
	children := []*Tag{}
	for _, e := range t.contents {
		if child, ok := e.(*Tag); ok {
			children = append(children, child)
		}
	}
	return children
}

// Parents returns the ancestors of t from its parent up to the root
func (t *Tag) Parents() []*Tag {
	parents := []*Tag{}
	for p := t.parent; p != nil; p = p.parent {
		parents = append(parents, p)
	}
	return parents
}

// Siblings returns the children of the parent other than t
func (t *Tag) Siblings() []*Tag {
	siblings := []*Tag{}
	if t.parent == nil {
		return siblings
	}
	for _, child := range t.parent.Children() {
		if child != t {
			siblings = append(siblings, child)
		}
	}
	return siblings
}

// Find returns the descendant tags matching match: first the matching
// children, then the results of Find on each child in turn. A nil match
// selects every descendant.
func (t *Tag) Find(match func(*Tag) bool) []*Tag {
	found := []*Tag{}
	children := t.Children()
	for _, child := range children {
		if match == nil || match(child) {
			found = append(found, child)
		}
	}
	for _, child := range children {
		found = append(found, child.Find(match)...)
	}
	return found
}

// Insert inserts e at position i of the contents and makes t its parent.
// i must be within [0, len(contents)].
func (t *Tag) Insert(i int, e Element) (*Tag, error) {
	if isNil(e) {
		return t, errors.Wrap(ErrInvalidArgument, "nil element")
	}
	if i < 0 || i > len(t.contents) {
		return t, errors.Wrapf(ErrOutOfRange, "insert at %d into %d element(s)", i, len(t.contents))
	}

	t.contents = append(t.contents, nil)
	copy(t.contents[i+1:], t.contents[i:])
	t.contents[i] = e
	e.setParent(t)
	return t, nil
}

// Append adds e after the existing contents
func (t *Tag) Append(e Element) (*Tag, error) {
	return t.Insert(len(t.contents), e)
}

// Prepend adds e before the existing contents
func (t *Tag) Prepend(e Element) (*Tag, error) {
	return t.Insert(0, e)
}

// InsertText inserts a text node at position i
func (t *Tag) InsertText(i int, text string) (*Tag, error) {
	return t.Insert(i, NewText(text))
}

// AppendText adds a text node after the existing contents
func (t *Tag) AppendText(text string) *Tag {
	return Must(t.Append(NewText(text)))
}

// PrependText adds a text node before the existing contents
func (t *Tag) PrependText(text string) *Tag {
	return Must(t.Prepend(NewText(text)))
}

// Remove detaches t from its parent
func (t *Tag) Remove() *Tag {
	p := t.parent
	if p == nil {
		return t
	}
	for i, e := range p.contents {
		if e == Element(t) {
			p.contents = append(p.contents[:i], p.contents[i+1:]...)
			break
		}
	}
	t.parent = nil
	return t
}

// Empty removes all contents
func (t *Tag) Empty() *Tag {
	for _, e := range t.contents {
		if e.Parent() == t {
			e.setParent(nil)
		}
	}
	t.contents = nil
	return t
}

// Clone returns a deep copy of t without a parent
func (t *Tag) Clone() *Tag {
	c := &Tag{
		name:       t.name,
		attributes: t.attributes.clone(),
	}
	for _, e := range t.contents {
		switch e := e.(type) {
		case *Tag:
			Must(c.Append(e.Clone()))
		case *Text:
			Must(c.Append(NewText(e.value)))
		}
	}
	return c
}

// InnerText returns the unescaped text of all descendants, in order
func (t *Tag) InnerText() string {
	var sb strings.Builder
	t.innerText(&sb)
	return sb.String()
}

func (t *Tag) innerText(sb *strings.Builder) {
	for _, e := range t.contents {
		switch e := e.(type) {
		case *Tag:
			e.innerText(sb)
		case *Text:
			sb.WriteString(e.value)
		}
	}
}
