package tag

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nodeIndex links converted nodes and the tags they were built from
type nodeIndex struct {
	tags map[*html.Node]*Tag
	// nodes holds, for each tag, the node built under its own parent. A tag
	// listed by more than one parent is converted once per listing.
	nodes map[*Tag]*html.Node
}

func newNodeIndex() *nodeIndex {
	return &nodeIndex{
		tags:  map[*html.Node]*Tag{},
		nodes: map[*Tag]*html.Node{},
	}
}

// Node converts t and its contents into a detached x/net/html tree
func (t *Tag) Node() *html.Node {
	return t.node(nil)
}

func (t *Tag) node(index *nodeIndex) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     t.name,
		DataAtom: atom.Lookup([]byte(t.name)),
		Attr:     t.Attributes(),
	}
	if index != nil {
		index.tags[n] = t
	}
	for _, e := range t.contents {
		switch e := e.(type) {
		case *Tag:
			child := e.node(index)
			if index != nil && e.parent == t {
				index.nodes[e] = child
			}
			n.AppendChild(child)
		case *Text:
			n.AppendChild(&html.Node{Type: html.TextNode, Data: e.value})
		}
	}
	return n
}

func compileSelector(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidArgument, "invalid selector %q: %v", selector, err)
	}
	return sel, nil
}

// Select returns the descendants of t matching a CSS selector, in document
// order
func (t *Tag) Select(selector string) ([]*Tag, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return nil, err
	}

	index := newNodeIndex()
	doc := goquery.NewDocumentFromNode(t.node(index))
	found := doc.FindMatcher(sel)

	tags := make([]*Tag, 0, found.Length())
	for _, n := range found.Nodes {
		tags = append(tags, index.tags[n])
	}
	return tags, nil
}

// Matches reports whether t matches a CSS selector. The selector is
// evaluated against the whole tree t belongs to, so combinators see the
// ancestors of t.
func (t *Tag) Matches(selector string) (bool, error) {
	sel, err := compileSelector(selector)
	if err != nil {
		return false, err
	}

	root := t
	for root.parent != nil {
		root = root.parent
	}
	index := newNodeIndex()
	index.nodes[root] = root.node(index)
	n, ok := index.nodes[t]
	if !ok {
		return false, nil
	}
	return sel.Match(n), nil
}
