package tag

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"tagtree/pkg/markup"
)

var fragmentParser markup.Parser = markup.NewParser()

// Parse parses markup holding a single root element into a new tree
func Parse(s string) (*Tag, error) {
	doc, err := fragmentParser.Parse(s)
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc)
}

// ParseReader parses markup read from r
func ParseReader(r io.Reader) (*Tag, error) {
	if r == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil reader")
	}
	doc, err := fragmentParser.ParseReader(r)
	if err != nil {
		return nil, err
	}
	return ParseDocument(doc)
}

// ParseDocument translates an already parsed document. Any parse error
// reported in the document fails the call with a *SyntaxError.
func ParseDocument(doc *markup.Document) (*Tag, error) {
	if doc == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil document")
	}
	if doc.HasErrors() {
		return nil, &SyntaxError{Errors: doc.Errors}
	}
	root, err := singleRoot(doc.Nodes)
	if err != nil {
		return nil, err
	}
	return fromNode(root)
}

// ParseNode translates an x/net/html tree. n is either the root element
// itself or a document node holding a single root element.
func ParseNode(n *html.Node) (*Tag, error) {
	if n == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil node")
	}
	switch n.Type {
	case html.ElementNode:
		return fromNode(n)
	case html.DocumentNode:
		var nodes []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			nodes = append(nodes, c)
		}
		root, err := singleRoot(nodes)
		if err != nil {
			return nil, err
		}
		return fromNode(root)
	}
	return nil, errors.Wrap(ErrShape, "node is neither an element nor a document")
}

// ParseSelection translates the single element of a goquery selection. A
// selection of the document node is accepted as well.
func ParseSelection(sel *goquery.Selection) (*Tag, error) {
	if sel == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil selection")
	}
	if sel.Length() == 1 {
		return ParseNode(sel.Get(0))
	}
	return ParseDocument(markup.FromSelection(sel))
}

// singleRoot returns the only element among nodes. Comments, doctypes and
// whitespace-only text are ignored.
func singleRoot(nodes []*html.Node) (*html.Node, error) {
	var root *html.Node
	for _, n := range nodes {
		switch n.Type {
		case html.ElementNode:
			if root != nil {
				return nil, errors.Wrapf(ErrShape, "found <%s> after root <%s>", n.Data, root.Data)
			}
			root = n
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				return nil, errors.Wrapf(ErrShape, "text %q outside the root element", n.Data)
			}
		case html.CommentNode, html.DoctypeNode:
		default:
			return nil, errors.Wrapf(ErrShape, "unexpected top-level node type %d", n.Type)
		}
	}
	if root == nil {
		return nil, errors.Wrap(ErrShape, "no root element")
	}
	return root, nil
}

// fromNode translates an element node and its subtree
func fromNode(n *html.Node) (*Tag, error) {
	t, err := New(n.Data)
	if err != nil {
		return nil, err
	}
	for _, attr := range n.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + key
		}
		if _, err := t.Attribute(key, attr.Val, true); err != nil {
			return nil, err
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			child, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			Must(t.Append(child))
		case html.TextNode:
			t.AppendText(c.Data)
		}
	}
	return t, nil
}
