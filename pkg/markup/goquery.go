package markup

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// DocumentParser parses complete HTML documents with goquery. The single
// top-level node of the result is the <html> element; a doctype is allowed.
type DocumentParser struct{}

// NewDocumentParser creates a new goquery-based document parser
func NewDocumentParser() *DocumentParser {
	return &DocumentParser{}
}

// Parse parses an HTML document
func (p *DocumentParser) Parse(markup string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse HTML document")
	}

	d := FromDocument(doc)
	d.Errors = check(markup, true)
	return d, nil
}

// ParseReader reads r to the end and parses its content as a document
func (p *DocumentParser) ParseReader(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read HTML document")
	}
	return p.Parse(string(content))
}

var _ Parser = (*DocumentParser)(nil)

// FromDocument wraps an already parsed goquery document. The document node
// itself is skipped; its children become the top-level nodes.
func FromDocument(doc *goquery.Document) *Document {
	d := &Document{}
	for _, root := range doc.Nodes {
		if root.Type != html.DocumentNode {
			d.Nodes = append(d.Nodes, root)
			continue
		}
		for c := root.FirstChild; c != nil; c = c.NextSibling {
			d.Nodes = append(d.Nodes, c)
		}
	}
	return d
}

// FromSelection wraps the nodes of a goquery selection. No parse errors are
// available for an already parsed tree.
func FromSelection(sel *goquery.Selection) *Document {
	nodes := make([]*html.Node, len(sel.Nodes))
	copy(nodes, sel.Nodes)
	return &Document{Nodes: nodes}
}
