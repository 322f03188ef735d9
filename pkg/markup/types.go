package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Error codes reported by the parser. Names follow the WHATWG parse error
// vocabulary where one exists.
const (
	CodeEOFInTag             = "eof-in-tag"
	CodeEOFInComment         = "eof-in-comment"
	CodeDuplicateAttribute   = "duplicate-attribute"
	CodeNonVoidSelfClosing   = "non-void-html-element-start-tag-with-trailing-solidus"
	CodeUnexpectedEndTag     = "unexpected-end-tag"
	CodeEndTagForVoidElement = "end-tag-for-void-element"
	CodeMissingEndTag        = "missing-end-tag"
	CodeEOFBeforeEndTag      = "eof-before-end-tag"
	CodeUnexpectedDoctype    = "unexpected-doctype"
	maxSourceLength          = 40
)

// ParseError describes one problem found while parsing markup
type ParseError struct {
	Code   string // machine readable error code
	Offset int    // byte offset of the offending token
	Line   int    // 1-based line of the offending token
	Column int    // 1-based column (in bytes) of the offending token
	Source string // offending source text, possibly truncated
	Reason string // human readable explanation
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d %s: %s (%q)", e.Line, e.Column, e.Code, e.Reason, e.Source)
}

// Document is a parsed markup fragment: its top-level nodes, in source
// order, and every error reported while parsing it
type Document struct {
	Nodes  []*html.Node
	Errors []ParseError
}

// HasErrors reports whether the parser reported any error
func (d *Document) HasErrors() bool {
	return len(d.Errors) > 0
}

// Elements returns the top-level element nodes
func (d *Document) Elements() []*html.Node {
	var elements []*html.Node
	for _, n := range d.Nodes {
		if n.Type == html.ElementNode {
			elements = append(elements, n)
		}
	}
	return elements
}

// Parser turns markup text into a Document
type Parser interface {
	Parse(markup string) (*Document, error)
	ParseReader(r io.Reader) (*Document, error)
}
