package tag

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"tagtree/pkg/markup"
)

// RenderMode selects which part of a tag's markup is rendered
type RenderMode int

const (
	// Normal renders the start tag, the contents and the end tag. Void
	// elements without contents (<br>, <img>...) have no end tag.
	Normal RenderMode = iota
	// StartTagOnly renders only the start tag.
	StartTagOnly
	// EndTagOnly renders only the end tag.
	EndTagOnly
	// SelfClosing renders a self-closed tag; the tag must have no contents.
	SelfClosing
)

var renderModeNames = map[RenderMode]string{
	Normal:       "normal",
	StartTagOnly: "start",
	EndTagOnly:   "end",
	SelfClosing:  "self-closing",
}

func (m RenderMode) String() string {
	if name, ok := renderModeNames[m]; ok {
		return name
	}
	return "unknown"
}

// ParseRenderMode returns the mode named s ("normal", "start", "end" or
// "self-closing")
func ParseRenderMode(s string) (RenderMode, error) {
	for mode, name := range renderModeNames {
		if name == s {
			return mode, nil
		}
	}
	return Normal, errors.Wrapf(ErrInvalidArgument, "unknown render mode %q", s)
}

// Render renders t in the given mode. Contents are only rendered in Normal
// mode.
func (t *Tag) Render(mode RenderMode) (string, error) {
	var sb strings.Builder
	switch mode {
	case Normal:
		t.render(&sb)
	case StartTagOnly:
		t.writeStartTag(&sb, false)
	case EndTagOnly:
		t.writeEndTag(&sb)
	case SelfClosing:
		if len(t.contents) > 0 {
			return "", errors.Wrapf(ErrInvalidState, "cannot self-close <%s> with %d content element(s)", t.name, len(t.contents))
		}
		t.writeStartTag(&sb, true)
	default:
		return "", errors.Wrapf(ErrInvalidArgument, "unknown render mode %d", mode)
	}
	return sb.String(), nil
}

// String renders t in Normal mode
func (t *Tag) String() string {
	var sb strings.Builder
	t.render(&sb)
	return sb.String()
}

// WriteTo writes the Normal rendering of t to w
func (t *Tag) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.String())
	return int64(n), err
}

// render writes the start tag, the contents and the end tag. A void element
// without contents is written as a start tag alone, since an end tag for it
// is a parse error.
func (t *Tag) render(sb *strings.Builder) {
	t.writeStartTag(sb, false)
	if len(t.contents) == 0 && markup.IsVoidElement(t.name) {
		return
	}
	for _, e := range t.contents {
		switch e := e.(type) {
		case *Tag:
			e.render(sb)
		case *Text:
			sb.WriteString(e.String())
		}
	}
	t.writeEndTag(sb)
}

func (t *Tag) writeStartTag(sb *strings.Builder, selfClosing bool) {
	sb.WriteByte('<')
	sb.WriteString(t.name)
	for _, attr := range t.attributes {
		sb.WriteByte(' ')
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(html.EscapeString(attr.Val))
		sb.WriteByte('"')
	}
	if selfClosing {
		sb.WriteString(" />")
		return
	}
	sb.WriteByte('>')
}

func (t *Tag) writeEndTag(sb *strings.Builder) {
	sb.WriteString("</")
	sb.WriteString(t.name)
	sb.WriteByte('>')
}
