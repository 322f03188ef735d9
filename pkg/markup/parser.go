package markup

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FragmentParser parses markup fragments as the content of a <template>
// element, which accepts table parts (td, tr, caption, ...) as well as flow
// content. Tree construction is delegated to html.ParseFragment; the errors
// the tree builder silently recovers from are reported by a separate
// tokenizer pass (see Check).
type FragmentParser struct{}

// NewParser creates a new fragment parser
func NewParser() *FragmentParser {
	return &FragmentParser{}
}

// Parse parses a markup fragment
func (p *FragmentParser) Parse(markup string) (*Document, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Template.String(),
		DataAtom: atom.Template,
	}

	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse markup")
	}

	return &Document{
		Nodes:  nodes,
		Errors: Check(markup),
	}, nil
}

// ParseReader reads r to the end and parses its content as a fragment
func (p *FragmentParser) ParseReader(r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read markup")
	}
	return p.Parse(string(content))
}

var _ Parser = (*FragmentParser)(nil)

// voidElements never have an end tag
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "keygen": true, "link": true,
	"meta": true, "param": true, "source": true, "track": true, "wbr": true,
}

// IsVoidElement reports whether the HTML element named name never has an
// end tag
func IsVoidElement(name string) bool {
	return voidElements[strings.ToLower(name)]
}

// optionalEndTags may be closed implicitly by the tree builder
var optionalEndTags = map[string]bool{
	"html": true, "head": true, "body": true, "p": true, "li": true,
	"dt": true, "dd": true, "option": true, "optgroup": true, "rb": true,
	"rt": true, "rtc": true, "rp": true, "thead": true, "tbody": true,
	"tfoot": true, "tr": true, "td": true, "th": true, "colgroup": true,
	"caption": true,
}

// foreignElements switch the tokenizer to XML-like self-closing rules
var foreignElements = map[string]bool{
	"svg": true, "math": true,
}

type openElement struct {
	name   string
	offset int
	raw    string
}

// checker tracks the open elements of a token stream
type checker struct {
	src          string
	allowDoctype bool
	offset       int
	open         []openElement
	errors       []ParseError
}

// Check scans a markup fragment and returns the parse errors found in it,
// in source order of detection.
func Check(markup string) []ParseError {
	return check(markup, false)
}

func check(markup string, allowDoctype bool) []ParseError {
	c := &checker{src: markup, allowDoctype: allowDoctype}
	z := html.NewTokenizer(strings.NewReader(markup))

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			c.finish()
			return c.errors
		}

		// Raw is only valid until Token is called
		raw := string(z.Raw())
		c.token(tt, z.Token(), raw)
		c.offset += len(raw)
	}
}

// token inspects a single token
func (c *checker) token(tt html.TokenType, tok html.Token, raw string) {
	switch tt {
	case html.DoctypeToken:
		if !c.allowDoctype {
			c.report(CodeUnexpectedDoctype, c.offset, raw, "doctype is not allowed in a fragment")
		}

	case html.CommentToken:
		closed := strings.HasSuffix(raw, ">")
		if strings.HasPrefix(raw, "<!--") {
			closed = len(raw) >= len("<!---->") &&
				(strings.HasSuffix(raw, "-->") || strings.HasSuffix(raw, "--!>"))
		}
		if !closed {
			c.report(CodeEOFInComment, c.offset, raw, "comment is not closed")
		}

	case html.StartTagToken:
		c.attributes(tok, raw)
		if voidElements[tok.Data] {
			return
		}
		c.push(tok.Data, raw)

	case html.SelfClosingTagToken:
		c.attributes(tok, raw)
		if voidElements[tok.Data] || c.inForeignContent() || foreignElements[tok.Data] {
			return
		}
		c.report(CodeNonVoidSelfClosing, c.offset, raw, "<"+tok.Data+"> cannot be self-closed")
		c.push(tok.Data, raw)

	case html.EndTagToken:
		if voidElements[tok.Data] {
			c.report(CodeEndTagForVoidElement, c.offset, raw, "<"+tok.Data+"> is a void element")
			return
		}
		c.pop(tok.Data, raw)
	}
}

// attributes reports duplicated attribute names
func (c *checker) attributes(tok html.Token, raw string) {
	seen := make(map[string]bool, len(tok.Attr))
	for _, attr := range tok.Attr {
		key := attr.Key
		if attr.Namespace != "" {
			key = attr.Namespace + ":" + key
		}
		if seen[key] {
			c.report(CodeDuplicateAttribute, c.offset, raw, "attribute "+key+" is repeated")
			continue
		}
		seen[key] = true
	}
}

func (c *checker) push(name, raw string) {
	c.open = append(c.open, openElement{name: name, offset: c.offset, raw: raw})
}

// pop closes the innermost open element named name, reporting every
// element closed implicitly on the way
func (c *checker) pop(name, raw string) {
	i := len(c.open) - 1
	for ; i >= 0; i-- {
		if c.open[i].name == name {
			break
		}
	}
	if i < 0 {
		c.report(CodeUnexpectedEndTag, c.offset, raw, "no open <"+name+"> element")
		return
	}

	for _, e := range c.open[i+1:] {
		if optionalEndTags[e.name] {
			continue
		}
		c.report(CodeMissingEndTag, e.offset, e.raw, "<"+e.name+"> is not closed before </"+name+">")
	}
	c.open = c.open[:i]
}

// finish reports what is left open at the end of input
func (c *checker) finish() {
	if c.offset < len(c.src) {
		c.report(CodeEOFInTag, c.offset, c.src[c.offset:], "input ends inside a tag")
	}
	for _, e := range c.open {
		if optionalEndTags[e.name] {
			continue
		}
		c.report(CodeEOFBeforeEndTag, e.offset, e.raw, "<"+e.name+"> is not closed")
	}
}

func (c *checker) inForeignContent() bool {
	for _, e := range c.open {
		if foreignElements[e.name] {
			return true
		}
	}
	return false
}

func (c *checker) report(code string, offset int, source, reason string) {
	line, column := position(c.src, offset)
	c.errors = append(c.errors, ParseError{
		Code:   code,
		Offset: offset,
		Line:   line,
		Column: column,
		Source: truncate(source),
		Reason: reason,
	})
}

// position converts a byte offset into a 1-based line and column
func position(src string, offset int) (int, int) {
	before := src[:offset]
	line := strings.Count(before, "\n") + 1
	column := offset - strings.LastIndex(before, "\n")
	return line, column
}

func truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxSourceLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxSourceLength]) + "..."
}
