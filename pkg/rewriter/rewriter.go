// Package rewriter applies a configured set of edits to HTML fragments: it
// parses the input into a tag tree, edits the root or the tags matching a
// selector, and renders the result.
package rewriter

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"tagtree/internal/config"
	"tagtree/pkg/markup"
	"tagtree/pkg/tag"
)

// Rewriter is the batch editing engine
type Rewriter struct {
	config config.Config
	parser markup.Parser
	logger logrus.FieldLogger
}

// Option customizes a Rewriter
type Option func(*Rewriter)

// WithLogger sets the logger used for processing steps
func WithLogger(logger logrus.FieldLogger) Option {
	return func(r *Rewriter) {
		r.logger = logger
	}
}

// WithParser replaces the markup parser chosen from the configuration
func WithParser(parser markup.Parser) Option {
	return func(r *Rewriter) {
		r.parser = parser
	}
}

// New creates a rewriter with the given configuration
func New(cfg config.Config, opts ...Option) *Rewriter {
	r := &Rewriter{
		config: cfg,
		logger: logrus.StandardLogger(),
	}
	if cfg.Document {
		r.parser = markup.NewDocumentParser()
	} else {
		r.parser = markup.NewParser()
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewWithDefaults creates a rewriter that re-renders its input unchanged
func NewWithDefaults(opts ...Option) *Rewriter {
	return New(config.Default(), opts...)
}

// Result contains the outcome of a rewrite
type Result struct {
	HTML    string // rendered output
	Matches int    // tags the edits were applied to
	Hash    uint64 // structural hash of the first output tag
	Stats   Stats
}

// Stats contains counters of the rewrite
type Stats struct {
	Elements       int // tags in the parsed tree
	AttributesSet  int
	DataSet        int
	ClassesAdded   int
	ClassesRemoved int
	StylesSet      int
	StylesRemoved  int
	ProcessingTime time.Duration
}

// Comparison is the outcome of comparing two fragments
type Comparison struct {
	Equal bool
	HashA uint64
	HashB uint64
}

// parse turns input into a tree, failing on syntax and shape errors
func (r *Rewriter) parse(input string) (*tag.Tag, error) {
	doc, err := r.parser.Parse(input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse markup")
	}
	root, err := tag.ParseDocument(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build tree")
	}
	return root, nil
}

// Rewrite parses input, applies the configured edits and renders the result
func (r *Rewriter) Rewrite(input string) (*Result, error) {
	start := time.Now()

	if err := r.config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	mode, err := tag.ParseRenderMode(r.config.Mode)
	if err != nil {
		return nil, err
	}

	root, err := r.parse(input)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	result.Stats.Elements = 1 + len(root.Find(nil))

	targets := []*tag.Tag{root}
	if r.config.Select != "" {
		targets, err = root.Select(r.config.Select)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to select %q", r.config.Select)
		}
		if len(targets) == 0 {
			r.logger.WithField("selector", r.config.Select).Warn("selector matched no tags")
		}
	}
	result.Matches = len(targets)

	for _, target := range targets {
		if err := r.apply(target, &result.Stats); err != nil {
			return nil, errors.Wrapf(err, "failed to edit <%s>", target.Name())
		}
	}

	output := []*tag.Tag{root}
	if r.config.Extract {
		output = targets
	}
	rendered := make([]string, 0, len(output))
	for _, t := range output {
		s, err := t.Render(mode)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to render <%s>", t.Name())
		}
		rendered = append(rendered, s)
	}
	result.HTML = strings.Join(rendered, r.config.Separator)
	if len(output) > 0 {
		result.Hash = output[0].Hash()
	}

	result.Stats.ProcessingTime = time.Since(start)
	r.logger.WithFields(logrus.Fields{
		"root":     root.Name(),
		"elements": result.Stats.Elements,
		"matches":  result.Matches,
		"mode":     mode.String(),
	}).Debug("rewrite complete")

	return result, nil
}

// RewriteString is a convenience method that returns only the rendered output
func (r *Rewriter) RewriteString(input string) (string, error) {
	result, err := r.Rewrite(input)
	if err != nil {
		return "", err
	}
	return result.HTML, nil
}

// apply runs the configured edits on t in a fixed order: attributes, data
// attributes, added classes, removed classes, styles, removed styles
func (r *Rewriter) apply(t *tag.Tag, stats *Stats) error {
	replace := r.config.ReplaceExisting

	for _, attr := range r.config.Attributes {
		name, value, err := config.SplitPair(attr, "=")
		if err != nil {
			return err
		}
		if _, err := t.Attribute(name, value, replace); err != nil {
			return err
		}
		stats.AttributesSet++
	}

	for _, data := range r.config.Data {
		key, value, err := config.SplitPair(data, "=")
		if err != nil {
			return err
		}
		if _, err := t.Data(key, value, replace); err != nil {
			return err
		}
		stats.DataSet++
	}

	for _, classes := range r.config.AddClasses {
		before := len(t.Classes())
		t.AddClass(classes)
		stats.ClassesAdded += len(t.Classes()) - before
	}

	for _, classes := range r.config.RemoveClasses {
		before := len(t.Classes())
		t.RemoveClass(classes)
		stats.ClassesRemoved += before - len(t.Classes())
	}

	for _, style := range r.config.Styles {
		property, value, err := config.SplitPair(style, ":")
		if err != nil {
			return err
		}
		if _, err := t.Style(property, strings.TrimSpace(value), replace); err != nil {
			return err
		}
		stats.StylesSet++
	}

	for _, property := range r.config.RemoveStyles {
		styles, err := t.Styles()
		if err != nil {
			return err
		}
		if !styles.Has(property) {
			continue
		}
		if _, err := t.RemoveStyle(property); err != nil {
			return err
		}
		stats.StylesRemoved++
	}

	r.logger.WithFields(logrus.Fields{
		"tag":     t.Name(),
		"classes": len(t.Classes()),
	}).Debug("edited tag")
	return nil
}

// Compare parses both fragments and reports whether they are structurally
// equal
func (r *Rewriter) Compare(a, b string) (*Comparison, error) {
	left, err := r.parse(a)
	if err != nil {
		return nil, errors.Wrap(err, "first fragment")
	}
	right, err := r.parse(b)
	if err != nil {
		return nil, errors.Wrap(err, "second fragment")
	}

	cmp := &Comparison{
		Equal: left.Equal(right),
		HashA: left.Hash(),
		HashB: right.Hash(),
	}
	r.logger.WithField("equal", cmp.Equal).Debug("compared fragments")
	return cmp, nil
}

// Validate reports the parse errors found in input. A fragment free of
// syntax errors that still does not hold a single root element is reported
// through the returned error.
func (r *Rewriter) Validate(input string) ([]markup.ParseError, error) {
	doc, err := r.parser.Parse(input)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse markup")
	}
	if doc.HasErrors() {
		return doc.Errors, nil
	}
	if _, err := tag.ParseDocument(doc); err != nil {
		return nil, err
	}
	return nil, nil
}

// Rewrite is a convenience function that rewrites input with cfg
func Rewrite(input string, cfg config.Config) (string, error) {
	return New(cfg).RewriteString(input)
}
