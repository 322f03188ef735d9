package tag

import (
	"strings"

	"github.com/pkg/errors"

	"tagtree/internal/css"
)

const (
	styleAttribute = "style"
	widthProperty  = "width"
	heightProperty = "height"
)

type (
	// Styles is the ordered property/value list of a style attribute.
	Styles = css.Declarations
	// StyleRule is a single property/value pair of a style attribute.
	StyleRule = css.Declaration
)

// Styles parses the style attribute. A missing attribute yields an empty
// list; rules without a ":" yield a *StyleError.
func (t *Tag) Styles() (Styles, error) {
	value, ok := t.Attr(styleAttribute)
	if !ok {
		return Styles{}, nil
	}

	styles, err := css.ParseInlineStyle(value)
	if err != nil {
		var malformed *css.MalformedError
		if errors.As(err, &malformed) {
			return nil, &StyleError{Rules: malformed.Rules}
		}
		return nil, err
	}
	return styles, nil
}

// SetStyles replaces the style attribute. Properties and values are
// trimmed. An empty list removes the attribute.
func (t *Tag) SetStyles(styles Styles) (*Tag, error) {
	trimmed := make(Styles, 0, len(styles))
	for _, rule := range styles {
		if err := css.ValidateDeclaration(rule.Property, rule.Value); err != nil {
			return t, errors.Wrap(ErrInvalidArgument, err.Error())
		}
		trimmed = trimmed.Set(strings.TrimSpace(rule.Property), strings.TrimSpace(rule.Value), true)
	}
	if len(trimmed) == 0 {
		return t.RemoveAttribute(styleAttribute), nil
	}
	t.attributes.set(styleAttribute, trimmed.String())
	return t, nil
}

// Style sets one property of the style attribute. When replace is false an
// existing property is left untouched.
func (t *Tag) Style(property, value string, replace bool) (*Tag, error) {
	if err := css.ValidateDeclaration(property, value); err != nil {
		return t, errors.Wrap(ErrInvalidArgument, err.Error())
	}
	styles, err := t.Styles()
	if err != nil {
		return t, err
	}
	return t.SetStyles(styles.Set(strings.TrimSpace(property), strings.TrimSpace(value), replace))
}

// RemoveStyle removes one property of the style attribute
func (t *Tag) RemoveStyle(property string) (*Tag, error) {
	styles, err := t.Styles()
	if err != nil {
		return t, err
	}
	return t.SetStyles(styles.Delete(strings.TrimSpace(property)))
}

// SetWidth sets the width style property
func (t *Tag) SetWidth(value string) (*Tag, error) {
	return t.Style(widthProperty, value, true)
}

// SetHeight sets the height style property
func (t *Tag) SetHeight(value string) (*Tag, error) {
	return t.Style(heightProperty, value, true)
}
