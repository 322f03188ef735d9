package tag

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"tagtree/pkg/markup"
)

// Errors returned by Tag operations. Callers match them with errors.Is.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrOutOfRange      = errors.New("index out of range")
	ErrInvalidState    = errors.New("invalid state")
	ErrValidation      = errors.New("validation failed")
	ErrSyntax          = errors.New("syntax error")
	ErrShape           = errors.New("markup must contain exactly one root element")
)

// SyntaxError aggregates every error reported by the markup parser
type SyntaxError struct {
	Errors []markup.ParseError
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, pe := range e.Errors {
		msgs[i] = pe.Error()
	}
	return fmt.Sprintf("%s: %d parse error(s): %s", ErrSyntax, len(e.Errors), strings.Join(msgs, "; "))
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// StyleError lists the rules of a style attribute that do not split into
// exactly one property and one value
type StyleError struct {
	Rules []string
}

func (e *StyleError) Error() string {
	quoted := make([]string, len(e.Rules))
	for i, rule := range e.Rules {
		quoted[i] = fmt.Sprintf("%q", rule)
	}
	return fmt.Sprintf("%s: malformed style rules %s", ErrValidation, strings.Join(quoted, ", "))
}

func (e *StyleError) Unwrap() error {
	return ErrValidation
}
