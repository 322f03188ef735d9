package css

import (
	"fmt"
	"strings"
)

const (
	// RuleSeparator separates declarations inside a style attribute
	RuleSeparator = ";"
	// PropertySeparator separates a property from its value
	PropertySeparator = ":"
)

// MalformedError reports the rules of an inline style that do not split into
// exactly one property and one value
type MalformedError struct {
	Rules []string
}

func (e *MalformedError) Error() string {
	quoted := make([]string, len(e.Rules))
	for i, rule := range e.Rules {
		quoted[i] = fmt.Sprintf("%q", rule)
	}
	return fmt.Sprintf("malformed style rules: %s", strings.Join(quoted, ", "))
}

// ParseInlineStyle parses a style attribute value into declarations.
//
// Rules are split on ";" and each rule on its first ":", so values may
// contain ":" (for example url(http://...)). Empty rules are skipped and
// surrounding whitespace is trimmed. Every rule without a ":" or with an
// empty property is collected into a single *MalformedError.
func ParseInlineStyle(styleAttr string) (Declarations, error) {
	declarations := Declarations{}
	var malformed []string

	for _, rule := range strings.Split(styleAttr, RuleSeparator) {
		if strings.TrimSpace(rule) == "" {
			continue
		}

		property, value, found := strings.Cut(rule, PropertySeparator)
		property = strings.TrimSpace(property)
		if !found || property == "" {
			malformed = append(malformed, rule)
			continue
		}

		declarations = declarations.Set(property, strings.TrimSpace(value), true)
	}

	if len(malformed) > 0 {
		return nil, &MalformedError{Rules: malformed}
	}

	return declarations, nil
}

// ValidateDeclaration checks that a property/value pair survives a
// format/parse round trip
func ValidateDeclaration(property, value string) error {
	if strings.TrimSpace(property) == "" {
		return fmt.Errorf("empty style property")
	}
	if strings.Contains(property, RuleSeparator) || strings.Contains(property, PropertySeparator) {
		return fmt.Errorf("style property %q contains a separator", property)
	}
	if strings.Contains(value, RuleSeparator) {
		return fmt.Errorf("style value %q for %q contains %q", value, property, RuleSeparator)
	}
	return nil
}
