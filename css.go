package htmlgen

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"go.uber.org/multierr"
)

// ampersand is the placeholder that stands for the enclosing resolved
// selector in a nested rule. It is a plain string convention, recognized by
// the flattener.
const ampersand = "&"

// Declaration is a single property: value pair.
type Declaration struct {
	Property string
	Value    string
}

// Rule is a CSS rule with a selector, ordered declarations and nested child
// rules. A child selector may reference the parent selector with the
// ampersand placeholder.
type Rule struct {
	Selector string

	declarations []Declaration
	children     []*Rule
}

// NewRule returns a root rule for the given selector. Root selectors must not
// contain the ampersand placeholder since there is no parent to resolve it
// against.
func NewRule(selector string) (*Rule, error) {
	if strings.Contains(selector, ampersand) {
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedAmpersand, selector)
	}
	return &Rule{Selector: strings.TrimSpace(selector)}, nil
}

// SetDeclaration sets or overwrites the declaration for the property. The
// position of an overwritten declaration is preserved. Values are emitted
// verbatim; only the property name is validated.
func (r *Rule) SetDeclaration(property, value string) error {
	property = strings.TrimSpace(property)
	if property == "" || strings.ContainsAny(property, "{};") {
		return fmt.Errorf("%w: %q", ErrInvalidPropertyName, property)
	}
	value = strings.TrimSpace(value)
	for i := range r.declarations {
		if r.declarations[i].Property == property {
			r.declarations[i].Value = value
			return nil
		}
	}
	r.declarations = append(r.declarations, Declaration{Property: property, Value: value})
	return nil
}

// AppendRule creates a rule nested under r and returns it. The selector may
// reference r's resolved selector with the ampersand placeholder.
func (r *Rule) AppendRule(selector string) *Rule {
	child := &Rule{Selector: strings.TrimSpace(selector)}
	r.children = append(r.children, child)
	return child
}

// Declarations returns a copy of the declarations in insertion order.
func (r *Rule) Declarations() []Declaration {
	return append([]Declaration(nil), r.declarations...)
}

// Children returns a copy of the nested rules.
func (r *Rule) Children() []*Rule {
	return append([]*Rule(nil), r.children...)
}

// resolveSelector combines a parent's resolved selector with a nested
// selector. Every ampersand is replaced by the parent selector; a selector
// without one is attached with the descendant combinator.
func resolveSelector(parent, selector string) (string, error) {
	if strings.Contains(selector, ampersand) {
		if parent == "" {
			return "", fmt.Errorf("%w: %q", ErrUnresolvedAmpersand, selector)
		}
		return strings.ReplaceAll(selector, ampersand, parent), nil
	}
	if parent == "" {
		return selector, nil
	}
	return parent + " " + selector, nil
}

// Stylesheet is an ordered list of root rules.
type Stylesheet struct {
	Rules []*Rule
}

// NewStylesheet returns a stylesheet with the given root rules.
func NewStylesheet(rules ...*Rule) *Stylesheet {
	return &Stylesheet{Rules: rules}
}

// Append adds root rules to the stylesheet.
func (s *Stylesheet) Append(rules ...*Rule) {
	s.Rules = append(s.Rules, rules...)
}

// Flat renders the stylesheet as a flat sequence of standalone rule blocks.
// Rules are emitted in pre-order, parents before their nested rules, with
// each nested selector resolved against its ancestor chain. Rules without
// declarations are skipped but still scope their descendants.
func (s *Stylesheet) Flat() (string, error) {
	var blocks []string
	for _, r := range s.Rules {
		if err := r.flatten("", &blocks); err != nil {
			return "", err
		}
	}
	return strings.Join(blocks, "\n"), nil
}

// Flat renders the rule and its nested rules as flat rule blocks.
func (r *Rule) Flat() (string, error) {
	var blocks []string
	if err := r.flatten("", &blocks); err != nil {
		return "", err
	}
	return strings.Join(blocks, "\n"), nil
}

func (r *Rule) flatten(parent string, blocks *[]string) error {
	resolved, err := resolveSelector(parent, r.Selector)
	if err != nil {
		return err
	}
	if len(r.declarations) > 0 {
		*blocks = append(*blocks, r.block(resolved))
	}
	for _, c := range r.children {
		if err := c.flatten(resolved, blocks); err != nil {
			return err
		}
	}
	return nil
}

func (r *Rule) block(selector string) string {
	lines := make([]string, 0, len(r.declarations)+2)
	lines = append(lines, selector+" {")
	for _, d := range r.declarations {
		lines = append(lines, indentStep+d.Property+": "+d.Value+";")
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// Nested renders the stylesheet with native CSS nesting syntax: child rule
// blocks appear inside their parent block and ampersand placeholders are kept
// literal.
func (s *Stylesheet) Nested() (string, error) {
	parts := make([]string, 0, len(s.Rules))
	for _, r := range s.Rules {
		text, err := r.Nested()
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n"), nil
}

// Nested renders the rule with native CSS nesting syntax.
func (r *Rule) Nested() (string, error) {
	if strings.Contains(r.Selector, ampersand) {
		return "", fmt.Errorf("%w: %q", ErrUnresolvedAmpersand, r.Selector)
	}
	return r.nested(), nil
}

func (r *Rule) nested() string {
	if len(r.declarations) == 0 && len(r.children) == 0 {
		return r.Selector + " {}"
	}
	lines := []string{r.Selector + " {"}
	for _, d := range r.declarations {
		lines = append(lines, indentStep+d.Property+": "+d.Value+";")
	}
	for _, c := range r.children {
		for _, line := range strings.Split(c.nested(), "\n") {
			lines = append(lines, indentStep+line)
		}
	}
	lines = append(lines, "}")
	return strings.Join(lines, "\n")
}

// Check resolves every selector in the stylesheet and compiles it as a CSS
// selector group. It reports all invalid selectors at once.
func (s *Stylesheet) Check() error {
	var err error
	for _, r := range s.Rules {
		err = multierr.Append(err, r.check(""))
	}
	return err
}

func (r *Rule) check(parent string) error {
	resolved, rerr := resolveSelector(parent, r.Selector)
	if rerr != nil {
		return rerr
	}
	var err error
	if _, cerr := cascadia.ParseGroup(resolved); cerr != nil {
		err = fmt.Errorf("selector %q: %v", resolved, cerr)
	}
	for _, c := range r.children {
		err = multierr.Append(err, c.check(resolved))
	}
	return err
}
