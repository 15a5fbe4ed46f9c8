package htmlgen

import (
	"go.uber.org/zap"
)

// Registry collects named component styles and assembles them into one
// stylesheet. Each style is CSS text registered under a class name; the rule
// selector becomes ".name" and nested blocks inside the text may reference it
// with the ampersand placeholder.
type Registry struct {
	log    *zap.Logger
	names  []string
	styles map[string]*Rule
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for registration warnings. The default
// discards them.
func WithLogger(log *zap.Logger) RegistryOption {
	return func(r *Registry) { r.log = log }
}

// NewRegistry returns an empty style registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		log:    zap.NewNop(),
		styles: make(map[string]*Rule),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddStyle registers CSS text under the class name. Registering the same name
// twice logs a warning and replaces the earlier style.
func (r *Registry) AddStyle(name, css string) error {
	rule, err := ParseRule("."+name, css)
	if err != nil {
		return err
	}
	if _, ok := r.styles[name]; ok {
		r.log.Warn("duplicate style name", zap.String("name", name))
	} else {
		r.names = append(r.names, name)
	}
	r.styles[name] = rule
	return nil
}

// Styled registers the CSS under the class name and wraps the component
// constructor so that every element it returns carries the class. An empty
// css string registers no style, only the class. Styled panics on invalid
// CSS; style registration happens once at program setup and a broken style is
// a programming error.
func (r *Registry) Styled(name, css string, fn func(children ...Node) *Element) func(children ...Node) *Element {
	if css != "" {
		if err := r.AddStyle(name, css); err != nil {
			panic(err)
		}
	}
	return func(children ...Node) *Element {
		return fn(children...).WithClass(name)
	}
}

// Stylesheet returns the registered styles as one stylesheet, in registration
// order.
func (r *Registry) Stylesheet() *Stylesheet {
	s := NewStylesheet()
	for _, name := range r.names {
		s.Append(r.styles[name])
	}
	return s
}

// RenderStylesheet renders the registered styles as flat CSS text.
func (r *Registry) RenderStylesheet() (string, error) {
	return r.Stylesheet().Flat()
}

// RenderStylesheetNested renders the registered styles with native CSS
// nesting syntax.
func (r *Registry) RenderStylesheetNested() (string, error) {
	return r.Stylesheet().Nested()
}
