package htmlgen

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Errors reported by the construction API and the renderers. All of them
// signal misuse at the offending call; none are transient.
var (
	ErrInvalidAttributeName = errors.New("invalid attribute name")
	ErrInvalidPropertyName  = errors.New("invalid property name")
	ErrVoidElement          = errors.New("void element cannot have children")
	ErrCycle                = errors.New("element cannot contain one of its ancestors")
	ErrUnresolvedAmpersand  = errors.New("ampersand selector without a parent rule")
	ErrUnknownNodeKind      = errors.New("unknown node kind")
)

// Node is a node of the element tree: an *Element, a Text leaf or a Sequence.
type Node interface {
	// mustBeInline reports whether the node forces its parent to render all
	// children on a single line.
	mustBeInline() bool
}

// Text is a leaf that renders as escaped character data.
type Text string

func (t Text) mustBeInline() bool { return true }

// Sequence is an ordered list of nodes rendered at the same indentation
// level. It is the usual top-level container for a document fragment.
type Sequence []Node

func (s Sequence) mustBeInline() bool {
	for _, n := range s {
		if n.mustBeInline() {
			return true
		}
	}
	return false
}

// Attribute is a single rendered attribute. Bare attributes render as the
// name only, without a value.
type Attribute struct {
	Key  string
	Val  string
	Bare bool
}

// Element is a tag with attributes and child nodes.
type Element struct {
	Tag string

	attributes []Attribute
	classes    []string
	children   []Node
	parent     *Element
}

func (e *Element) mustBeInline() bool { return false }

// NewElement returns an element with the given tag name and no attributes or
// children.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// voidTags cannot contain children and render without a closing tag.
var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Void reports whether the element renders as a single self-closing tag.
func (e *Element) Void() bool { return voidTags[e.Tag] }

// Characters that end an attribute name in a tag, plus quotes. Names
// containing any of these cannot round-trip through a parser.
const illegalAttrChars = "\t\n\f\r \"'`=<>"

// SetAttribute sets or overwrites the attribute with the given name. The
// position of an overwritten attribute is preserved. Accepted value types are
// string, bool, int and float64; a false bool removes the attribute, a true
// bool makes it a bare attribute. Setting "class" is folded into the class
// list instead.
func (e *Element) SetAttribute(name string, value any) error {
	if name == "" || strings.ContainsAny(name, illegalAttrChars) {
		return fmt.Errorf("%w: %q", ErrInvalidAttributeName, name)
	}
	var val string
	switch v := value.(type) {
	case bool:
		if !v {
			e.removeAttribute(name)
			return nil
		}
		if name == "class" {
			return fmt.Errorf("%w: class cannot be a bare attribute", ErrInvalidAttributeName)
		}
		e.setAttribute(Attribute{Key: name, Bare: true})
		return nil
	case string:
		val = v
	case int:
		val = strconv.Itoa(v)
	case float64:
		val = strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Errorf("attribute %q: unsupported value type %T", name, value)
	}
	if name == "class" {
		e.AddClass(strings.Fields(val)...)
		return nil
	}
	e.setAttribute(Attribute{Key: name, Val: val})
	return nil
}

func (e *Element) setAttribute(a Attribute) {
	for i := range e.attributes {
		if e.attributes[i].Key == a.Key {
			e.attributes[i] = a
			return
		}
	}
	e.attributes = append(e.attributes, a)
}

func (e *Element) removeAttribute(name string) {
	for i := range e.attributes {
		if e.attributes[i].Key == name {
			e.attributes = append(e.attributes[:i], e.attributes[i+1:]...)
			return
		}
	}
}

var dataKeyPattern = regexp.MustCompile(`^[a-z][a-z-]*$`)

// SetData sets the data-* attribute for the given key. The key must match
// [a-z][a-z-]*.
func (e *Element) SetData(key, value string) error {
	if !dataKeyPattern.MatchString(key) {
		return fmt.Errorf("%w: data key %q does not match %s", ErrInvalidAttributeName, key, dataKeyPattern)
	}
	return e.SetAttribute("data-"+key, value)
}

// AddClass adds the given class names, skipping names the element already
// has. Classes render as a single class attribute before all others.
func (e *Element) AddClass(names ...string) {
	for _, name := range names {
		if name == "" {
			continue
		}
		known := false
		for _, c := range e.classes {
			if c == name {
				known = true
				break
			}
		}
		if !known {
			e.classes = append(e.classes, name)
		}
	}
}

// Append adds child nodes. It fails on void elements and when a child is the
// element itself or one of its ancestors.
func (e *Element) Append(children ...Node) error {
	if len(children) == 0 {
		return nil
	}
	if e.Void() {
		return fmt.Errorf("%w: <%s>", ErrVoidElement, e.Tag)
	}
	for _, child := range children {
		if el, ok := child.(*Element); ok {
			for a := e; a != nil; a = a.parent {
				if a == el {
					return fmt.Errorf("%w: <%s>", ErrCycle, el.Tag)
				}
			}
			el.parent = e
		}
		e.children = append(e.children, child)
	}
	return nil
}

// Attributes returns a copy of the attribute list in render order, the class
// attribute included.
func (e *Element) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(e.attributes)+1)
	if len(e.classes) > 0 {
		attrs = append(attrs, Attribute{Key: "class", Val: strings.Join(e.classes, " ")})
	}
	return append(attrs, e.attributes...)
}

// Children returns a copy of the child list.
func (e *Element) Children() []Node {
	return append([]Node(nil), e.children...)
}

// El builds an element with the given children. It is the fluent companion of
// NewElement and Append and panics on misuse (children on a void tag).
func El(tag string, children ...Node) *Element {
	e := NewElement(tag)
	return e.Containing(children...)
}

// Containing appends children and returns the element for chaining. It panics
// where Append would fail.
func (e *Element) Containing(children ...Node) *Element {
	if err := e.Append(children...); err != nil {
		panic(err)
	}
	return e
}

// WithAttr sets an attribute and returns the element for chaining. It panics
// where SetAttribute would fail.
func (e *Element) WithAttr(name string, value any) *Element {
	if err := e.SetAttribute(name, value); err != nil {
		panic(err)
	}
	return e
}

// WithClass adds class names and returns the element for chaining.
func (e *Element) WithClass(names ...string) *Element {
	e.AddClass(names...)
	return e
}

// WithData sets a data-* attribute and returns the element for chaining. It
// panics where SetData would fail.
func (e *Element) WithData(key, value string) *Element {
	if err := e.SetData(key, value); err != nil {
		panic(err)
	}
	return e
}
