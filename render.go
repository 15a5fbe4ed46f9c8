package htmlgen

import (
	"fmt"
	"strings"
)

// indentStep is one level of indentation in both renderers.
const indentStep = "  "

// attrEscaper escapes attribute values for a double-quoted context.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// textEscaper escapes character data. Quotes stay literal outside attribute
// values.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// noIndentTags render their content without any added indentation because
// their whitespace is significant.
var noIndentTags = map[string]bool{
	"pre": true,
}

// Render serializes the node tree as indented HTML text. Rendering does not
// mutate the tree, so the same tree can be rendered repeatedly. On error no
// text is returned.
func Render(n Node) (string, error) {
	return RenderIndent(n, 0)
}

// RenderIndent renders the node indented by level steps of two spaces, for
// splicing a subtree into surrounding output.
func RenderIndent(n Node, level int) (string, error) {
	if level < 0 {
		level = 0
	}
	var sb strings.Builder
	if err := renderNode(&sb, n, strings.Repeat(indentStep, level), false); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func renderNode(sb *strings.Builder, n Node, indent string, inline bool) error {
	switch t := n.(type) {
	case Text:
		sb.WriteString(indent)
		sb.WriteString(textEscaper.Replace(string(t)))
		return nil
	case *Element:
		return renderElement(sb, t, indent, inline)
	case Sequence:
		return renderSequence(sb, t, indent, inline)
	case nil:
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownNodeKind, n)
	}
}

func renderSequence(sb *strings.Builder, seq Sequence, indent string, inline bool) error {
	for i, child := range seq {
		if i > 0 && !inline {
			sb.WriteString("\n")
		}
		if err := renderNode(sb, child, indent, inline); err != nil {
			return err
		}
	}
	return nil
}

func renderElement(sb *strings.Builder, e *Element, indent string, inline bool) error {
	if noIndentTags[e.Tag] {
		indent = ""
		inline = true
	}
	attrs := renderAttributes(e)
	if e.Void() {
		// Children cannot be attached to a void element; even if the tree
		// were patched up by hand there would be nothing to close.
		fmt.Fprintf(sb, "%s<%s%s/>", indent, e.Tag, attrs)
		return nil
	}
	if len(e.children) == 0 {
		fmt.Fprintf(sb, "%s<%s%s></%s>", indent, e.Tag, attrs, e.Tag)
		return nil
	}
	if !inline {
		for _, c := range e.children {
			if c.mustBeInline() {
				inline = true
				break
			}
		}
	}
	fmt.Fprintf(sb, "%s<%s%s>", indent, e.Tag, attrs)
	if inline {
		for _, c := range e.children {
			if err := renderNode(sb, c, "", true); err != nil {
				return err
			}
		}
	} else {
		for _, c := range e.children {
			sb.WriteString("\n")
			if err := renderNode(sb, c, indent+indentStep, false); err != nil {
				return err
			}
		}
		sb.WriteString("\n")
		sb.WriteString(indent)
	}
	fmt.Fprintf(sb, "</%s>", e.Tag)
	return nil
}

// renderAttributes emits the class attribute first, then all attributes in
// insertion order, each preceded by a space.
func renderAttributes(e *Element) string {
	var sb strings.Builder
	if len(e.classes) > 0 {
		escaped := make([]string, len(e.classes))
		for i, c := range e.classes {
			escaped[i] = attrEscaper.Replace(c)
		}
		fmt.Fprintf(&sb, ` class="%s"`, strings.Join(escaped, " "))
	}
	for _, a := range e.attributes {
		if a.Bare {
			sb.WriteString(" " + a.Key)
			continue
		}
		fmt.Fprintf(&sb, ` %s="%s"`, a.Key, attrEscaper.Replace(a.Val))
	}
	return sb.String()
}
