package htmlgen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/speedata/css/scanner"
)

// tokenstream is a list of CSS tokens
type tokenstream []*scanner.Token

// String reconstructs the source text of the tokens. Tokens whose scanned
// value drops the syntactic wrapper get it back.
func (t tokenstream) String() string {
	var sb strings.Builder
	for _, tok := range t {
		switch tok.Type {
		case scanner.Hash:
			sb.WriteString("#" + tok.Value)
		case scanner.AtKeyword:
			sb.WriteString("@" + tok.Value)
		case scanner.URI:
			sb.WriteString(`url("` + tok.Value + `")`)
		default:
			sb.WriteString(tok.Value)
		}
	}
	return sb.String()
}

// tokenizeCSSString scans the CSS text into a token stream, dropping
// comments.
func tokenizeCSSString(css string) (tokenstream, error) {
	s := scanner.New(css)
	var toks tokenstream
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.EOF:
			return toks, nil
		case scanner.Error:
			return nil, fmt.Errorf("css syntax error at %d:%d: %s", tok.Line, tok.Column, tok.Value)
		case scanner.Comment:
			// skip
		default:
			toks = append(toks, tok)
		}
	}
}

// Return the position after the matching closing brace "}". Without one,
// the block runs to the end of the stream.
func findClosingBrace(toks tokenstream) int {
	level := 1
	for i, t := range toks {
		if t.Type == scanner.Delim {
			switch t.Value {
			case "{":
				level++
			case "}":
				level--
				if level == 0 {
					return i + 1
				}
			}
		}
	}
	return len(toks) + 1
}

func trimSpace(toks tokenstream) tokenstream {
	i := 0
	for i < len(toks) && toks[i].Type == scanner.S {
		i++
	}
	return toks[i:]
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// collapseText trims the token text and folds whitespace runs into single
// spaces, so declarations and selectors written across several source lines
// come out on one line.
func collapseText(toks tokenstream) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(toks.String()), " ")
}

// ParseRule builds a rule tree from CSS source text: the body belonging to
// the given selector, written as declarations and nested blocks whose
// selectors may use the ampersand placeholder.
//
//	rule, err := htmlgen.ParseRule(".demo-box", `
//		background-color: lightred;
//
//		& > h2 {
//			font-size: 1.5em;
//		}
//	`)
func ParseRule(selector, css string) (*Rule, error) {
	root, err := NewRule(selector)
	if err != nil {
		return nil, err
	}
	toks, err := tokenizeCSSString(css)
	if err != nil {
		return nil, err
	}
	if err := consumeRuleBody(root, toks); err != nil {
		return nil, err
	}
	return root, nil
}

// consumeRuleBody fills the rule from the tokens of a block body. There are
// only two shapes to consume: "property : value ;" runs and "selector {
// body }" sub-blocks.
func consumeRuleBody(r *Rule, toks tokenstream) error {
	toks = trimSpace(toks)
	start := 0
	colon := -1
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Type != scanner.Delim {
			continue
		}
		switch t.Value {
		case ":":
			if colon < 0 {
				colon = i
			}
		case ";":
			if seg := trimSpace(toks[start:i]); len(seg) > 0 {
				if err := setParsedDeclaration(r, toks[start:i], colon-start); err != nil {
					return err
				}
			}
			colon = -1
			start = i + 1
			for start < len(toks) && toks[start].Type == scanner.S {
				start++
				i++
			}
		case "{":
			l := findClosingBrace(toks[i+1:])
			body := toks[i+1 : i+l]
			child := r.AppendRule(collapseText(toks[start:i]))
			if err := consumeRuleBody(child, body); err != nil {
				return err
			}
			i += l
			colon = -1
			start = i + 1
			for start < len(toks) && toks[start].Type == scanner.S {
				start++
				i++
			}
		}
	}
	if start >= len(toks) {
		return nil
	}
	// a trailing declaration without its semicolon
	if rest := trimSpace(toks[start:]); len(rest) > 0 {
		if err := setParsedDeclaration(r, toks[start:], colon-start); err != nil {
			return err
		}
	}
	return nil
}

func setParsedDeclaration(r *Rule, toks tokenstream, colon int) error {
	if colon < 0 || colon >= len(toks) {
		return fmt.Errorf("%w: missing colon in %q", ErrInvalidPropertyName, collapseText(toks))
	}
	property := collapseText(toks[:colon])
	value := collapseText(toks[colon+1:])
	return r.SetDeclaration(property, value)
}
