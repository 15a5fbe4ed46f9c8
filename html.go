package htmlgen

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document renders the node and parses the result back into a DOM. The
// returned document can be inspected with selector queries, for example to
// check rendered output in tests or to post-process it.
func Document(n Node) (*goquery.Document, error) {
	text, err := Render(n)
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(text))
}
