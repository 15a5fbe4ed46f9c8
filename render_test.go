package htmlgen

import (
	"errors"
	"testing"
)

func TestRenderInlineTextChild(t *testing.T) {
	h1 := El("h1", Text("Demo Page")).WithAttr("class", "page-title")
	got, err := Render(h1)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<h1 class="page-title">Demo Page</h1>`; got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderIndentedBlock(t *testing.T) {
	ol := El("ol",
		El("li", Text("Minute")),
		El("li", Text("Second")),
		El("li", Text("Third")),
	).WithAttr("start", 2).WithAttr("type", "a")
	got, err := Render(ol)
	if err != nil {
		t.Fatal(err)
	}
	want := `<ol start="2" type="a">
  <li>Minute</li>
  <li>Second</li>
  <li>Third</li>
</ol>`
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderDeepNesting(t *testing.T) {
	tree := El("div", El("div", El("p", Text("x"))))
	got, err := Render(tree)
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n  <div>\n    <p>x</p>\n  </div>\n</div>"
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderAttributeEscaping(t *testing.T) {
	a := El("a", Text("x")).WithAttr("href", `https://example.com/?q="a"&r=<b>`)
	got, err := Render(a)
	if err != nil {
		t.Fatal(err)
	}
	want := `<a href="https://example.com/?q=&quot;a&quot;&amp;r=&lt;b&gt;">x</a>`
	if got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderTextEscaping(t *testing.T) {
	got, err := Render(El("p", Text(`a < b & c > "d"`)))
	if err != nil {
		t.Fatal(err)
	}
	// quotes stay literal outside attribute values
	want := `<p>a &lt; b &amp; c &gt; "d"</p>`
	if got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderBareAttribute(t *testing.T) {
	in := NewElement("input")
	if err := in.SetAttribute("type", "checkbox"); err != nil {
		t.Fatal(err)
	}
	if err := in.SetAttribute("checked", true); err != nil {
		t.Fatal(err)
	}
	got, err := Render(in)
	if err != nil {
		t.Fatal(err)
	}
	if want := `<input type="checkbox" checked/>`; got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderVoidElement(t *testing.T) {
	got, err := Render(El("img").WithAttr("src", "x.png"))
	if err != nil {
		t.Fatal(err)
	}
	if want := `<img src="x.png"/>`; got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderEmptyElement(t *testing.T) {
	got, err := Render(El("div"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "<div></div>"; got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderPreKeepsWhitespace(t *testing.T) {
	tree := El("div", El("pre", Text("  2\n 1\n0")))
	got, err := Render(tree)
	if err != nil {
		t.Fatal(err)
	}
	want := "<div>\n<pre>  2\n 1\n0</pre>\n</div>"
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderMixedInline(t *testing.T) {
	p := El("p", Text("see "), El("a", Text("here")).WithAttr("href", "/x"), Text(" now"))
	got, err := Render(p)
	if err != nil {
		t.Fatal(err)
	}
	want := `<p>see <a href="/x">here</a> now</p>`
	if got != want {
		t.Errorf("Render = %s, want %s", got, want)
	}
}

func TestRenderSequence(t *testing.T) {
	seq := Sequence{
		El("h1", Text("Title")),
		El("div", El("p", Text("body"))),
	}
	got, err := Render(seq)
	if err != nil {
		t.Fatal(err)
	}
	want := "<h1>Title</h1>\n<div>\n  <p>body</p>\n</div>"
	if got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestRenderIndentLevel(t *testing.T) {
	got, err := RenderIndent(El("li", Text("x")), 2)
	if err != nil {
		t.Fatal(err)
	}
	if want := "    <li>x</li>"; got != want {
		t.Errorf("RenderIndent = %q, want %q", got, want)
	}
}

func TestRenderIsPure(t *testing.T) {
	tree := El("div", El("p", Text("a & b")), El("ul", El("li", Text("x"))))
	first, err := Render(tree)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Render(tree)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("second render differs:\n%s\nvs\n%s", first, second)
	}
}

type bogusNode struct{}

func (bogusNode) mustBeInline() bool { return false }

func TestRenderUnknownNodeKind(t *testing.T) {
	got, err := Render(El("div", bogusNode{}))
	if !errors.Is(err, ErrUnknownNodeKind) {
		t.Fatalf("err = %v, want ErrUnknownNodeKind", err)
	}
	if got != "" {
		t.Errorf("failed render returned text %q, want none", got)
	}
}
