package tree

import (
	"strings"
	"testing"
)

func TestRenderHTMLBasicElement(t *testing.T) {
	p := New("p")
	p.Text = "Hello"

	if got := RenderHTML(p); got != "<p>Hello</p>" {
		t.Fatalf("RenderHTML = %q", got)
	}
}

func TestRenderHTMLDocumentRootUnwrapped(t *testing.T) {
	doc := New(DocumentKind)
	p := New("p")
	p.Text = "one"
	doc.Append(p)
	q := New("p")
	q.Text = "two"
	doc.Append(q)

	if got := RenderHTML(doc); got != "<p>one</p><p>two</p>" {
		t.Fatalf("RenderHTML = %q", got)
	}
}

func TestRenderHTMLAttributesInOrder(t *testing.T) {
	a := New("a")
	a.SetAttr("href", "#fn:1")
	a.SetAttr("class", "footnote-ref")
	a.Text = "1"

	want := `<a href="#fn:1" class="footnote-ref">1</a>`
	if got := RenderHTML(a); got != want {
		t.Fatalf("RenderHTML = %q, want %q", got, want)
	}
}

func TestRenderHTMLVoidElements(t *testing.T) {
	div := New("div")
	div.Append(New("hr"))

	if got := RenderHTML(div); got != "<div><hr /></div>" {
		t.Fatalf("RenderHTML = %q", got)
	}
}

func TestRenderHTMLTailText(t *testing.T) {
	p := New("p")
	p.Text = "see "
	sup := New("sup")
	sup.Text = "1"
	sup.Tail = " and more"
	p.Append(sup)

	if got := RenderHTML(p); got != "<p>see <sup>1</sup> and more</p>" {
		t.Fatalf("RenderHTML = %q", got)
	}
}

func TestRenderHTMLEscaping(t *testing.T) {
	p := New("p")
	p.Text = `a < b & c > d`
	a := New("a")
	a.SetAttr("title", `say "hi" & <bye>`)
	p.Append(a)

	got := RenderHTML(p)
	if !strings.Contains(got, "a &lt; b &amp; c &gt; d") {
		t.Fatalf("text not escaped: %q", got)
	}
	if !strings.Contains(got, `title="say &quot;hi&quot; &amp; &lt;bye&gt;"`) {
		t.Fatalf("attribute not escaped: %q", got)
	}
}

func TestRenderHTMLKeepsControlCharacters(t *testing.T) {
	p := New("p")
	p.Text = "x\x02sentinel\x03y"

	if got := RenderHTML(p); got != "<p>x\x02sentinel\x03y</p>" {
		t.Fatalf("sentinel bytes altered: %q", got)
	}
}
