// Package gmchunk renders footnote definition bodies with goldmark, so
// footnotes can carry full markdown (emphasis, links, lists, code) while the
// host pipeline stays minimal. The goldmark AST is converted into the
// pipeline's tree nodes; raw HTML is degraded to text.
//
// Inline footnote references inside goldmark-parsed bodies are not resolved;
// the native chunk parser handles those.
package gmchunk

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// Parser is a ChunkParser backed by a goldmark engine. It is stateless and
// can be shared across renders.
type Parser struct {
	md goldmark.Markdown
}

var _ interfaces.ChunkParser = (*Parser)(nil)

// New returns a parser using a default goldmark engine (CommonMark only).
func New() *Parser {
	return &Parser{md: goldmark.New()}
}

// ParseChunk parses chunk and grafts the converted nodes onto parent.
func (p *Parser) ParseChunk(parent *tree.Node, chunk string) error {
	source := []byte(chunk)
	root := p.md.Parser().Parse(gmtext.NewReader(source))
	convertChildren(parent, root, source)
	return nil
}

func convertChildren(parent *tree.Node, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		convertNode(parent, c, source)
	}
}

func convertNode(parent *tree.Node, n ast.Node, source []byte) {
	switch v := n.(type) {
	case *ast.Paragraph:
		parent.Append(convertContainer("p", v, source))
	case *ast.TextBlock:
		// Tight list item content renders without a paragraph wrapper.
		convertChildren(parent, v, source)
	case *ast.Heading:
		parent.Append(convertContainer("h"+strconv.Itoa(v.Level), v, source))
	case *ast.Blockquote:
		parent.Append(convertContainer("blockquote", v, source))
	case *ast.List:
		parent.Append(convertList(v, source))
	case *ast.ListItem:
		parent.Append(convertContainer("li", v, source))
	case *ast.FencedCodeBlock:
		parent.Append(convertCodeBlock(v, string(v.Language(source)), source))
	case *ast.CodeBlock:
		parent.Append(convertCodeBlock(v, "", source))
	case *ast.ThematicBreak:
		parent.Append(tree.New("hr"))
	case *ast.HTMLBlock:
		appendText(parent, linesValue(v, source))
	case *ast.Text:
		appendText(parent, string(v.Segment.Value(source)))
		if v.HardLineBreak() {
			parent.Append(tree.New("br"))
		} else if v.SoftLineBreak() {
			appendText(parent, "\n")
		}
	case *ast.String:
		appendText(parent, string(v.Value))
	case *ast.CodeSpan:
		parent.Append(convertContainer("code", v, source))
	case *ast.Emphasis:
		kind := "em"
		if v.Level >= 2 {
			kind = "strong"
		}
		parent.Append(convertContainer(kind, v, source))
	case *ast.Link:
		a := tree.New("a")
		a.SetAttr("href", string(v.Destination))
		if len(v.Title) > 0 {
			a.SetAttr("title", string(v.Title))
		}
		convertChildren(a, v, source)
		parent.Append(a)
	case *ast.AutoLink:
		url := string(v.URL(source))
		a := tree.New("a")
		a.SetAttr("href", url)
		a.Text = string(v.Label(source))
		parent.Append(a)
	case *ast.Image:
		img := tree.New("img")
		img.SetAttr("src", string(v.Destination))
		img.SetAttr("alt", textContent(v, source))
		if len(v.Title) > 0 {
			img.SetAttr("title", string(v.Title))
		}
		parent.Append(img)
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < v.Segments.Len(); i++ {
			seg := v.Segments.At(i)
			b.Write(seg.Value(source))
		}
		appendText(parent, b.String())
	default:
		// Unknown containers contribute their children transparently.
		convertChildren(parent, n, source)
	}
}

func convertContainer(kind string, n ast.Node, source []byte) *tree.Node {
	out := tree.New(kind)
	convertChildren(out, n, source)
	return out
}

func convertList(v *ast.List, source []byte) *tree.Node {
	kind := "ul"
	if v.IsOrdered() {
		kind = "ol"
	}
	list := tree.New(kind)
	if v.IsOrdered() && v.Start != 1 {
		list.SetAttr("start", strconv.Itoa(v.Start))
	}
	convertChildren(list, v, source)
	return list
}

func convertCodeBlock(n ast.Node, language string, source []byte) *tree.Node {
	pre := tree.New("pre")
	code := tree.New("code")
	if language != "" {
		code.SetAttr("class", "language-"+language)
	}
	code.Text = linesValue(n, source)
	pre.Append(code)
	return pre
}

// appendText adds literal text at the current tail position of parent: the
// parent's own text when it has no children yet, otherwise the last child's
// tail.
func appendText(parent *tree.Node, s string) {
	if s == "" {
		return
	}
	if len(parent.Children) == 0 {
		parent.Text += s
		return
	}
	parent.Children[len(parent.Children)-1].Tail += s
}

func linesValue(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}

func textContent(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if t, ok := c.(*ast.Text); ok {
				b.Write(t.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
