package tree

import "strings"

// DocumentKind is the reserved kind for the document root. The serializer
// renders its children without wrapping them in an element of their own.
const DocumentKind = "doc"

var voidElements = map[string]bool{
	"br":  true,
	"hr":  true,
	"img": true,
}

// RenderHTML serializes n and its subtree to XHTML-style markup. Text and
// tail content have `&`, `<` and `>` escaped; attribute values additionally
// escape `"`. Control characters pass through untouched so private sentinel
// tokens survive serialization for a later substitution pass.
func RenderHTML(n *Node) string {
	var b strings.Builder
	renderNode(&b, n)
	return b.String()
}

func renderNode(b *strings.Builder, n *Node) {
	if n.Kind == DocumentKind {
		b.WriteString(escapeText(n.Text))
		renderChildren(b, n)
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Kind)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(a.Value))
		b.WriteByte('"')
	}

	if voidElements[n.Kind] && len(n.Children) == 0 && n.Text == "" {
		b.WriteString(" />")
	} else {
		b.WriteByte('>')
		b.WriteString(escapeText(n.Text))
		renderChildren(b, n)
		b.WriteString("</")
		b.WriteString(n.Kind)
		b.WriteByte('>')
	}
	b.WriteString(escapeText(n.Tail))
}

func renderChildren(b *strings.Builder, n *Node) {
	for _, c := range n.Children {
		renderNode(b, c)
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escapeText(s string) string {
	if s == "" {
		return s
	}
	return textEscaper.Replace(s)
}

func escapeAttr(s string) string {
	if s == "" {
		return s
	}
	return attrEscaper.Replace(s)
}
