package footnotes

import (
	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// Private sentinel tokens embedded during tree construction. They survive
// serialization (the escaper leaves control characters alone) and a final
// text pass rewrites them into the configured glyph and a non-breaking space.
const (
	backlinkSentinel = "\x02fnote-backlink\x03"
	nbspSentinel     = "\x02fnote-nbsp\x03"
)

// treeAssembler builds the rendered footnote list and splices it into the
// document at the placeholder, or appends it to the document root.
type treeAssembler struct {
	cfg    Config
	store  *Store
	chunk  interfaces.ChunkParser
	logger interfaces.Logger
}

var _ interfaces.TreeTransformer = (*treeAssembler)(nil)

func (t *treeAssembler) Transform(doc *tree.Node) {
	div := t.buildList()
	if div == nil {
		return
	}

	match := tree.FindText(doc, t.cfg.PlaceMarker)
	if match == nil {
		doc.Append(div)
		return
	}

	idx := match.Parent.Index(match.Node)
	if match.InText {
		// The marker sat in the child's own text: the child is replaced in
		// place by the footnote list.
		match.Parent.Remove(match.Node)
		match.Parent.Insert(idx, div)
	} else {
		// Tail match: the list becomes the next sibling and the tail is
		// cleared so the marker text is not duplicated.
		match.Parent.Insert(idx+1, div)
		match.Node.Tail = ""
	}
}

// buildList renders one list item per referenced definition, in definition
// order. Definitions nobody referenced are not rendered. Returns nil when
// there is nothing to render.
func (t *treeAssembler) buildList() *tree.Node {
	ids := t.store.ReferencedDefinitions()
	if len(ids) == 0 {
		return nil
	}

	div := tree.New("div")
	div.SetAttr("class", "footnote")
	div.Append(tree.New("hr"))
	ol := tree.New("ol")
	div.Append(ol)

	// Definition bodies are parsed into a detached scratch container first:
	// block engines special-case list-item containers, so parsing directly
	// into the li must be bypassed.
	scratch := tree.New("div")

	included := make(map[string]bool, len(ids))
	for _, id := range ids {
		included[id] = true
	}

	for index := 0; index < len(ids); index++ {
		id := ids[index]
		li := tree.New("li")
		li.SetAttr("id", t.store.DefinitionAnchor(id))
		ol.Append(li)

		text, _ := t.store.Definition(id)
		if err := t.chunk.ParseChunk(scratch, text); err != nil {
			t.logger.Warn("footnote body parse failed, keeping raw text", "label", id, "error", err)
			// The parser may have grafted partial children before failing;
			// the raw-text fallback replaces them, never joins them.
			scratch.Children = nil
			p := tree.New("p")
			p.Text = text
			scratch.Append(p)
		}
		for _, el := range scratch.Children {
			li.Append(el)
		}
		scratch.Children = nil

		t.appendBacklink(li, id, index+1)

		// Parsing the body can resolve references to footnotes nobody in the
		// main document used. Those definitions join the end of the list so
		// their anchors are not left dangling.
		for _, ref := range t.store.ReferenceOrder() {
			if _, defined := t.store.Definition(ref); defined && !included[ref] {
				included[ref] = true
				ids = append(ids, ref)
			}
		}
	}
	return div
}

// appendBacklink attaches the back-link to the last paragraph's inline
// content, preceded by a non-breaking-space placeholder, or wraps it in a new
// paragraph when the item does not end in one.
func (t *treeAssembler) appendBacklink(li *tree.Node, id string, number int) {
	backlink := tree.New("a")
	backlink.SetAttr("href", "#"+t.store.ReferenceAnchor(id, false))
	backlink.SetAttr("class", "footnote-backref")
	backlink.SetAttr("title", formatTemplate(t.cfg.BacklinkTitle, number))
	backlink.Text = backlinkSentinel

	if n := len(li.Children); n > 0 {
		last := li.Children[n-1]
		if last.Kind == "p" {
			if len(last.Children) > 0 {
				last.Children[len(last.Children)-1].Tail += nbspSentinel
			} else {
				last.Text += nbspSentinel
			}
			last.Append(backlink)
			return
		}
	}
	p := tree.New("p")
	p.Append(backlink)
	li.Append(p)
}

