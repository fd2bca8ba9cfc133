package footnotes

import (
	"slices"
	"sort"
	"strings"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// reorderingProcessor re-sorts the spliced footnote list into first-reference
// order when that differs from definition order, and rebuilds back-link
// titles from the new positions. It is only registered when ordering by
// reference is active.
type reorderingProcessor struct {
	cfg   Config
	store *Store
}

var _ interfaces.TreeTransformer = (*reorderingProcessor)(nil)

func (r *reorderingProcessor) Transform(doc *tree.Node) {
	if !r.store.HasDefinitions() {
		return
	}
	if slices.Equal(r.store.ReferenceOrder(), r.store.DefinitionOrder()) {
		return
	}
	for _, div := range doc.Iter("div") {
		if div.Attr("class") == "footnote" {
			r.reorder(div)
			return
		}
	}
}

func (r *reorderingProcessor) reorder(div *tree.Node) {
	var ol *tree.Node
	for _, child := range div.Children {
		if child.Kind == "ol" {
			ol = child
			break
		}
	}
	if ol == nil {
		return
	}
	div.Remove(ol)

	var items []*tree.Node
	for _, child := range ol.Children {
		if child.Kind == "li" {
			items = append(items, child)
		}
	}

	// Items whose id never appears in reference order sort last, keeping
	// their original relative order among themselves.
	refOrder := r.store.ReferenceOrder()
	unknownRank := len(r.store.DefinitionOrder())
	rank := func(li *tree.Node) int {
		id := li.Attr("id")
		if _, rest, ok := strings.Cut(id, r.store.Separator()); ok {
			id = rest
		}
		if r.cfg.UniqueIDs {
			// Unique-id anchors carry a "<prefix>-" session namespace.
			if _, rest, ok := strings.Cut(id, "-"); ok {
				id = rest
			}
		}
		if i := indexIn(refOrder, id); i >= 0 {
			return i
		}
		return unknownRank
	}
	sort.SliceStable(items, func(i, j int) bool {
		return rank(items[i]) < rank(items[j])
	})

	newList := tree.New("ol")
	div.Append(newList)
	for index, item := range items {
		if backlink := findBacklink(item); backlink != nil {
			backlink.SetAttr("title", formatTemplate(r.cfg.BacklinkTitle, index+1))
		}
		newList.Append(item)
	}
}

// definitionOrderNumberer rewrites superscript reference labels to each
// footnote's position in the spliced list. Reference numbers are assigned
// while inline markers resolve, before the full referenced set is known, so
// under definition order a later reference can shift earlier numbers. It is
// only registered when ordering by definition is active.
type definitionOrderNumberer struct {
	cfg Config
}

var _ interfaces.TreeTransformer = (*definitionOrderNumberer)(nil)

func (d *definitionOrderNumberer) Transform(doc *tree.Node) {
	ol := findFootnoteList(doc)
	if ol == nil {
		return
	}

	refs := make(map[string][]*tree.Node)
	doc.Walk(func(n *tree.Node) bool {
		if n.Kind == "a" && n.Attr("class") == "footnote-ref" {
			href := n.Attr("href")
			refs[href] = append(refs[href], n)
		}
		return true
	})

	number := 0
	for _, li := range ol.Children {
		if li.Kind != "li" {
			continue
		}
		number++
		for _, ref := range refs["#"+li.Attr("id")] {
			ref.Text = formatTemplate(d.cfg.SuperscriptText, number)
		}
	}
}

// findFootnoteList returns the ordered list inside the first footnote
// container, or nil when no list was spliced.
func findFootnoteList(doc *tree.Node) *tree.Node {
	for _, div := range doc.Iter("div") {
		if div.Attr("class") != "footnote" {
			continue
		}
		for _, child := range div.Children {
			if child.Kind == "ol" {
				return child
			}
		}
		return nil
	}
	return nil
}

// findBacklink returns the first back-link anchor inside item, depth-first.
func findBacklink(item *tree.Node) *tree.Node {
	var found *tree.Node
	item.Walk(func(n *tree.Node) bool {
		if n.Kind == "a" && n.Attr("class") == "footnote-backref" {
			found = n
			return false
		}
		return true
	})
	return found
}
