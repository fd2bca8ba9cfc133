package footnotes

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// duplicateBacklinkAugmenter adds one extra back-link per duplicate reference
// to each footnote's back-link paragraph, pointing at the disambiguated
// back-reference anchors. It runs after reordering so titles are final.
type duplicateBacklinkAugmenter struct {
	store *Store
}

var _ interfaces.TreeTransformer = (*duplicateBacklinkAugmenter)(nil)

func (d *duplicateBacklinkAugmenter) Transform(doc *tree.Node) {
	for _, div := range doc.Iter("div") {
		if div.Attr("class") != "footnote" {
			continue
		}
		// Footnote items live in the first ordered list under the container.
		for _, ol := range div.Iter("ol") {
			d.augmentItems(ol)
			break
		}
		return
	}
}

func (d *duplicateBacklinkAugmenter) augmentItems(ol *tree.Node) {
	for _, li := range ol.Children {
		if li.Kind != "li" {
			continue
		}
		if count := d.duplicateCount(li); count > 1 {
			d.addDuplicates(li, count)
		}
	}
}

// duplicateCount derives the back-reference anchor from the item's own render
// anchor and looks up how many references resolved to it. A malformed id
// (missing separator) counts as zero duplicates.
func (d *duplicateBacklinkAugmenter) duplicateCount(li *tree.Node) int {
	sep := d.store.Separator()
	head, rest, ok := strings.Cut(li.Attr("id"), sep)
	if !ok {
		return 0
	}
	return d.store.FoundRefs(head + "ref" + sep + rest)
}

// addDuplicates clones the item's back-link count-1 times, each clone
// pointing at one disambiguated back-reference anchor, and appends the clones
// to the item's last child.
func (d *duplicateBacklinkAugmenter) addDuplicates(li *tree.Node, count int) {
	sep := d.store.Separator()
	for _, link := range li.Iter("a") {
		if link.Attr("class") != "footnote-backref" {
			continue
		}
		head, rest, ok := strings.Cut(link.Attr("href"), sep)
		if !ok {
			return
		}

		clones := make([]*tree.Node, 0, count-1)
		for index := 2; index <= count; index++ {
			clone := link.Clone()
			clone.SetAttr("href", head+strconv.Itoa(index)+sep+rest)
			clones = append(clones, clone)
		}

		if n := len(li.Children); n > 0 {
			last := li.Children[n-1]
			for _, clone := range clones {
				last.Append(clone)
			}
		}
		return
	}
}
