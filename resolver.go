package footnotes

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// referencePattern matches an inline footnote marker `[^label]`. Matches that
// are really definitions (followed by a colon) or image markers (preceded by
// `!`) are declined in HandleMatch since the pattern itself cannot express
// those guards.
var referencePattern = regexp.MustCompile(`\[\^([^\]]*)\]`)

// referenceResolver turns inline footnote markers into superscript reference
// nodes, assigning render numbers and distinct back-reference anchors.
type referenceResolver struct {
	cfg    Config
	store  *Store
	logger interfaces.Logger
}

var _ interfaces.InlineHandler = (*referenceResolver)(nil)

func (r *referenceResolver) Pattern() *regexp.Regexp {
	return referencePattern
}

func (r *referenceResolver) HandleMatch(m interfaces.InlineMatch) *interfaces.InlineResult {
	if m.Start > 0 && m.Source[m.Start-1] == '!' {
		return nil
	}
	if followedByColon(m.Source[m.End:]) {
		return nil
	}

	label := m.Groups[1]
	if _, ok := r.store.Definition(label); !ok {
		r.logger.Debug("unknown footnote reference left literal", "label", label)
		return nil
	}

	r.store.AddReferenceOrder(label)

	sup := tree.New("sup")
	sup.SetAttr("id", r.store.ReferenceAnchor(label, true))
	a := tree.New("a")
	a.SetAttr("href", "#"+r.store.DefinitionAnchor(label))
	a.SetAttr("class", "footnote-ref")
	a.Text = formatTemplate(r.cfg.SuperscriptText, r.renderNumber(label))
	sup.Append(a)

	return &interfaces.InlineResult{Node: sup, Start: m.Start, End: m.End}
}

// renderNumber computes the 1-based number from the active ordering policy.
// Only referenced definitions occupy a slot. Under definition order the
// number can still shift when a later reference lands on an earlier
// definition, so the list stage renumbers superscripts once the referenced
// set is final.
func (r *referenceResolver) renderNumber(label string) int {
	if r.cfg.UseDefinitionOrder {
		return indexIn(r.store.ReferencedDefinitions(), label) + 1
	}
	return indexIn(r.store.ReferenceOrder(), label) + 1
}

func indexIn(ids []string, label string) int {
	for i, id := range ids {
		if id == label {
			return i
		}
	}
	return -1
}

// followedByColon reports whether the text after the marker begins with
// optional whitespace and a colon, which makes the marker a definition, not a
// reference.
func followedByColon(rest string) bool {
	return strings.HasPrefix(strings.TrimLeft(rest, " \t\n"), ":")
}
