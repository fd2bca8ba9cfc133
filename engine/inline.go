package engine

import (
	"strings"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// applyInline runs the inline stage over every top-level child of the
// document root.
func (e *Engine) applyInline(root *tree.Node) {
	for _, child := range root.Children {
		e.inlineNode(child)
	}
}

// inlineNode resolves inline matches in n's text, then recurses into the
// children n had before any replacement nodes were spliced in, handling each
// child's tail the same way. Nodes produced by handlers are final and are not
// re-scanned.
func (e *Engine) inlineNode(n *tree.Node) {
	original := append([]*tree.Node(nil), n.Children...)

	lead, produced := e.scanText(n.Text)
	n.Text = lead
	for i, p := range produced {
		n.Insert(i, p)
	}

	for _, child := range original {
		e.inlineNode(child)

		lead, produced := e.scanText(child.Tail)
		child.Tail = lead
		at := n.Index(child)
		for i, p := range produced {
			n.Insert(at+1+i, p)
		}
	}
}

// scanText splits one text run into leading literal text plus replacement
// nodes; each produced node carries the literal text that followed it in its
// tail. At every position the earliest match wins, with registration priority
// breaking ties. A declined match is kept as literal text and scanning
// resumes after it.
func (e *Engine) scanText(text string) (string, []*tree.Node) {
	if text == "" || len(e.inlineHandlers) == 0 {
		return text, nil
	}

	var produced []*tree.Node
	var lead strings.Builder
	literal := func(s string) {
		if len(produced) == 0 {
			lead.WriteString(s)
		} else {
			produced[len(produced)-1].Tail += s
		}
	}

	pos := 0
	for pos < len(text) {
		handler, loc := e.earliestMatch(text, pos)
		if loc == nil {
			literal(text[pos:])
			break
		}

		match := interfaces.InlineMatch{
			Groups: captureGroups(text, loc),
			Start:  loc[0],
			End:    loc[1],
			Source: text,
		}
		res := handler.HandleMatch(match)
		if res == nil {
			literal(text[pos:loc[1]])
			pos = loc[1]
			continue
		}

		literal(text[pos:res.Start])
		produced = append(produced, res.Node)
		pos = res.End
	}

	return lead.String(), produced
}

// earliestMatch returns the handler whose pattern matches closest to pos,
// along with absolute submatch offsets into text. Handlers are consulted in
// priority order, so ties go to the higher-priority registration.
func (e *Engine) earliestMatch(text string, pos int) (interfaces.InlineHandler, []int) {
	var (
		best        []int
		bestHandler interfaces.InlineHandler
	)
	for _, h := range e.inlineHandlers {
		loc := h.value.Pattern().FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			continue
		}
		for i := range loc {
			if loc[i] >= 0 {
				loc[i] += pos
			}
		}
		if best == nil || loc[0] < best[0] {
			best = loc
			bestHandler = h.value
		}
	}
	return bestHandler, best
}

func captureGroups(text string, loc []int) []string {
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, text[loc[i]:loc[i+1]])
	}
	return groups
}
