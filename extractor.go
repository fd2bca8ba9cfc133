package footnotes

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// definitionPattern matches a footnote definition marker line: up to three
// leading spaces, `[^label]:`, optional spaces, rest of line. The label is
// any run of non-`]` characters.
var definitionPattern = regexp.MustCompile(`(?m)^ {0,3}\[\^([^\]]*)\]:[ ]*(.*)$`)

// definitionExtractor pulls footnote definitions out of raw text blocks and
// stores them for the tree stage. Content around a definition is pushed back
// to the queue so other handlers see it in the original order.
type definitionExtractor struct {
	store  *Store
	logger interfaces.Logger
}

var _ interfaces.BlockHandler = (*definitionExtractor)(nil)

func (x *definitionExtractor) HandleBlock(_ *tree.Node, block string, queue interfaces.BlockQueue) bool {
	loc := definitionPattern.FindStringSubmatchIndex(block)
	if loc == nil {
		return false
	}

	label := block[loc[2]:loc[3]]
	body := block[loc[4]:loc[5]]

	pieces := []string{body}
	therest := strings.TrimLeft(block[loc[1]:], "\n")
	if next := definitionPattern.FindStringIndex(therest); next != nil {
		// Another definition starts inside this block. Everything before it
		// is a lazy continuation; the rest goes back for the next iteration.
		before := strings.TrimRight(therest[:next[0]], "\n")
		pieces[0] = strings.TrimLeft(pieces[0]+"\n"+detab(before), "\n")
		queue.PushFront(therest[next[0]:])
	} else {
		pieces[0] = strings.Trim(pieces[0]+"\n"+detab(therest), "\n")
		pieces = append(pieces, x.consumeIndented(queue)...)
	}

	x.store.SetDefinition(label, strings.TrimRight(strings.Join(pieces, "\n\n"), " \t\n"))
	x.logger.Debug("footnote definition stored", "label", label)

	if strings.TrimSpace(block[:loc[0]]) != "" {
		// Content before the marker is re-queued as its own block; a
		// whitespace-only prefix is dropped instead.
		queue.PushFront(strings.TrimRight(block[:loc[0]], "\n"))
	}
	return true
}

// consumeIndented pops subsequent 4-space-indented blocks as further
// continuation paragraphs, stopping at the first unindented block or at a new
// definition marker, whose remainder is pushed back.
func (x *definitionExtractor) consumeIndented(queue interfaces.BlockQueue) []string {
	var pieces []string
	for {
		next, ok := queue.Peek()
		if !ok || !strings.HasPrefix(next, "    ") {
			break
		}
		queue.PopFront()

		if loc := definitionPattern.FindStringIndex(next); loc != nil {
			before := strings.TrimRight(next[:loc[0]], "\n")
			pieces = append(pieces, detab(before))
			queue.PushFront(next[loc[0]:])
			break
		}
		pieces = append(pieces, detab(next))
	}
	return pieces
}

// detab removes one 4-space indent level per line. Lines indented less than
// that are lazy continuations and stay untouched.
func detab(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "    ") {
			lines[i] = line[4:]
		}
	}
	return strings.Join(lines, "\n")
}
