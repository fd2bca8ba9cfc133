package interfaces

import (
	"regexp"

	"github.com/goliatone/go-footnotes/tree"
)

// BlockQueue is the work queue of raw text blocks driving the block stage.
// Handlers may push replacement fragments back to the front; fragments pushed
// in one call keep their relative order ahead of the remaining stream.
type BlockQueue interface {
	// PushFront queues blocks ahead of everything currently waiting.
	PushFront(blocks ...string)
	// PopFront removes and returns the next block, reporting whether one existed.
	PopFront() (string, bool)
	// Peek returns the next block without consuming it.
	Peek() (string, bool)
	// Len reports how many blocks are waiting.
	Len() int
}

// BlockHandler consumes raw text blocks during the block stage. HandleBlock
// receives one block already popped from the queue; it either appends nodes
// to doc and/or re-queues fragments and returns true, or returns false to
// decline, leaving the block for lower-priority handlers.
type BlockHandler interface {
	HandleBlock(doc *tree.Node, block string, queue BlockQueue) bool
}

// InlineMatch describes one successful inline pattern match. Groups holds the
// full match followed by capture groups; Start and End are byte offsets of
// the full match within Source, the complete text run being scanned.
type InlineMatch struct {
	Groups []string
	Start  int
	End    int
	Source string
}

// InlineResult is the replacement produced by an inline handler: the node to
// splice in and the byte range of Source it consumes.
type InlineResult struct {
	Node  *tree.Node
	Start int
	End   int
}

// InlineHandler reacts to inline pattern matches during the inline stage.
// A nil result declines the match, leaving the text literal for other
// handlers and resuming the scan after the match.
type InlineHandler interface {
	Pattern() *regexp.Regexp
	HandleMatch(m InlineMatch) *InlineResult
}

// TreeTransformer mutates the fully inline-resolved document tree in place.
type TreeTransformer interface {
	Transform(doc *tree.Node)
}

// TextPostprocessor rewrites the serialized document text, e.g. replacing
// private sentinel tokens with their final glyphs.
type TextPostprocessor interface {
	PostProcess(text string) string
}

// ChunkParser renders a chunk of raw block text into child nodes of parent.
// The assembler hands it a detached scratch container so engines with
// special-case handling for list items are bypassed.
type ChunkParser interface {
	ParseChunk(parent *tree.Node, chunk string) error
}

// Resetter clears per-document state. The engine resets every registered
// Resetter once at the start of each render so state never leaks between
// unrelated documents.
type Resetter interface {
	Reset()
}
