// Package engine implements a minimal staged markdown pipeline: a block stage
// driven by an explicit work queue of raw text blocks, an inline stage that
// resolves pattern matches into nodes, tree transformers over the assembled
// document, serialization, and a final text post-processing pass. Extensions
// register handlers at priorities; higher priorities run first.
package engine

import (
	"sort"
	"strings"

	"github.com/goliatone/go-footnotes/internal/logging"
	"github.com/goliatone/go-footnotes/pkg/interfaces"
	"github.com/goliatone/go-footnotes/tree"
)

// paragraphPriority is where the built-in fallback paragraph handler sits;
// extensions claiming blocks must register above it.
const paragraphPriority = 10

type prioritized[T any] struct {
	name     string
	priority int
	value    T
}

// Engine drives one document at a time through the fixed stage order. It is
// not safe for concurrent renders; use one engine per goroutine.
type Engine struct {
	blockHandlers  []prioritized[interfaces.BlockHandler]
	inlineHandlers []prioritized[interfaces.InlineHandler]
	transformers   []prioritized[interfaces.TreeTransformer]
	postprocessors []prioritized[interfaces.TextPostprocessor]
	resetters      []interfaces.Resetter
	chunk          interfaces.ChunkParser
	logger         interfaces.Logger
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger installs the logger used for stage diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithChunkParser overrides the parser used for detached chunk rendering,
// e.g. to render footnote definition bodies with a full markdown engine.
func WithChunkParser(parser interfaces.ChunkParser) Option {
	return func(e *Engine) {
		if parser != nil {
			e.chunk = parser
		}
	}
}

// New constructs an engine with the built-in paragraph fallback registered.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.RegisterBlockHandler("paragraph", paragraphHandler{}, paragraphPriority)
	return e
}

// RegisterBlockHandler adds a block-stage handler at the given priority.
func (e *Engine) RegisterBlockHandler(name string, handler interfaces.BlockHandler, priority int) {
	e.blockHandlers = append(e.blockHandlers, prioritized[interfaces.BlockHandler]{name, priority, handler})
	sortPrioritized(e.blockHandlers)
}

// RegisterInlineHandler adds an inline-stage handler at the given priority.
func (e *Engine) RegisterInlineHandler(name string, handler interfaces.InlineHandler, priority int) {
	e.inlineHandlers = append(e.inlineHandlers, prioritized[interfaces.InlineHandler]{name, priority, handler})
	sortPrioritized(e.inlineHandlers)
}

// RegisterTreeTransformer adds a tree-stage transformer at the given priority.
func (e *Engine) RegisterTreeTransformer(name string, transformer interfaces.TreeTransformer, priority int) {
	e.transformers = append(e.transformers, prioritized[interfaces.TreeTransformer]{name, priority, transformer})
	sortPrioritized(e.transformers)
}

// RegisterPostprocessor adds a text post-processing pass at the given priority.
func (e *Engine) RegisterPostprocessor(name string, post interfaces.TextPostprocessor, priority int) {
	e.postprocessors = append(e.postprocessors, prioritized[interfaces.TextPostprocessor]{name, priority, post})
	sortPrioritized(e.postprocessors)
}

// RegisterResetter adds per-document state that must be cleared before every
// render.
func (e *Engine) RegisterResetter(r interfaces.Resetter) {
	if r != nil {
		e.resetters = append(e.resetters, r)
	}
}

// ChunkParser returns the parser used for detached chunk rendering: the
// configured override when present, otherwise the engine itself.
func (e *Engine) ChunkParser() interfaces.ChunkParser {
	if e.chunk != nil {
		return e.chunk
	}
	return e
}

// Reset clears every registered per-document state holder. Render calls this
// automatically; it is exposed for callers that manage state directly.
func (e *Engine) Reset() {
	for _, r := range e.resetters {
		r.Reset()
	}
}

// Render converts one markdown document to markup, running every stage in
// order. State registered via RegisterResetter is cleared first, so back to
// back calls render independent documents.
func (e *Engine) Render(source string) (string, error) {
	e.Reset()

	doc := tree.New(tree.DocumentKind)
	blocks := splitBlocks(normalize(source))
	e.logger.Debug("engine render", "blocks", len(blocks))

	e.parseBlocks(doc, blocks)
	e.applyInline(doc)

	for _, t := range e.transformers {
		t.value.Transform(doc)
	}

	out := tree.RenderHTML(doc)
	for _, p := range e.postprocessors {
		out = p.value.PostProcess(out)
	}
	return out, nil
}

// ParseChunk renders chunk into children of parent using the block and
// inline stages. It satisfies interfaces.ChunkParser so the engine is its own
// default chunk renderer.
func (e *Engine) ParseChunk(parent *tree.Node, chunk string) error {
	before := len(parent.Children)
	e.parseBlocks(parent, splitBlocks(normalize(chunk)))
	for _, child := range parent.Children[before:] {
		e.inlineNode(child)
	}
	return nil
}

func (e *Engine) parseBlocks(parent *tree.Node, blocks []string) {
	queue := newBlockQueue(blocks)
	for {
		block, ok := queue.PopFront()
		if !ok {
			return
		}
		if strings.TrimSpace(block) == "" {
			continue
		}
		for _, h := range e.blockHandlers {
			if h.value.HandleBlock(parent, block, queue) {
				break
			}
		}
	}
}

// paragraphHandler wraps any block nobody else claimed in a paragraph node.
// It never declines, so it must stay at the lowest registered priority.
type paragraphHandler struct{}

func (paragraphHandler) HandleBlock(doc *tree.Node, block string, _ interfaces.BlockQueue) bool {
	p := tree.New("p")
	p.Text = strings.TrimSpace(block)
	doc.Append(p)
	return true
}

func normalize(source string) string {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	source = strings.ReplaceAll(source, "\r", "\n")
	return strings.ReplaceAll(source, "\t", "    ")
}

func splitBlocks(text string) []string {
	return strings.Split(text, "\n\n")
}

func sortPrioritized[T any](items []prioritized[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].priority > items[j].priority
	})
}
