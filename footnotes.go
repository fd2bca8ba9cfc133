// Package footnotes extracts footnote definitions from raw text blocks,
// correlates them with inline references, assigns stable render order and
// unique anchor ids, and splices a rendered footnote list into the document
// tree at a placeholder marker (or at the end). Footnotes referenced more
// than once get one extra back-link per duplicate reference.
//
// The extension plugs into the staged pipeline in the engine package;
// NewEngine returns a ready-to-use engine with the extension attached.
package footnotes

import (
	"fmt"

	"github.com/goliatone/go-footnotes/engine"
	"github.com/goliatone/go-footnotes/internal/logging"
	"github.com/goliatone/go-footnotes/pkg/interfaces"
)

// Stage priorities. The assembler must run before reordering and duplicate
// augmentation: reordering needs the final reference order and duplicate
// augmentation needs finalized anchor ids and positions.
const (
	blockPriority       = 17
	inlinePriority      = 175
	assemblePriority    = 50
	reorderPriority     = 19
	duplicatePriority   = 15
	postprocessPriority = 25
)

// Extension owns the per-document footnote state and registers the pipeline
// components onto an engine. One extension serves one engine; its store must
// not be shared across overlapping renders.
type Extension struct {
	cfg    Config
	store  *Store
	logger interfaces.Logger
	chunk  interfaces.ChunkParser
}

// Option configures an Extension.
type Option func(*Extension)

// WithLogger installs the logger used for extension diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(x *Extension) {
		if logger != nil {
			x.logger = logger
		}
	}
}

// WithChunkParser overrides the parser used for footnote definition bodies,
// e.g. gmchunk.New() for full markdown inside footnotes. Only honored by
// NewEngine; when attaching to an existing engine configure the engine
// directly.
func WithChunkParser(parser interfaces.ChunkParser) Option {
	return func(x *Extension) {
		x.chunk = parser
	}
}

// NewExtension validates the configuration and returns an extension ready to
// attach to an engine.
func NewExtension(cfg Config, opts ...Option) (*Extension, error) {
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("footnotes: invalid config: %w", err)
	}

	x := &Extension{
		cfg:    cfg,
		store:  NewStore(cfg.Separator, cfg.UniqueIDs),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(x)
	}
	return x, nil
}

// Store exposes the per-document state, mainly for tests and callers that
// drive the pipeline stages themselves.
func (x *Extension) Store() *Store {
	return x.store
}

// Reset clears all per-document state. The engine calls this once at the
// start of every render.
func (x *Extension) Reset() {
	x.store.Reset()
}

// Extend registers every pipeline component onto e. Exactly one of the two
// numbering transformers is registered: the reordering processor when render
// order follows first-reference order, the superscript renumberer otherwise.
func (x *Extension) Extend(e *engine.Engine) {
	e.RegisterResetter(x)
	e.RegisterBlockHandler("footnote", &definitionExtractor{store: x.store, logger: x.logger}, blockPriority)
	e.RegisterInlineHandler("footnote", &referenceResolver{cfg: x.cfg, store: x.store, logger: x.logger}, inlinePriority)
	e.RegisterTreeTransformer("footnote", &treeAssembler{
		cfg:    x.cfg,
		store:  x.store,
		chunk:  e.ChunkParser(),
		logger: x.logger,
	}, assemblePriority)
	if x.cfg.UseDefinitionOrder {
		e.RegisterTreeTransformer("footnote-renumber", &definitionOrderNumberer{cfg: x.cfg}, reorderPriority)
	} else {
		e.RegisterTreeTransformer("footnote-reorder", &reorderingProcessor{cfg: x.cfg, store: x.store}, reorderPriority)
	}
	e.RegisterTreeTransformer("footnote-duplicate", &duplicateBacklinkAugmenter{store: x.store}, duplicatePriority)
	e.RegisterPostprocessor("footnote", sentinelPostprocessor{cfg: x.cfg}, postprocessPriority)
}

// NewEngine constructs an engine with the footnote extension attached.
func NewEngine(cfg Config, opts ...Option) (*engine.Engine, error) {
	ext, err := NewExtension(cfg, opts...)
	if err != nil {
		return nil, err
	}

	engineOpts := []engine.Option{engine.WithLogger(ext.logger)}
	if ext.chunk != nil {
		engineOpts = append(engineOpts, engine.WithChunkParser(ext.chunk))
	}

	e := engine.New(engineOpts...)
	ext.Extend(e)
	return e, nil
}
