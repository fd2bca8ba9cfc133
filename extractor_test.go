package footnotes

import (
	"slices"
	"testing"

	"github.com/goliatone/go-footnotes/internal/logging"
)

// testQueue is a minimal in-test block queue backing the extractor tests.
type testQueue struct {
	blocks []string
}

func (q *testQueue) PushFront(blocks ...string) {
	q.blocks = append(append([]string(nil), blocks...), q.blocks...)
}

func (q *testQueue) PopFront() (string, bool) {
	if len(q.blocks) == 0 {
		return "", false
	}
	block := q.blocks[0]
	q.blocks = q.blocks[1:]
	return block, true
}

func (q *testQueue) Peek() (string, bool) {
	if len(q.blocks) == 0 {
		return "", false
	}
	return q.blocks[0], true
}

func (q *testQueue) Len() int { return len(q.blocks) }

func newExtractor() (*definitionExtractor, *Store) {
	store := NewStore(":", false)
	return &definitionExtractor{store: store, logger: logging.NoOp()}, store
}

func TestExtractSimpleDefinition(t *testing.T) {
	x, store := newExtractor()
	q := &testQueue{}

	if !x.HandleBlock(nil, "[^note]: The note text.", q) {
		t.Fatalf("definition block not claimed")
	}
	if text, ok := store.Definition("note"); !ok || text != "The note text." {
		t.Fatalf("Definition = %q, %v", text, ok)
	}
	if q.Len() != 0 {
		t.Fatalf("queue not empty: %v", q.blocks)
	}
}

func TestExtractIgnoresNonDefinition(t *testing.T) {
	x, store := newExtractor()

	if x.HandleBlock(nil, "Just a paragraph.", &testQueue{}) {
		t.Fatalf("plain paragraph claimed as definition")
	}
	if store.HasDefinitions() {
		t.Fatalf("definition stored from plain paragraph")
	}
}

func TestExtractRequeuesContentBeforeMarker(t *testing.T) {
	x, store := newExtractor()
	q := &testQueue{}

	x.HandleBlock(nil, "Leading text.\n[^note]: Trailing note.", q)

	if text, _ := store.Definition("note"); text != "Trailing note." {
		t.Fatalf("Definition = %q", text)
	}
	block, ok := q.PopFront()
	if !ok || block != "Leading text." {
		t.Fatalf("before-marker content = %q, %v", block, ok)
	}
}

func TestExtractDropsBlankPrefix(t *testing.T) {
	x, _ := newExtractor()
	q := &testQueue{}

	x.HandleBlock(nil, "\n[^note]: Text.", q)

	if q.Len() != 0 {
		t.Fatalf("whitespace-only prefix requeued: %v", q.blocks)
	}
}

func TestExtractSplitsSecondDefinitionInSameBlock(t *testing.T) {
	x, store := newExtractor()
	q := &testQueue{}

	x.HandleBlock(nil, "[^a]: First.\n[^b]: Second.", q)

	if text, _ := store.Definition("a"); text != "First." {
		t.Fatalf("Definition(a) = %q", text)
	}
	block, ok := q.PopFront()
	if !ok || block != "[^b]: Second." {
		t.Fatalf("remainder = %q, %v", block, ok)
	}

	// The remainder round-trips through the handler like any other block.
	if !x.HandleBlock(nil, block, q) {
		t.Fatalf("requeued definition not claimed")
	}
	if text, _ := store.Definition("b"); text != "Second." {
		t.Fatalf("Definition(b) = %q", text)
	}
}

func TestExtractLazyContinuationLines(t *testing.T) {
	x, store := newExtractor()

	x.HandleBlock(nil, "[^note]: First line.\ncontinues here.", &testQueue{})

	if text, _ := store.Definition("note"); text != "First line.\ncontinues here." {
		t.Fatalf("Definition = %q", text)
	}
}

func TestExtractIndentedContinuationParagraphs(t *testing.T) {
	x, store := newExtractor()
	q := &testQueue{blocks: []string{
		"    Second paragraph.",
		"    Third paragraph.",
		"Unindented stops consumption.",
	}}

	x.HandleBlock(nil, "[^note]: First line.", q)

	if text, _ := store.Definition("note"); text != "First line.\n\nSecond paragraph.\n\nThird paragraph." {
		t.Fatalf("Definition = %q", text)
	}
	if got := q.blocks; !slices.Equal(got, []string{"Unindented stops consumption."}) {
		t.Fatalf("queue after consumption = %v", got)
	}
}

func TestExtractIndentedBlockWithEmbeddedDefinition(t *testing.T) {
	x, store := newExtractor()
	q := &testQueue{blocks: []string{
		"    Continuation.\n[^b]: Next note.",
	}}

	x.HandleBlock(nil, "[^a]: First note.", q)

	if text, _ := store.Definition("a"); text != "First note.\n\nContinuation." {
		t.Fatalf("Definition(a) = %q", text)
	}
	block, ok := q.Peek()
	if !ok || block != "[^b]: Next note." {
		t.Fatalf("embedded definition not requeued: %q, %v", block, ok)
	}
}

func TestDetabStripsOneIndentLevel(t *testing.T) {
	got := detab("    indented\nplain\n        double")
	if got != "indented\nplain\n    double" {
		t.Fatalf("detab = %q", got)
	}
}

func TestExtractEmptyLabelAndBody(t *testing.T) {
	x, store := newExtractor()

	x.HandleBlock(nil, "[^]:", &testQueue{})

	if text, ok := store.Definition(""); !ok || text != "" {
		t.Fatalf("empty definition = %q, %v", text, ok)
	}
}
