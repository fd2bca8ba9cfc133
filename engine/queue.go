package engine

import "github.com/goliatone/go-footnotes/pkg/interfaces"

// blockQueue is a deque of raw text blocks. Handlers push fragments back to
// the front when a block needs re-processing; fragments pushed together keep
// their relative order ahead of the remaining stream.
type blockQueue struct {
	blocks []string
}

var _ interfaces.BlockQueue = (*blockQueue)(nil)

func newBlockQueue(blocks []string) *blockQueue {
	return &blockQueue{blocks: blocks}
}

func (q *blockQueue) PushFront(blocks ...string) {
	if len(blocks) == 0 {
		return
	}
	q.blocks = append(append([]string(nil), blocks...), q.blocks...)
}

func (q *blockQueue) PopFront() (string, bool) {
	if len(q.blocks) == 0 {
		return "", false
	}
	block := q.blocks[0]
	q.blocks = q.blocks[1:]
	return block, true
}

func (q *blockQueue) Peek() (string, bool) {
	if len(q.blocks) == 0 {
		return "", false
	}
	return q.blocks[0], true
}

func (q *blockQueue) Len() int {
	return len(q.blocks)
}
