package engine

import "testing"

func TestBlockQueuePopOrder(t *testing.T) {
	q := newBlockQueue([]string{"a", "b"})

	if got, ok := q.PopFront(); !ok || got != "a" {
		t.Fatalf("PopFront = %q, %v", got, ok)
	}
	if got, ok := q.PopFront(); !ok || got != "b" {
		t.Fatalf("PopFront = %q, %v", got, ok)
	}
	if _, ok := q.PopFront(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestBlockQueuePushFrontPreservesRelativeOrder(t *testing.T) {
	q := newBlockQueue([]string{"rest"})
	q.PushFront("first", "second")

	want := []string{"first", "second", "rest"}
	for _, expected := range want {
		got, ok := q.PopFront()
		if !ok || got != expected {
			t.Fatalf("PopFront = %q, want %q", got, expected)
		}
	}
}

func TestBlockQueuePeekDoesNotConsume(t *testing.T) {
	q := newBlockQueue([]string{"only"})

	if got, ok := q.Peek(); !ok || got != "only" {
		t.Fatalf("Peek = %q, %v", got, ok)
	}
	if q.Len() != 1 {
		t.Fatalf("Peek consumed the block")
	}
}
