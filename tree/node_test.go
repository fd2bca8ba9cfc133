package tree

import "testing"

func TestInsertAndIndex(t *testing.T) {
	parent := New("div")
	a := New("p")
	b := New("p")
	c := New("p")
	parent.Append(a)
	parent.Append(c)
	parent.Insert(1, b)

	if got := parent.Index(b); got != 1 {
		t.Fatalf("expected b at index 1, got %d", got)
	}
	if parent.Children[0] != a || parent.Children[2] != c {
		t.Fatalf("insert disturbed sibling order: %#v", parent.Children)
	}
}

func TestInsertClampsOutOfRange(t *testing.T) {
	parent := New("div")
	parent.Append(New("p"))

	head := New("hr")
	parent.Insert(-5, head)
	if parent.Children[0] != head {
		t.Fatalf("negative index should insert at the front")
	}

	tail := New("hr")
	parent.Insert(99, tail)
	if parent.Children[len(parent.Children)-1] != tail {
		t.Fatalf("oversized index should insert at the end")
	}
}

func TestRemove(t *testing.T) {
	parent := New("div")
	child := New("p")
	parent.Append(child)

	if !parent.Remove(child) {
		t.Fatalf("expected Remove to report success")
	}
	if len(parent.Children) != 0 {
		t.Fatalf("child still attached: %#v", parent.Children)
	}
	if parent.Remove(child) {
		t.Fatalf("removing a detached child should report false")
	}
}

func TestSetAttrPreservesPosition(t *testing.T) {
	n := New("a")
	n.SetAttr("href", "#x")
	n.SetAttr("class", "ref")
	n.SetAttr("href", "#y")

	if n.Attrs[0].Key != "href" || n.Attrs[0].Value != "#y" {
		t.Fatalf("upsert should keep attribute position, got %#v", n.Attrs)
	}
	if got := n.Attr("class"); got != "ref" {
		t.Fatalf("Attr(class) = %q", got)
	}
	if got := n.Attr("missing"); got != "" {
		t.Fatalf("missing attribute should be empty, got %q", got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	n := New("li")
	n.SetAttr("id", "fn:a")
	child := New("p")
	child.Text = "body"
	n.Append(child)

	clone := n.Clone()
	clone.SetAttr("id", "fn:b")
	clone.Children[0].Text = "changed"

	if n.Attr("id") != "fn:a" {
		t.Fatalf("clone mutated original attrs")
	}
	if n.Children[0].Text != "body" {
		t.Fatalf("clone mutated original children")
	}
}

func TestIterCollectsByKind(t *testing.T) {
	root := New("div")
	p := New("p")
	p.Append(New("a"))
	root.Append(p)
	root.Append(New("a"))

	if got := len(root.Iter("a")); got != 2 {
		t.Fatalf("expected 2 anchors, got %d", got)
	}
	if got := len(root.Iter("")); got != 4 {
		t.Fatalf("expected 4 nodes in total, got %d", got)
	}
}

func TestFindTextInTextAndTail(t *testing.T) {
	root := New(DocumentKind)
	p := New("p")
	p.Text = "before ///MARK/// after"
	root.Append(p)

	match := FindText(root, "///MARK///")
	if match == nil {
		t.Fatalf("expected a text match")
	}
	if match.Node != p || match.Parent != root || !match.InText {
		t.Fatalf("unexpected match: %#v", match)
	}

	root2 := New(DocumentKind)
	p2 := New("p")
	sup := New("sup")
	sup.Tail = "tail ///MARK///"
	p2.Append(sup)
	root2.Append(p2)

	match = FindText(root2, "///MARK///")
	if match == nil {
		t.Fatalf("expected a tail match")
	}
	if match.Node != sup || match.Parent != p2 || match.InText {
		t.Fatalf("unexpected tail match: %#v", match)
	}
}

func TestFindTextMissing(t *testing.T) {
	root := New(DocumentKind)
	p := New("p")
	p.Text = "nothing here"
	root.Append(p)

	if match := FindText(root, "///MARK///"); match != nil {
		t.Fatalf("expected no match, got %#v", match)
	}
}
