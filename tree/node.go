package tree

import "strings"

// Attr is a single string attribute on a Node. Attributes keep their
// insertion order so serialized output stays deterministic.
type Attr struct {
	Key   string
	Value string
}

// Node is a tagged document tree node. Kind carries the element name ("p",
// "a", "div", ...); Text renders before any children and Tail renders after
// the node's own closing tag, mirroring the text/tail split of etree-style
// trees so inline content can be interleaved with sibling elements.
type Node struct {
	Kind     string
	Attrs    []Attr
	Children []*Node
	Text     string
	Tail     string
}

// New returns an empty node of the given kind.
func New(kind string) *Node {
	return &Node{Kind: kind}
}

// Append adds child as the last child of n.
func (n *Node) Append(child *Node) {
	n.Children = append(n.Children, child)
}

// Insert places child at index i, shifting later children right. Out-of-range
// indices clamp to the ends.
func (n *Node) Insert(i int, child *Node) {
	if i < 0 {
		i = 0
	}
	if i > len(n.Children) {
		i = len(n.Children)
	}
	n.Children = append(n.Children, nil)
	copy(n.Children[i+1:], n.Children[i:])
	n.Children[i] = child
}

// Index returns the position of child among n's children, or -1.
func (n *Node) Index(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

// Remove detaches child from n, reporting whether it was present.
func (n *Node) Remove(child *Node) bool {
	i := n.Index(child)
	if i < 0 {
		return false
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
	return true
}

// SetAttr upserts an attribute, preserving its original position on update.
func (n *Node) SetAttr(key, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Key == key {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Key: key, Value: value})
}

// Attr returns the attribute value for key, or "" when absent.
func (n *Node) Attr(key string) string {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// Clone returns a deep copy of n, detached from any parent.
func (n *Node) Clone() *Node {
	out := &Node{
		Kind: n.Kind,
		Text: n.Text,
		Tail: n.Tail,
	}
	if len(n.Attrs) > 0 {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Walk visits n and every descendant depth-first, stopping early when fn
// returns false.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Iter collects n and all descendants of the given kind in document order.
// An empty kind matches every node.
func (n *Node) Iter(kind string) []*Node {
	var out []*Node
	n.Walk(func(node *Node) bool {
		if kind == "" || node.Kind == kind {
			out = append(out, node)
		}
		return true
	})
	return out
}

// TextMatch reports where a marker string was located in the tree: the node
// that carries it, that node's parent, and whether it sat in the node's text
// (true) or its tail (false). Insertion semantics differ between the two.
type TextMatch struct {
	Node   *Node
	Parent *Node
	InText bool
}

// FindText locates the first node, depth-first, whose text or tail contains
// marker. The root's own text is not considered, matching the way placeholder
// markers always live inside some rendered child.
func FindText(root *Node, marker string) *TextMatch {
	return findText(root, marker)
}

func findText(parent *Node, marker string) *TextMatch {
	for _, child := range parent.Children {
		if marker != "" && strings.Contains(child.Text, marker) {
			return &TextMatch{Node: child, Parent: parent, InText: true}
		}
		if marker != "" && strings.Contains(child.Tail, marker) {
			return &TextMatch{Node: child, Parent: parent, InText: false}
		}
		if res := findText(child, marker); res != nil {
			return res
		}
	}
	return nil
}
