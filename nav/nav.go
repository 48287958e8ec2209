// Package nav builds the heading navigation tree of a document.
package nav

// Node is one heading in the navigation tree.
type Node struct {
	Level    int     `json:"level" yaml:"level"`
	Anchor   string  `json:"anchor" yaml:"anchor"`
	Title    string  `json:"title" yaml:"title"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Builder threads headings into a tree as they arrive in document order.
// Levels strictly increase along every root-to-leaf path.
type Builder struct {
	roots []*Node
	open  []*Node
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add attaches a heading. Open headings at the same or a deeper level are
// closed first.
func (b *Builder) Add(level int, anchor, title string) *Node {
	node := &Node{Level: level, Anchor: anchor, Title: title}

	for len(b.open) > 0 && b.open[len(b.open)-1].Level >= level {
		b.open = b.open[:len(b.open)-1]
	}

	if len(b.open) == 0 {
		b.roots = append(b.roots, node)
	} else {
		parent := b.open[len(b.open)-1]
		parent.Children = append(parent.Children, node)
	}
	b.open = append(b.open, node)

	return node
}

// Tree returns the forest built so far, or nil when no heading was added.
func (b *Builder) Tree() []*Node {
	if len(b.roots) == 0 {
		return nil
	}
	return b.roots
}

// Walk visits nodes depth-first in document order.
func Walk(nodes []*Node, fn func(n *Node, depth int)) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(n *Node, depth int)) {
	for _, n := range nodes {
		fn(n, depth)
		walk(n.Children, depth+1, fn)
	}
}

// Flatten returns the nodes in document order.
func Flatten(nodes []*Node) []*Node {
	var out []*Node
	Walk(nodes, func(n *Node, _ int) {
		out = append(out, n)
	})
	return out
}
