// Package tree holds the extended syntax tree: an arena of nodes addressed
// by index, the registry of node types and the lowering of a goldmark AST
// into that arena.
package tree

import "fmt"

// ID addresses a node inside a Tree.
type ID int

// NoParent is the parent index of the document root.
const NoParent ID = -1

// Type tags the kind of a node.
type Type string

const (
	TypeDocument      Type = "document"
	TypeParagraph     Type = "paragraph"
	TypeHeading       Type = "heading"
	TypeThematicBreak Type = "thematic-break"
	TypeCodeBlock     Type = "code-block"
	TypeBlockQuote    Type = "block-quote"
	TypeList          Type = "list"
	TypeListItem      Type = "list-item"
	TypeTable         Type = "table"
	TypeTableRow      Type = "table-row"
	TypeTableCell     Type = "table-cell"
	TypeHTML          Type = "html"
	TypeHTMLElement   Type = "html-element"
	TypeMathBlock     Type = "math-block"

	TypeText          Type = "text"
	TypeSoftBreak     Type = "softbreak"
	TypeHardBreak     Type = "hardbreak"
	TypeEmph          Type = "emph"
	TypeStrong        Type = "strong"
	TypeStrikethrough Type = "strikethrough"
	TypeCode          Type = "code"
	TypeLink          Type = "link"
	TypeImage         Type = "image"
	TypeHTMLInline    Type = "html-inline"
	TypeMathInline    Type = "math-inline"
	TypeTemplate      Type = "template"
	TypeEmoji         Type = "emoji"
	TypeTaskCheckbox  Type = "task-checkbox"
)

// Node is one element of the extended tree. Children are owned by the node;
// Parent is a lookup index only.
type Node struct {
	ID       ID
	Type     Type
	Literal  string
	Parent   ID
	Children []ID
	Data     Data
}

// Tree is an arena of nodes rooted at a document node with ID 0.
type Tree struct {
	Nodes  []Node
	Source []byte
}

// New returns a tree holding only the document root.
func New(source []byte) *Tree {
	return &Tree{
		Nodes: []Node{{
			ID:     0,
			Type:   TypeDocument,
			Parent: NoParent,
		}},
		Source: source,
	}
}

// Root returns the document node.
func (t *Tree) Root() *Node {
	return &t.Nodes[0]
}

// Node returns the node with the given id. The pointer stays valid until the
// next call to Add.
func (t *Tree) Node(id ID) *Node {
	if id < 0 || int(id) >= len(t.Nodes) {
		panic(fmt.Sprintf("tree: node id %d out of range", id))
	}
	return &t.Nodes[id]
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Add appends a new node as the last child of parent and returns its id.
func (t *Tree) Add(parent ID, typ Type, literal string, data Data) ID {
	id := ID(len(t.Nodes))
	t.Nodes = append(t.Nodes, Node{
		ID:      id,
		Type:    typ,
		Literal: literal,
		Parent:  parent,
		Data:    data,
	})
	t.Nodes[parent].Children = append(t.Nodes[parent].Children, id)
	return id
}

// Parent returns the parent of id, or false for the root.
func (t *Tree) Parent(id ID) (*Node, bool) {
	p := t.Node(id).Parent
	if p == NoParent {
		return nil, false
	}
	return t.Node(p), true
}

// Ancestor walks depth parent links up from id. Ancestor(id, 1) is the
// parent, Ancestor(id, 2) the grandparent.
func (t *Tree) Ancestor(id ID, depth int) (*Node, bool) {
	current := id
	for i := 0; i < depth; i++ {
		p := t.Node(current).Parent
		if p == NoParent {
			return nil, false
		}
		current = p
	}
	return t.Node(current), true
}

// Walk visits id and its descendants depth-first, parents before children.
// Returning false from fn skips the children of that node.
func (t *Tree) Walk(id ID, fn func(n *Node) bool) {
	if !fn(t.Node(id)) {
		return
	}
	for _, child := range t.Node(id).Children {
		t.Walk(child, fn)
	}
}
