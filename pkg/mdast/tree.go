package mdast

import (
	"errors"
	"fmt"
)

// NodeID indexes a node inside its Tree.
type NodeID int32

// NoNode is the parent of the root and the result of failed lookups.
const NoNode NodeID = -1

// ErrTaxonomyDrift marks a node variant that the tree model or an encoder
// does not know. It signals a mismatch between the tree producer and its
// consumer, never a problem with the input text.
var ErrTaxonomyDrift = errors.New("node variant outside the supported taxonomy")

// ErrInvalidTree is returned by Validate when a structural invariant fails.
var ErrInvalidTree = errors.New("invalid tree")

// node is one arena slot.
type node struct {
	value    Value
	parent   NodeID
	children []NodeID
	pos      SourceRange
}

// Tree is an arena holding every node of one parsed document.
// Node 0 is always the Document root. A Tree is not safe for concurrent
// mutation; once built it may be read from any number of goroutines.
type Tree struct {
	nodes []node
}

// NewTree creates a tree containing only a Document root.
func NewTree() *Tree {
	return NewTreeWithCapacity(1)
}

// NewTreeWithCapacity creates a tree with room for n nodes.
func NewTreeWithCapacity(n int) *Tree {
	if n < 1 {
		n = 1
	}
	t := &Tree{nodes: make([]node, 1, n)}
	t.nodes[0] = node{value: Document{}, parent: NoNode, pos: NoRange}
	return t
}

// Root returns the ID of the Document root.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Append adds a new node holding v as the last child of parent and returns
// its ID. It panics if parent is not a node of t or v is nil.
func (t *Tree) Append(parent NodeID, v Value) NodeID {
	t.mustContain(parent)
	if v == nil {
		panic("mdast: Append with nil value")
	}

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{value: v, parent: parent, pos: NoRange})
	t.nodes[parent].children = append(t.nodes[parent].children, id)
	return id
}

// Value returns the variant payload of id.
func (t *Tree) Value(id NodeID) Value {
	t.mustContain(id)
	return t.nodes[id].value
}

// Kind returns the variant kind of id.
func (t *Tree) Kind(id NodeID) Kind {
	return t.Value(id).Kind()
}

// Parent returns the parent of id. The root reports (NoNode, false).
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	t.mustContain(id)
	p := t.nodes[id].parent
	return p, p != NoNode
}

// Children returns the ordered child IDs of id.
// The slice is owned by the tree and must not be modified.
func (t *Tree) Children(id NodeID) []NodeID {
	t.mustContain(id)
	return t.nodes[id].children
}

// ChildCount returns the number of direct children of id.
func (t *Tree) ChildCount(id NodeID) int {
	return len(t.Children(id))
}

// HasChildren returns true if id has any children.
func (t *Tree) HasChildren(id NodeID) bool {
	return t.ChildCount(id) > 0
}

// FirstChild returns the first child of id, or NoNode.
func (t *Tree) FirstChild(id NodeID) NodeID {
	children := t.Children(id)
	if len(children) == 0 {
		return NoNode
	}
	return children[0]
}

// Pos returns the source range recorded for id, or NoRange.
func (t *Tree) Pos(id NodeID) SourceRange {
	t.mustContain(id)
	return t.nodes[id].pos
}

// SetPos records the source range of id.
func (t *Tree) SetPos(id NodeID, r SourceRange) {
	t.mustContain(id)
	t.nodes[id].pos = r
}

// Contains reports whether id names a node of t.
func (t *Tree) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Tree) mustContain(id NodeID) {
	if !t.Contains(id) {
		panic(fmt.Sprintf("mdast: node %d out of range [0,%d)", id, len(t.nodes)))
	}
}

// Validate checks the structural invariants of the tree:
//   - node 0 is the only parentless node and holds a Document;
//   - no other node holds a Document;
//   - every node appears exactly once in its parent's children;
//   - every value belongs to the known taxonomy.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("%w: no root", ErrInvalidTree)
	}

	seen := make([]int, len(t.nodes))
	for id, n := range t.nodes {
		if n.value == nil {
			return fmt.Errorf("%w: node %d has no value", ErrInvalidTree, id)
		}
		if !n.value.Kind().Valid() {
			return fmt.Errorf("%w: node %d: %w", ErrInvalidTree, id, ErrTaxonomyDrift)
		}

		isDoc := n.value.Kind() == KindDocument
		switch {
		case id == 0 && (n.parent != NoNode || !isDoc):
			return fmt.Errorf("%w: root must be a parentless Document", ErrInvalidTree)
		case id != 0 && n.parent == NoNode:
			return fmt.Errorf("%w: node %d has no parent", ErrInvalidTree, id)
		case id != 0 && isDoc:
			return fmt.Errorf("%w: nested Document at node %d", ErrInvalidTree, id)
		case id != 0 && n.parent >= NodeID(id):
			// Parents are always allocated before their children.
			return fmt.Errorf("%w: node %d has forward parent %d", ErrInvalidTree, id, n.parent)
		}

		for _, c := range n.children {
			if !t.Contains(c) {
				return fmt.Errorf("%w: node %d lists missing child %d", ErrInvalidTree, id, c)
			}
			if t.nodes[c].parent != NodeID(id) {
				return fmt.Errorf("%w: node %d lists child %d owned by %d",
					ErrInvalidTree, id, c, t.nodes[c].parent)
			}
			seen[c]++
		}
	}

	for id := 1; id < len(seen); id++ {
		if seen[id] != 1 {
			return fmt.Errorf("%w: node %d listed %d times by its parent", ErrInvalidTree, id, seen[id])
		}
	}

	return nil
}
