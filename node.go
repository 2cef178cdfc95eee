package grove

// nodeIDCounter is a plain counter; grove is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a vertex of the scene tree. It carries a small set of transform
// fields for components to read and write, and an optional component store
// that is allocated the first time a component (or a descendant's component)
// is attached.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy. Parent is maintained by the child operations below;
	// assigning it directly skips count propagation and leaves
	// ComponentCountInDescendants wrong for both ancestor chains.
	Parent   *Node
	children []*Node

	// Transform (local). grove does not compose these; draw and input
	// components interpret them.
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Alpha    float64

	// Visible=false skips the subtree during Draw. Update and input
	// dispatch still reach it.
	Visible bool

	// Metadata
	UserData any
	EntityID uint32

	components *componentStore
	disposed   bool
}

// NewNode creates a parentless node with default transform values.
func NewNode(name string) *Node {
	return &Node{
		ID:      nextNodeID(),
		Name:    name,
		ScaleX:  1,
		ScaleY:  1,
		Alpha:   1,
		Visible: true,
	}
}

// NewContainer is an alias of NewNode for nodes that only group children.
func NewContainer(name string) *Node {
	return NewNode(name)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// The child's component counts move with it.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	child.detachFromParent()
	child.Parent = n
	n.children = append(n.children, child)
	n.propagateSubtree(child, +1)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("grove: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("grove: adding child would create a cycle")
	}
	// Index is interpreted after child leaves its current parent, which
	// matters when that parent is n.
	limit := len(n.children)
	if child.Parent == n {
		limit--
	}
	if index < 0 || index > limit {
		panic("grove: child index out of range")
	}
	child.detachFromParent()
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.propagateSubtree(child, +1)
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("grove: child's parent is not this node")
	}
	child.detachFromParent()
}

// RemoveChildAt removes and returns the child at the given index.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("grove: child index out of range")
	}
	child := n.children[index]
	child.detachFromParent()
	return child
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		n.propagateSubtree(child, -1)
		child.Parent = nil
	}
	clear(n.children)
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
// Sibling order is the order recursive component queries visit children.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("grove: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("grove: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
}

// --- Disposal ---

// Dispose removes this node from its parent, detaches every component in the
// subtree (firing OnDetach) and marks all of it disposed.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	// Detach hooks may unlink or add children, so work on a snapshot and
	// repeat until none are left. A child keeps its Parent while it is
	// disposed so its detaches are subtracted from this node's counts; one
	// that a hook already unlinked is left alone.
	for len(n.children) > 0 {
		kids := n.children
		n.children = nil
		for _, child := range kids {
			if child.Parent != n {
				continue
			}
			child.dispose()
			n.propagateSubtree(child, -1)
			child.Parent = nil
		}
	}
	n.RemoveAllComponents()
	n.disposed = true
	n.ID = 0
	n.children = nil
	n.components = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// detachFromParent unlinks n from its parent and subtracts n's subtree counts
// from the old ancestor chain. No-op for a root.
func (n *Node) detachFromParent() {
	p := n.Parent
	if p == nil {
		return
	}
	p.removeChildByPtr(n)
	p.propagateSubtree(n, -1)
	n.Parent = nil
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
